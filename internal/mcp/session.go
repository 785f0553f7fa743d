package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	stdnet "net"
	"sync"

	"github.com/peterkuimelis/phaseten/internal/game"
	"github.com/peterkuimelis/phaseten/internal/log"
	ptnet "github.com/peterkuimelis/phaseten/internal/net"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseDraw    DecisionType = "choose_draw"
	DecisionProposePhase  DecisionType = "propose_phase"
	DecisionChooseHit     DecisionType = "choose_hit"
	DecisionChooseDiscard DecisionType = "choose_discard"
	DecisionGameOver      DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type           DecisionType       `json:"type"`
	Player         int                `json:"player"`
	State          *ptnet.StateView   `json:"state"`
	CanTakeDiscard bool               `json:"can_take_discard,omitempty"`
	Targets        []ptnet.TargetView `json:"targets,omitempty"`
}

// Response types sent back from MCP tools to the controller.

type DrawResponse struct {
	Source game.DrawSource
}

type PhaseResponse struct {
	Groups [][]int
	Pass   bool
}

type HitResponse struct {
	Target    int
	CardIndex int
	Pass      bool
}

type DiscardResponse struct {
	Index int
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []ptnet.EventView `json:"events"`
	State    *ptnet.StateView  `json:"state,omitempty"`
	Pending  *PendingView      `json:"pending,omitempty"`
	GameOver bool              `json:"game_over"`
	Winner   int               `json:"winner,omitempty"`
	Result   string            `json:"result,omitempty"`
	Port     string            `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type           DecisionType       `json:"type"`
	ForPlayer      string             `json:"for_player"`
	CanTakeDiscard bool               `json:"can_take_discard,omitempty"`
	Targets        []ptnet.TargetView `json:"targets,omitempty"`
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	game       *game.Game
	claudeCtrl *MCPController
	claudeSeat int

	listener stdnet.Listener
	conns    []stdnet.Conn

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []ptnet.EventView
	gameOver bool
	winner   int
	result   string
}

// NewGameSession creates a new game session. It starts a TCP listener,
// waits for the human players to connect via `phaseten join`, then starts
// the game. Claude takes the given seat; humans fill the rest in join order.
func NewGameSession(seats, claudeSeat int, claudeName, port string, seed int64) (*GameSession, error) {
	if seats < game.MinPlayers || seats > game.MaxPlayers {
		return nil, fmt.Errorf("seats must be %d-%d, got %d", game.MinPlayers, game.MaxPlayers, seats)
	}
	if claudeSeat < 0 || claudeSeat >= seats {
		return nil, fmt.Errorf("claude seat must be 0-%d, got %d", seats-1, claudeSeat)
	}

	ln, err := stdnet.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}

	sess := &GameSession{
		claudeSeat: claudeSeat,
		pendingCh:  make(chan *PendingDecision, 1),
		winner:     -1,
		listener:   ln,
	}
	sess.claudeCtrl = NewMCPController(claudeSeat, sess)

	names := make([]string, seats)
	controllers := make([]game.PlayerController, seats)
	netCtrls := make([]*ptnet.NetworkController, 0, seats-1)
	names[claudeSeat] = claudeName
	controllers[claudeSeat] = sess.claudeCtrl

	// Blocks until every human has connected.
	for seat := 0; seat < seats; seat++ {
		if seat == claudeSeat {
			continue
		}
		conn, err := ln.Accept()
		if err != nil {
			sess.close()
			return nil, fmt.Errorf("accept: %w", err)
		}

		var joinMsg ptnet.ClientMessage
		if err := json.NewDecoder(conn).Decode(&joinMsg); err != nil {
			conn.Close()
			sess.close()
			return nil, fmt.Errorf("read join message: %w", err)
		}
		name := joinMsg.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", seat+1)
		}

		nc := ptnet.NewNetworkController(conn, seat)
		sess.conns = append(sess.conns, conn)
		netCtrls = append(netCtrls, nc)
		names[seat] = name
		controllers[seat] = nc
	}

	g, err := game.NewGame(game.GameConfig{
		Names:  names,
		Seed:   seed,
		Logger: log.NewMemoryLogger(),
	}, controllers...)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("create game: %w", err)
	}
	sess.game = g

	go func() {
		winner, err := g.Run(context.Background())
		if err != nil {
			sess.mu.Lock()
			sess.gameOver = true
			sess.result = fmt.Sprintf("error: %v", err)
			sess.mu.Unlock()
		}

		result := g.State.Result
		if result == "" {
			result = fmt.Sprintf("Game over. Winner: player %d", winner)
		}

		for _, nc := range netCtrls {
			_ = nc.SendGameOver(winner, result)
		}
		sess.close()

		sess.mu.Lock()
		sess.gameOver = true
		sess.winner = winner
		sess.result = result
		sess.mu.Unlock()

		sess.pendingCh <- &PendingDecision{
			Type:   DecisionGameOver,
			Player: winner,
			State:  ptnet.BuildStateView(g.State, sess.claudeSeat),
		}
	}()

	return sess, nil
}

func (s *GameSession) close() {
	for _, c := range s.conns {
		c.Close()
	}
	s.listener.Close()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev ptnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []ptnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// waitForPending blocks until the next decision arrives from the game
// engine, then builds a ToolResponse with accumulated events plus the
// pending decision.
func (s *GameSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending

	resp := &ToolResponse{
		Events: s.drainEvents(),
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		resp.State = pending.State
		return resp, nil
	}

	resp.State = pending.State
	resp.Pending = &PendingView{
		Type:           pending.Type,
		ForPlayer:      s.playerLabel(pending.Player),
		CanTakeDiscard: pending.CanTakeDiscard,
		Targets:        pending.Targets,
	}
	return resp, nil
}

// playerLabel returns "claude" or the seat's player name.
func (s *GameSession) playerLabel(player int) string {
	if player == s.claudeSeat {
		return "claude"
	}
	if s.game != nil && player >= 0 && player < len(s.game.State.Players) {
		return s.game.State.Players[player].Name
	}
	return fmt.Sprintf("player %d", player)
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
