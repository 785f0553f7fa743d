package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/phaseten/internal/game"
	"github.com/peterkuimelis/phaseten/internal/log"
)

// NetworkController implements game.PlayerController over a TCP connection.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player int // which seat this controller occupies
	mu     sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, player int) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// BuildStateView creates a StateView from the perspective of the given
// player. Other players' hands are reduced to counts.
func BuildStateView(state *game.GameState, player int) *StateView {
	me := state.Players[player]
	phase := me.CurrentPhase()

	sv := &StateView{
		You:       player,
		Round:     state.Round,
		Turn:      state.Turn,
		Current:   state.Current,
		DeckCount: state.Deck.Len(),
		Phase: PhaseView{
			Number:      phase.Number,
			Description: phase.Description,
			Hint:        phase.Hint,
		},
	}
	for _, req := range phase.Requirements {
		sv.Phase.Groups = append(sv.Phase.Groups, req.String())
	}
	if top, ok := state.Discard.PeekTop(); ok {
		sv.DiscardTop = top.String()
	}
	for _, sc := range me.SortedHand() {
		sv.Hand = append(sv.Hand, sc.Card.String())
	}

	for _, p := range state.Players {
		pv := PlayerView{
			Name:      p.Name,
			Phase:     p.PhaseNumber,
			HandCount: len(p.Hand),
			Score:     p.Score,
			Completed: p.Completed,
		}
		if pv.Phase > game.PhaseCount {
			pv.Phase = game.PhaseCount
		}
		for _, ld := range p.LayDowns {
			gv := GroupView{Kind: ld.Requirement.Kind.String()}
			for _, c := range ld.Cards {
				gv.Cards = append(gv.Cards, c.String())
			}
			pv.LayDowns = append(pv.LayDowns, gv)
		}
		sv.Players = append(sv.Players, pv)
	}
	return sv
}

func (nc *NetworkController) buildStateView(state *game.GameState) *StateView {
	return BuildStateView(state, nc.player)
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseDrawSource implements game.PlayerController.
func (nc *NetworkController) ChooseDrawSource(ctx context.Context, state *game.GameState, canTakeDiscard bool) (game.DrawSource, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:           "choose_draw",
		State:          nc.buildStateView(state),
		CanTakeDiscard: canTakeDiscard,
	}
	if err := nc.send(msg); err != nil {
		return game.DrawFromDeck, fmt.Errorf("send choose_draw: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return game.DrawFromDeck, fmt.Errorf("recv draw: %w", err)
	}
	if resp.Source == "discard" && canTakeDiscard {
		return game.DrawFromDiscard, nil
	}
	return game.DrawFromDeck, nil
}

// ProposePhase implements game.PlayerController.
func (nc *NetworkController) ProposePhase(ctx context.Context, state *game.GameState) ([][]int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:  "propose_phase",
		State: nc.buildStateView(state),
	}
	if err := nc.send(msg); err != nil {
		return nil, fmt.Errorf("send propose_phase: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return nil, fmt.Errorf("recv phase: %w", err)
	}
	if resp.Pass {
		return nil, nil
	}
	return resp.Groups, nil
}

// ProposeHit implements game.PlayerController.
func (nc *NetworkController) ProposeHit(ctx context.Context, state *game.GameState, targets []game.HitTarget) (*game.Hit, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	var views []TargetView
	for i, t := range targets {
		owner := state.Players[t.Player]
		ld := owner.LayDowns[t.Group]
		tv := TargetView{Index: i, Player: owner.Name, Group: ld.Requirement.String()}
		for _, c := range ld.Cards {
			tv.Cards = append(tv.Cards, c.String())
		}
		views = append(views, tv)
	}

	msg := ServerMessage{
		Type:    "choose_hit",
		State:   nc.buildStateView(state),
		Targets: views,
	}
	if err := nc.send(msg); err != nil {
		return nil, fmt.Errorf("send choose_hit: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return nil, fmt.Errorf("recv hit: %w", err)
	}
	if resp.Pass {
		return nil, nil
	}
	if resp.Target < 0 || resp.Target >= len(targets) {
		return nil, nil
	}
	return &game.Hit{Target: targets[resp.Target], CardIndex: resp.CardIndex}, nil
}

// ChooseDiscard implements game.PlayerController.
func (nc *NetworkController) ChooseDiscard(ctx context.Context, state *game.GameState) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:  "choose_discard",
		State: nc.buildStateView(state),
	}
	if err := nc.send(msg); err != nil {
		return 0, fmt.Errorf("send choose_discard: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return 0, fmt.Errorf("recv discard: %w", err)
	}
	return resp.Index, nil
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(winner int, result string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: "game_over", Winner: winner, Result: result})
}

// Notify implements game.PlayerController. Deck draws by other players
// are forwarded without the card name.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	card := event.Card
	if event.Type == log.EventDraw && event.Player != nc.player {
		card = ""
	}
	msg := ServerMessage{
		Type: "notify",
		Event: &EventView{
			Round:   event.Round,
			Turn:    event.Turn,
			Player:  event.Player,
			Type:    event.Type.String(),
			Card:    card,
			Details: event.Details,
		},
	}
	return nc.send(msg)
}
