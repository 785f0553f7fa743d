package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	ptnet "github.com/peterkuimelis/phaseten/internal/net"

	"github.com/peterkuimelis/phaseten/internal/game"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// port is the TCP port for human player connections, set by main.
var port string

// seed is the RNG seed for new games, set by main.
var seed int64

// SetPort sets the TCP port for human player connections.
func SetPort(p string) {
	port = p
}

// SetSeed sets the RNG seed for new games.
func SetSeed(s int64) {
	seed = s
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(drawCardTool(), handleDrawCard)
	s.AddTool(layPhaseTool(), handleLayPhase)
	s.AddTool(hitCardTool(), handleHitCard)
	s.AddTool(discardCardTool(), handleDiscardCard)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Phase 10 game. Returns the initial game state and first pending decision. "+
			"Human players connect via `phaseten join --addr localhost:<port> --name NAME` in separate terminals. "+
			"This call blocks until every human has connected."),
		mcp.WithNumber("seats", mcp.Required(), mcp.Description("Total number of players including Claude (2-6)")),
		mcp.WithNumber("claude_seat", mcp.Required(), mcp.Description("Which seat Claude takes: 0 plays first")),
	)
}

func drawCardTool() mcp.Tool {
	return mcp.NewTool("draw_card",
		mcp.WithDescription("Draw a card at the start of your turn. Use this when the pending decision type is 'choose_draw'."),
		mcp.WithString("source", mcp.Required(), mcp.Description("'deck' to draw blind, or 'discard' to take the face-up card (only when can_take_discard is true)")),
	)
}

func layPhaseTool() mcp.Tool {
	return mcp.NewTool("lay_phase",
		mcp.WithDescription("Attempt to lay down your current phase, or pass. Use this when the pending decision type is 'propose_phase'. "+
			"Card indices are 0-based positions in the 'hand' list of the state."),
		mcp.WithString("groups", mcp.Description("One space-separated index list per phase group, groups separated by ';' (e.g. '0 1 2; 3 4 5 6'). Empty to pass.")),
	)
}

func hitCardTool() mcp.Tool {
	return mcp.NewTool("hit_card",
		mcp.WithDescription("Play one hand card onto a laid-down group, or pass. Use this when the pending decision type is 'choose_hit'."),
		mcp.WithBoolean("pass", mcp.Description("true to stop hitting")),
		mcp.WithNumber("target", mcp.Description("0-based index into the pending targets list")),
		mcp.WithNumber("card_index", mcp.Description("0-based index into the 'hand' list of the state")),
	)
}

func discardCardTool() mcp.Tool {
	return mcp.NewTool("discard_card",
		mcp.WithDescription("Discard one card to end your turn. Use this when the pending decision type is 'choose_discard'. "+
			"Discarding a Skip makes the next player lose their turn."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the 'hand' list of the state")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

// checkPending validates that a decision of the given type is waiting for
// Claude. Returns a non-nil tool result describing the problem otherwise.
func checkPending(want DecisionType) (*GameSession, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Type != DecisionGameOver && pending.Player != sess.claudeSeat {
		return nil, mcp.NewToolResultError("Waiting for a human player to respond via their terminal.")
	}
	if pending.Type != want {
		return nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return sess, nil
}

// finish waits for the next decision after a response was submitted.
func finish(sess *GameSession) (*mcp.CallToolResult, error) {
	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	seats := request.GetInt("seats", 0)
	claudeSeat := request.GetInt("claude_seat", 0)

	sess, err := NewGameSession(seats, claudeSeat, "Claude", port, seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	resp.Port = port

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleDrawCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := checkPending(DecisionChooseDraw)
	if errResult != nil {
		return errResult, nil
	}

	source := game.DrawFromDeck
	switch request.GetString("source", "deck") {
	case "discard":
		if !sess.currentPending.CanTakeDiscard {
			return mcp.NewToolResultError("The discard pile cannot be taken right now."), nil
		}
		source = game.DrawFromDiscard
	case "deck":
	default:
		return mcp.NewToolResultError("source must be 'deck' or 'discard'."), nil
	}

	sess.claudeCtrl.responseCh <- DrawResponse{Source: source}
	return finish(sess)
}

func handleLayPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := checkPending(DecisionProposePhase)
	if errResult != nil {
		return errResult, nil
	}

	groupsStr := strings.TrimSpace(request.GetString("groups", ""))
	if groupsStr == "" {
		sess.claudeCtrl.responseCh <- PhaseResponse{Pass: true}
		return finish(sess)
	}

	handSize := 0
	if sess.currentPending.State != nil {
		handSize = len(sess.currentPending.State.Hand)
	}

	var groups [][]int
	for _, part := range strings.Split(groupsStr, ";") {
		var group []int
		for _, field := range strings.Fields(part) {
			idx, err := strconv.Atoi(field)
			if err != nil {
				return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", field), nil
			}
			if idx < 0 || idx >= handSize {
				return mcp.NewToolResultErrorf("Index %d out of range. Must be 0-%d.", idx, handSize-1), nil
			}
			group = append(group, idx)
		}
		groups = append(groups, group)
	}

	sess.claudeCtrl.responseCh <- PhaseResponse{Groups: groups}
	return finish(sess)
}

func handleHitCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := checkPending(DecisionChooseHit)
	if errResult != nil {
		return errResult, nil
	}

	if request.GetBool("pass", false) {
		sess.claudeCtrl.responseCh <- HitResponse{Pass: true}
		return finish(sess)
	}

	target := request.GetInt("target", -1)
	cardIndex := request.GetInt("card_index", -1)
	if target < 0 || target >= len(sess.currentPending.Targets) {
		return mcp.NewToolResultErrorf("Invalid target %d. Must be 0-%d.", target, len(sess.currentPending.Targets)-1), nil
	}
	handSize := 0
	if sess.currentPending.State != nil {
		handSize = len(sess.currentPending.State.Hand)
	}
	if cardIndex < 0 || cardIndex >= handSize {
		return mcp.NewToolResultErrorf("Invalid card_index %d. Must be 0-%d.", cardIndex, handSize-1), nil
	}

	sess.claudeCtrl.responseCh <- HitResponse{Target: target, CardIndex: cardIndex}
	return finish(sess)
}

func handleDiscardCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := checkPending(DecisionChooseDiscard)
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -1)
	handSize := 0
	if sess.currentPending.State != nil {
		handSize = len(sess.currentPending.State.Hand)
	}
	if index < 0 || index >= handSize {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, handSize-1), nil
	}

	sess.claudeCtrl.responseCh <- DiscardResponse{Index: index}
	return finish(sess)
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	events := sess.drainEvents()

	sess.mu.Lock()
	gameOver := sess.gameOver
	winner := sess.winner
	result := sess.result
	sess.mu.Unlock()

	resp := &ToolResponse{
		Events:   events,
		GameOver: gameOver,
		Winner:   winner,
		Result:   result,
	}

	if gameOver {
		if sess.currentPending != nil {
			resp.State = sess.currentPending.State
		}
	} else if sess.game != nil {
		resp.State = ptnet.BuildStateView(sess.game.State, sess.claudeSeat)
		if sess.currentPending != nil {
			if sess.currentPending.Player != sess.claudeSeat {
				resp.Pending = &PendingView{
					Type:      sess.currentPending.Type,
					ForPlayer: sess.playerLabel(sess.currentPending.Player),
				}
			} else {
				resp.Pending = &PendingView{
					Type:           sess.currentPending.Type,
					ForPlayer:      "claude",
					CanTakeDiscard: sess.currentPending.CanTakeDiscard,
					Targets:        sess.currentPending.Targets,
				}
			}
		}
	}

	if resp.Events == nil {
		resp.Events = []ptnet.EventView{}
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}
