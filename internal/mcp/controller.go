package mcp

import (
	"context"

	"github.com/peterkuimelis/phaseten/internal/game"
	"github.com/peterkuimelis/phaseten/internal/log"
	"github.com/peterkuimelis/phaseten/internal/net"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan any
}

// NewMCPController creates a controller for the given seat.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan any),
	}
}

// ChooseDrawSource implements game.PlayerController.
func (c *MCPController) ChooseDrawSource(ctx context.Context, state *game.GameState, canTakeDiscard bool) (game.DrawSource, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:           DecisionChooseDraw,
		Player:         c.player,
		State:          net.BuildStateView(state, c.player),
		CanTakeDiscard: canTakeDiscard,
	}

	resp := <-c.responseCh
	dr := resp.(DrawResponse)
	if dr.Source == game.DrawFromDiscard && canTakeDiscard {
		return game.DrawFromDiscard, nil
	}
	return game.DrawFromDeck, nil
}

// ProposePhase implements game.PlayerController.
func (c *MCPController) ProposePhase(ctx context.Context, state *game.GameState) ([][]int, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:   DecisionProposePhase,
		Player: c.player,
		State:  net.BuildStateView(state, c.player),
	}

	resp := <-c.responseCh
	pr := resp.(PhaseResponse)
	if pr.Pass {
		return nil, nil
	}
	return pr.Groups, nil
}

// ProposeHit implements game.PlayerController.
func (c *MCPController) ProposeHit(ctx context.Context, state *game.GameState, targets []game.HitTarget) (*game.Hit, error) {
	var views []net.TargetView
	for i, t := range targets {
		owner := state.Players[t.Player]
		ld := owner.LayDowns[t.Group]
		tv := net.TargetView{Index: i, Player: owner.Name, Group: ld.Requirement.String()}
		for _, card := range ld.Cards {
			tv.Cards = append(tv.Cards, card.String())
		}
		views = append(views, tv)
	}

	c.session.pendingCh <- &PendingDecision{
		Type:    DecisionChooseHit,
		Player:  c.player,
		State:   net.BuildStateView(state, c.player),
		Targets: views,
	}

	resp := <-c.responseCh
	hr := resp.(HitResponse)
	if hr.Pass || hr.Target < 0 || hr.Target >= len(targets) {
		return nil, nil
	}
	return &game.Hit{Target: targets[hr.Target], CardIndex: hr.CardIndex}, nil
}

// ChooseDiscard implements game.PlayerController.
func (c *MCPController) ChooseDiscard(ctx context.Context, state *game.GameState) (int, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:   DecisionChooseDiscard,
		Player: c.player,
		State:  net.BuildStateView(state, c.player),
	}

	resp := <-c.responseCh
	dr := resp.(DiscardResponse)
	return dr.Index, nil
}

// Notify implements game.PlayerController.
// Only the Claude controller appends events to avoid duplicates. Other
// seats' deck draws are recorded without the card name.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	if c.player != c.session.claudeSeat {
		return nil
	}
	card := event.Card
	if event.Type == log.EventDraw && event.Player != c.player {
		card = ""
	}
	c.session.appendEvent(net.EventView{
		Round:   event.Round,
		Turn:    event.Turn,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    card,
		Details: event.Details,
	})
	return nil
}
