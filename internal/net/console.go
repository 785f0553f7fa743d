package net

import (
	"bufio"
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/peterkuimelis/phaseten/internal/game"
	"github.com/peterkuimelis/phaseten/internal/log"
)

// ConsoleController implements game.PlayerController directly on a
// terminal, for hot-seat local games where all players share one screen.
type ConsoleController struct {
	player int
	name   string
	reader *bufio.Reader
}

// NewConsoleController creates a console controller for the given seat.
// All controllers of a hot-seat game share one reader.
func NewConsoleController(player int, name string, reader *bufio.Reader) *ConsoleController {
	return &ConsoleController{player: player, name: name, reader: reader}
}

func (cc *ConsoleController) banner() {
	pterm.DefaultSection.Printf("%s's turn", cc.name)
}

func (cc *ConsoleController) ChooseDrawSource(ctx context.Context, state *game.GameState, canTakeDiscard bool) (game.DrawSource, error) {
	cc.banner()
	sv := BuildStateView(state, cc.player)
	renderState(sv)
	resp := readDrawChoice(cc.reader, sv, canTakeDiscard)
	if resp.Source == "discard" {
		return game.DrawFromDiscard, nil
	}
	return game.DrawFromDeck, nil
}

func (cc *ConsoleController) ProposePhase(ctx context.Context, state *game.GameState) ([][]int, error) {
	sv := BuildStateView(state, cc.player)
	renderState(sv)
	resp := readPhaseProposal(cc.reader, sv)
	if resp.Pass {
		return nil, nil
	}
	return resp.Groups, nil
}

func (cc *ConsoleController) ProposeHit(ctx context.Context, state *game.GameState, targets []game.HitTarget) (*game.Hit, error) {
	sv := BuildStateView(state, cc.player)
	renderState(sv)

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
	resp := readHitChoice(cc.reader, sv, views)
	if resp.Pass {
		return nil, nil
	}
	return &game.Hit{Target: targets[resp.Target], CardIndex: resp.CardIndex}, nil
}

func (cc *ConsoleController) ChooseDiscard(ctx context.Context, state *game.GameState) (int, error) {
	sv := BuildStateView(state, cc.player)
	renderState(sv)
	return readCardIndex(cc.reader, "Discard which card?", len(sv.Hand)), nil
}

// Notify prints events for the shared screen. Draw events of other seats
// come through without the drawn card, same as over the wire.
func (cc *ConsoleController) Notify(ctx context.Context, event log.GameEvent) error {
	// Only one console controller echoes shared events, or every line
	// would print once per seat.
	if cc.player != 0 {
		return nil
	}
	if event.Type == log.EventDraw {
		return nil
	}
	fmt.Println(log.FormatEvent(event))
	return nil
}
