package game

const (
	MinPlayers      = 2
	MaxPlayers      = 6
	InitialHandSize = 10
)

// GameState holds the complete state of a game session.
type GameState struct {
	Players []*Player
	Deck    *Deck
	Discard *DiscardPile

	Round   int // 1-based round counter
	Turn    int // 1-based turn counter within the round
	Current int // index of the player whose turn it is

	// Game result
	Winner int // index of the winning player, -1 while running
	Over   bool
	Result string
}

// NewGameState creates a fresh state for the given player names.
func NewGameState(names []string) *GameState {
	gs := &GameState{
		Deck:    NewDeck(),
		Discard: &DiscardPile{},
		Round:   1,
		Winner:  -1,
	}
	for _, name := range names {
		gs.Players = append(gs.Players, NewPlayer(name))
	}
	return gs
}

// CurrentPlayer returns the player whose turn it is.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.Current]
}

// NextIndex returns the player index step seats after the current one.
func (gs *GameState) NextIndex(step int) int {
	return (gs.Current + step) % len(gs.Players)
}

// TotalCards counts every card in play: deck, discard pile, hands and
// lay-downs. It must always equal DeckSize.
func (gs *GameState) TotalCards() int {
	total := gs.Deck.Len() + gs.Discard.Len()
	for _, p := range gs.Players {
		total += len(p.Hand)
		for _, g := range p.LayDowns {
			total += len(g.Cards)
		}
	}
	return total
}

// RoundOver reports whether some player has emptied their hand.
func (gs *GameState) RoundOver() bool {
	for _, p := range gs.Players {
		if len(p.Hand) == 0 {
			return true
		}
	}
	return false
}

// roundWinner returns the index of the player who went out, or -1.
func (gs *GameState) roundWinner() int {
	for i, p := range gs.Players {
		if len(p.Hand) == 0 {
			return i
		}
	}
	return -1
}

// HitTargets lists every lay-down group the given player may hit after
// completing their own phase: their own groups and those of every other
// player who has laid down.
func (gs *GameState) HitTargets(player int) []HitTarget {
	if !gs.Players[player].Completed {
		return nil
	}
	var targets []HitTarget
	for i, p := range gs.Players {
		if !p.Completed {
			continue
		}
		for g := range p.LayDowns {
			targets = append(targets, HitTarget{Player: i, Group: g})
		}
	}
	return targets
}

// HitTarget names one lay-down group on the table.
type HitTarget struct {
	Player int // owner of the lay-down
	Group  int // index into the owner's LayDowns
}

// Hit is a player's choice to play one hand card onto a target group.
// CardIndex addresses the sorted hand as displayed.
type Hit struct {
	Target    HitTarget
	CardIndex int
}
