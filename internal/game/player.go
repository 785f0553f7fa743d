package game

import (
	"fmt"
	"sort"
)

// LayDown is one completed meld group on the table, tied to the
// requirement it was laid for so later hits can be checked per shape.
type LayDown struct {
	Requirement Requirement
	Cards       []Card
}

// Player holds one player's entire state across a game.
type Player struct {
	Name        string
	Hand        []Card
	PhaseNumber int  // 1-10, the phase currently being attempted
	Completed   bool // laid down the current phase this round
	LayDowns    []LayDown
	Score       int // cumulative penalty points; lower is better
}

// NewPlayer creates a player starting at phase 1 with an empty hand.
func NewPlayer(name string) *Player {
	return &Player{Name: name, PhaseNumber: 1}
}

// CurrentPhase returns the phase the player is working on. A player who
// already finished phase 10 keeps reporting phase 10.
func (p *Player) CurrentPhase() Phase {
	n := p.PhaseNumber
	if n > PhaseCount {
		n = PhaseCount
	}
	phase, _ := PhaseByNumber(n)
	return phase
}

// Finished reports whether the player has completed all ten phases.
func (p *Player) Finished() bool {
	return p.PhaseNumber > PhaseCount
}

// AddToHand appends a card to the hand.
func (p *Player) AddToHand(card Card) {
	p.Hand = append(p.Hand, card)
}

// RemoveAt removes the card at the given hand index and returns it.
func (p *Player) RemoveAt(i int) (Card, error) {
	if i < 0 || i >= len(p.Hand) {
		return Card{}, fmt.Errorf("%w: hand index %d out of range", ErrInvalidSelection, i)
	}
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return card, nil
}

// removeAll removes the cards at the given hand indices and returns them
// in the order the indices were given. Indices must be distinct.
func (p *Player) removeAll(indices []int) ([]Card, error) {
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(p.Hand) {
			return nil, fmt.Errorf("%w: hand index %d out of range", ErrInvalidSelection, i)
		}
		if seen[i] {
			return nil, fmt.Errorf("%w: hand index %d used twice", ErrInvalidSelection, i)
		}
		seen[i] = true
	}
	cards := make([]Card, len(indices))
	for n, i := range indices {
		cards[n] = p.Hand[i]
	}
	// Delete from the back so earlier indices stay valid.
	desc := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(desc)))
	for _, i := range desc {
		p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	}
	return cards, nil
}

// HandPoints returns the penalty value of the cards left in hand.
func (p *Player) HandPoints() int {
	return HandPoints(p.Hand)
}

// SortedHand returns the hand ordered for the player's current phase.
func (p *Player) SortedHand() []SortedCard {
	return SortHand(p.Hand, p.PhaseNumber)
}

// ResetForRound clears per-round state while keeping phase progress and
// score.
func (p *Player) ResetForRound() {
	p.Hand = nil
	p.Completed = false
	p.LayDowns = nil
}

// AdvancePhase moves to the next phase if the current one was completed
// this round. The index moves by exactly one.
func (p *Player) AdvancePhase() {
	if p.Completed && p.PhaseNumber <= PhaseCount {
		p.PhaseNumber++
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (phase %d, %d cards, %d points)", p.Name, p.PhaseNumber, len(p.Hand), p.Score)
}

// --- Hitting ---

// CanHit reports whether a single card may be added to an existing
// lay-down group. The combined group must still satisfy the group's shape
// grown by one, so wild gap arithmetic is shared with lay-down validation.
// Run groups cannot grow past 12 cards and skips can never be hit.
func CanHit(card Card, group LayDown) bool {
	if card.IsSkip() {
		return false
	}
	grown := Requirement{Kind: group.Requirement.Kind, Size: len(group.Cards) + 1}
	if grown.Kind == ReqRun && grown.Size > MaxRank-MinRank+1 {
		return false
	}
	combined := make([]Card, 0, grown.Size)
	combined = append(combined, group.Cards...)
	combined = append(combined, card)
	return CheckRequirement(grown, combined) == nil
}

// Hit moves the card at the given hand index onto the target group.
func (p *Player) Hit(handIndex int, target *Player, groupIndex int) error {
	if groupIndex < 0 || groupIndex >= len(target.LayDowns) {
		return fmt.Errorf("%w: no lay-down group %d", ErrInvalidSelection, groupIndex)
	}
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return fmt.Errorf("%w: hand index %d out of range", ErrInvalidSelection, handIndex)
	}
	card := p.Hand[handIndex]
	group := &target.LayDowns[groupIndex]
	if !CanHit(card, *group) {
		return fmt.Errorf("%w: %s cannot join the %s", ErrInvalidMeld, card, group.Requirement)
	}
	if _, err := p.RemoveAt(handIndex); err != nil {
		return err
	}
	group.Cards = append(group.Cards, card)
	return nil
}
