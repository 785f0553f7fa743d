package game

import "math/rand"

// DeckSize is the fixed card count of a Phase 10 deck: two of each rank
// 1-12 in four colors (96), eight wilds and four skips.
const DeckSize = 108

// Deck is an ordered draw pile. The top of the deck is the last element,
// so Draw pops from the end.
type Deck struct {
	cards []Card
}

// NewDeck builds the full 108-card composition in a fixed order.
// Call Shuffle before play.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for rank := MinRank; rank <= MaxRank; rank++ {
		for _, color := range Colors {
			cards = append(cards, NumberCard(rank, color))
			cards = append(cards, NumberCard(rank, color))
		}
	}
	for _, color := range Colors {
		cards = append(cards, WildCard(color))
		cards = append(cards, WildCard(color))
	}
	for _, color := range Colors {
		cards = append(cards, SkipCard(color))
	}
	return &Deck{cards: cards}
}

// NewStackedDeck builds a deck with exactly the given cards, top card last.
// Used by scenarios and tests that need a known draw order.
func NewStackedDeck(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the deck order using the supplied RNG.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. The second return is false if the
// deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Refill places cards back into the deck. Callers shuffle afterwards.
func (d *Deck) Refill(cards []Card) {
	d.cards = append(d.cards, cards...)
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int { return len(d.cards) }

// Empty reports whether the deck has no cards left.
func (d *Deck) Empty() bool { return len(d.cards) == 0 }

// --- Discard pile ---

// DiscardPile is an ordered pile; only the top card is visible and drawable.
type DiscardPile struct {
	cards []Card
}

// Push places a card on top of the pile.
func (p *DiscardPile) Push(card Card) {
	p.cards = append(p.cards, card)
}

// TakeTop removes and returns the top card.
func (p *DiscardPile) TakeTop() (Card, bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	card := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return card, true
}

// PeekTop returns the top card without removing it.
func (p *DiscardPile) PeekTop() (Card, bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	return p.cards[len(p.cards)-1], true
}

// TakeAllButTop removes and returns every card except the top one.
// Used when the exhausted deck is rebuilt from the discard pile.
func (p *DiscardPile) TakeAllButTop() []Card {
	if len(p.cards) <= 1 {
		return nil
	}
	taken := make([]Card, len(p.cards)-1)
	copy(taken, p.cards[:len(p.cards)-1])
	p.cards = p.cards[len(p.cards)-1:]
	return taken
}

// Len returns the number of cards in the pile.
func (p *DiscardPile) Len() int { return len(p.cards) }

// Empty reports whether the pile has no cards.
func (p *DiscardPile) Empty() bool { return len(p.cards) == 0 }
