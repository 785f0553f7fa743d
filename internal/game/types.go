package game

import "fmt"

// --- Enums ---

type Color int

const (
	Red Color = iota
	Blue
	Green
	Yellow
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Yellow:
		return "Yellow"
	default:
		return "Unknown"
	}
}

// Colors lists all four card colors in precedence order.
// The order doubles as the tie-break for color-grouped hand sorting.
var Colors = [4]Color{Red, Blue, Green, Yellow}

type CardKind int

const (
	KindNumber CardKind = iota
	KindWild
	KindSkip
)

func (k CardKind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindWild:
		return "Wild"
	case KindSkip:
		return "Skip"
	default:
		return "Unknown"
	}
}

const (
	MinRank = 1
	MaxRank = 12
)

// --- Card ---

// Card is a single Phase 10 card. Cards are immutable values: rank is 1-12
// for number cards and 0 for wilds and skips. Wilds and skips still carry a
// printed color (it only matters for display).
type Card struct {
	Kind  CardKind
	Color Color
	Rank  int
}

// NumberCard builds a number card of the given rank and color.
func NumberCard(rank int, color Color) Card {
	return Card{Kind: KindNumber, Color: color, Rank: rank}
}

// WildCard builds a wild card with the given printed color.
func WildCard(color Color) Card {
	return Card{Kind: KindWild, Color: color}
}

// SkipCard builds a skip card with the given printed color.
func SkipCard(color Color) Card {
	return Card{Kind: KindSkip, Color: color}
}

func (c Card) IsWild() bool { return c.Kind == KindWild }
func (c Card) IsSkip() bool { return c.Kind == KindSkip }

// Points returns the scoring value of the card when left in a hand at the
// end of a round: ranks 1-9 score 5, ranks 10-12 score 10, wilds 25, skips 15.
func (c Card) Points() int {
	switch c.Kind {
	case KindWild:
		return 25
	case KindSkip:
		return 15
	default:
		if c.Rank >= 10 {
			return 10
		}
		return 5
	}
}

func (c Card) String() string {
	switch c.Kind {
	case KindWild:
		return "Wild"
	case KindSkip:
		return "Skip"
	default:
		return fmt.Sprintf("%d %s", c.Rank, c.Color)
	}
}

// Code returns a compact card code used by scenario files: "5R", "12Y",
// "W" plus a color letter for wilds, "S" plus a color letter for skips.
func (c Card) Code() string {
	letter := [4]string{"R", "B", "G", "Y"}[c.Color]
	switch c.Kind {
	case KindWild:
		return "W" + letter
	case KindSkip:
		return "S" + letter
	default:
		return fmt.Sprintf("%d%s", c.Rank, letter)
	}
}

// HandPoints sums the point values of a set of cards.
func HandPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// --- Draw sources ---

// DrawSource identifies where a player draws from at the start of a turn.
type DrawSource int

const (
	DrawFromDeck DrawSource = iota
	DrawFromDiscard
)

func (s DrawSource) String() string {
	if s == DrawFromDiscard {
		return "discard pile"
	}
	return "deck"
}
