package game

import "sort"

// SortedCard pairs a card with its original position in the unsorted hand,
// so a selection made against the displayed order can be mapped back.
type SortedCard struct {
	Card  Card
	Index int
}

// SortHand returns a new ordering of the hand tuned to the given phase.
// The hand itself is never mutated, and the result is deterministic for
// equal inputs. Wilds and skips always sort last, keeping their hand order
// among themselves.
//
// Policies:
//   - set and mixed phases (1,2,3,7,9,10): group by rank, most frequent rank
//     first, ties by ascending rank, ascending color inside a group;
//   - run phases (4,5,6): ascending rank, ties by ascending color;
//   - color phase (8): group by color, biggest group first, ties by the
//     fixed color precedence, ascending rank inside a group.
func SortHand(hand []Card, phaseNumber int) []SortedCard {
	out := make([]SortedCard, len(hand))
	for i, c := range hand {
		out[i] = SortedCard{Card: c, Index: i}
	}

	phase, ok := PhaseByNumber(phaseNumber)
	if !ok {
		sortByRank(out)
		return out
	}

	switch leadKind(phase) {
	case ReqRun:
		sortByRank(out)
	case ReqColor:
		sortByColorGroup(out)
	default:
		sortByRankFrequency(out)
	}
	return out
}

// leadKind picks the sorting policy for a phase. Mixed set+run phases use
// the set policy: frequency grouping exposes the set portion while the
// remainder still trails in ascending rank order.
func leadKind(p Phase) RequirementKind {
	for _, r := range p.Requirements {
		if r.Kind == ReqSet {
			return ReqSet
		}
	}
	return p.Requirements[0].Kind
}

// kindOrder keeps numbers first, then wilds, then skips.
func kindOrder(c Card) int {
	switch c.Kind {
	case KindWild:
		return 1
	case KindSkip:
		return 2
	default:
		return 0
	}
}

func sortByRank(cards []SortedCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i].Card, cards[j].Card
		if ka, kb := kindOrder(a), kindOrder(b); ka != kb {
			return ka < kb
		}
		if a.Kind != KindNumber {
			return false // stable: wilds and skips keep hand order
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Color < b.Color
	})
}

func sortByRankFrequency(cards []SortedCard) {
	freq := make(map[int]int)
	for _, sc := range cards {
		if sc.Card.Kind == KindNumber {
			freq[sc.Card.Rank]++
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i].Card, cards[j].Card
		if ka, kb := kindOrder(a), kindOrder(b); ka != kb {
			return ka < kb
		}
		if a.Kind != KindNumber {
			return false
		}
		if fa, fb := freq[a.Rank], freq[b.Rank]; fa != fb {
			return fa > fb
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Color < b.Color
	})
}

func sortByColorGroup(cards []SortedCard) {
	count := make(map[Color]int)
	for _, sc := range cards {
		if sc.Card.Kind == KindNumber {
			count[sc.Card.Color]++
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i].Card, cards[j].Card
		if ka, kb := kindOrder(a), kindOrder(b); ka != kb {
			return ka < kb
		}
		if a.Kind != KindNumber {
			return false
		}
		if ca, cb := count[a.Color], count[b.Color]; ca != cb {
			return ca > cb
		}
		if a.Color != b.Color {
			return a.Color < b.Color
		}
		return a.Rank < b.Rank
	})
}
