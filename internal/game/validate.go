package game

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors surfaced to controllers. All are recoverable: the turn
// loop re-prompts rather than aborting the game.
var (
	ErrEmptyDeck        = errors.New("deck and discard pile are exhausted")
	ErrInvalidMeld      = errors.New("invalid meld")
	ErrInvalidSelection = errors.New("invalid selection")
)

// ValidateGroups checks a declared lay-down for the given phase: one group
// per sub-requirement, in catalog order. It is a pure predicate; callers
// mutate hands only after it returns nil. A non-nil error wraps
// ErrInvalidMeld and names the failing sub-requirement.
func ValidateGroups(phaseNumber int, groups [][]Card) error {
	phase, ok := PhaseByNumber(phaseNumber)
	if !ok {
		return fmt.Errorf("%w: no such phase %d", ErrInvalidMeld, phaseNumber)
	}
	if len(groups) != len(phase.Requirements) {
		return fmt.Errorf("%w: phase %d needs %d groups, got %d",
			ErrInvalidMeld, phaseNumber, len(phase.Requirements), len(groups))
	}
	for i, req := range phase.Requirements {
		if err := CheckRequirement(req, groups[i]); err != nil {
			return fmt.Errorf("%w: group %d (%s): %v", ErrInvalidMeld, i+1, req, err)
		}
	}
	return nil
}

// ValidatePhase checks a single flat card selection against a phase,
// searching for any split of the cards into valid groups. Used by callers
// that do not declare groups explicitly, and by hit legality checks.
func ValidatePhase(phaseNumber int, cards []Card) bool {
	phase, ok := PhaseByNumber(phaseNumber)
	if !ok {
		return false
	}
	if len(cards) != phase.CardsRequired() {
		return false
	}
	if len(phase.Requirements) == 1 {
		return CheckRequirement(phase.Requirements[0], cards) == nil
	}
	// Two sub-requirements: try every split of the first group's size.
	first, second := phase.Requirements[0], phase.Requirements[1]
	found := false
	forEachSubset(len(cards), first.Size, func(chosen []int) bool {
		inFirst := make([]bool, len(cards))
		g1 := make([]Card, 0, first.Size)
		for _, idx := range chosen {
			inFirst[idx] = true
			g1 = append(g1, cards[idx])
		}
		g2 := make([]Card, 0, second.Size)
		for i, c := range cards {
			if !inFirst[i] {
				g2 = append(g2, c)
			}
		}
		if CheckRequirement(first, g1) == nil && CheckRequirement(second, g2) == nil {
			found = true
			return false
		}
		return true
	})
	return found
}

// CheckRequirement checks one group of cards against one requirement.
// Returns nil when the group satisfies it.
func CheckRequirement(req Requirement, cards []Card) error {
	if len(cards) != req.Size {
		return fmt.Errorf("needs exactly %d cards, got %d", req.Size, len(cards))
	}
	wilds := 0
	var numbers []Card
	for _, c := range cards {
		switch c.Kind {
		case KindSkip:
			return errors.New("skip cards cannot be melded")
		case KindWild:
			wilds++
		default:
			numbers = append(numbers, c)
		}
	}
	if len(numbers) == 0 {
		return errors.New("a group cannot be all wilds")
	}

	switch req.Kind {
	case ReqSet:
		rank := numbers[0].Rank
		for _, c := range numbers[1:] {
			if c.Rank != rank {
				return fmt.Errorf("mixed ranks %d and %d in a set", rank, c.Rank)
			}
		}
		return nil

	case ReqRun:
		ranks := make([]int, len(numbers))
		for i, c := range numbers {
			ranks[i] = c.Rank
		}
		sort.Ints(ranks)
		for i := 1; i < len(ranks); i++ {
			if ranks[i] == ranks[i-1] {
				return fmt.Errorf("duplicate rank %d in a run", ranks[i])
			}
		}
		if !wildsCoverRun(ranks, wilds, req.Size) {
			return fmt.Errorf("ranks cannot form %d consecutive values", req.Size)
		}
		return nil

	case ReqColor:
		counts := make(map[Color]int)
		for _, c := range numbers {
			counts[c.Color]++
		}
		for _, n := range counts {
			if n+wilds >= req.Size {
				return nil
			}
		}
		return errors.New("cards do not share one color")

	default:
		return fmt.Errorf("unknown requirement kind %d", req.Kind)
	}
}

// wildsCoverRun reports whether the given sorted, distinct ranks plus
// wildCount wilds can fill some window of length consecutive ranks within
// 1-12. Shared by run validation and run hit checks.
func wildsCoverRun(sortedRanks []int, wildCount, length int) bool {
	if len(sortedRanks)+wildCount != length {
		return false
	}
	if length > MaxRank-MinRank+1 {
		return false
	}
	for start := MinRank; start+length-1 <= MaxRank; start++ {
		gaps := 0
		next := 0
		for pos := start; pos < start+length; pos++ {
			if next < len(sortedRanks) && sortedRanks[next] == pos {
				next++
			} else {
				gaps++
			}
		}
		if next == len(sortedRanks) && gaps <= wildCount {
			return true
		}
	}
	return false
}

// forEachSubset calls fn with each k-subset of [0, n) until fn returns
// false. The chosen slice is reused between calls.
func forEachSubset(n, k int, fn func(chosen []int) bool) {
	chosen := make([]int, 0, k)
	var rec func(start int) bool
	rec = func(start int) bool {
		if len(chosen) == k {
			return fn(chosen)
		}
		for i := start; i <= n-(k-len(chosen)); i++ {
			chosen = append(chosen, i)
			cont := rec(i + 1)
			chosen = chosen[:len(chosen)-1]
			if !cont {
				return false
			}
		}
		return true
	}
	rec(0)
}
