package game

import (
	"reflect"
	"testing"
)

func codesOf(sorted []SortedCard) []string {
	out := make([]string, len(sorted))
	for i, sc := range sorted {
		out[i] = sc.Card.Code()
	}
	return out
}

func TestSortHandRunPhase(t *testing.T) {
	hand := cards("9B", "SR", "2Y", "WG", "7R", "2R", "11G")
	got := codesOf(SortHand(hand, 4))
	want := []string{"2R", "2Y", "7R", "9B", "11G", "WG", "SR"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("run sort = %v, want %v", got, want)
	}
}

func TestSortHandSetPhase(t *testing.T) {
	// 9s are the biggest group and lead; the lone cards trail by rank.
	hand := cards("3G", "9R", "WB", "9B", "5Y", "9G", "5R")
	got := codesOf(SortHand(hand, 1))
	want := []string{"9R", "9B", "9G", "5R", "5Y", "3G", "WB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("set sort = %v, want %v", got, want)
	}
}

func TestSortHandMixedPhaseUsesSetPolicy(t *testing.T) {
	// Phase 2 is a set plus a run; the set policy front-loads the pairs.
	hand := cards("4R", "7B", "7G", "2Y")
	got := codesOf(SortHand(hand, 2))
	want := []string{"7B", "7G", "2Y", "4R"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mixed-phase sort = %v, want %v", got, want)
	}
}

func TestSortHandColorPhase(t *testing.T) {
	// Three green beats two red; yellow is the lone straggler.
	hand := cards("8G", "1R", "3G", "12Y", "5R", "2G", "WB")
	got := codesOf(SortHand(hand, 8))
	want := []string{"2G", "3G", "8G", "1R", "5R", "12Y", "WB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("color sort = %v, want %v", got, want)
	}
}

func TestSortHandPureAndDeterministic(t *testing.T) {
	hand := []Card{n(9, Blue), WildCard(Red), n(2, Yellow), n(9, Red), SkipCard(Green)}
	before := append([]Card(nil), hand...)

	first := SortHand(hand, 1)
	second := SortHand(hand, 1)
	if !reflect.DeepEqual(first, second) {
		t.Error("same input sorted differently on repeat calls")
	}
	if !reflect.DeepEqual(hand, before) {
		t.Error("SortHand mutated the hand")
	}

	// Every entry must point back at its original slot.
	for _, sc := range first {
		if hand[sc.Index] != sc.Card {
			t.Errorf("index %d maps to %s, card says %s", sc.Index, hand[sc.Index], sc.Card)
		}
	}
}

func TestSortHandSpecialsKeepHandOrder(t *testing.T) {
	hand := cards("WG", "SR", "3B", "WR", "SY")
	got := codesOf(SortHand(hand, 4))
	want := []string{"3B", "WG", "WR", "SR", "SY"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("specials order = %v, want %v", got, want)
	}
}
