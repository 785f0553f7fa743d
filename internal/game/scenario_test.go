package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		code string
		want Card
	}{
		{"5R", NumberCard(5, Red)},
		{"12y", NumberCard(12, Yellow)},
		{"WB", WildCard(Blue)},
		{"W", WildCard(Red)},
		{"sg", SkipCard(Green)},
		{" 7G ", NumberCard(7, Green)},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.code)
		if err != nil {
			t.Errorf("ParseCard(%q): %v", tt.code, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}

	for _, bad := range []string{"", "13R", "0G", "5", "XZ", "RR"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) succeeded", bad)
		}
	}
}

func TestParseCardRoundTripsCode(t *testing.T) {
	d := NewDeck()
	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		parsed, err := ParseCard(c.Code())
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", c.Code(), err)
		}
		if parsed != c {
			t.Fatalf("ParseCard(%q) = %v, want %v", c.Code(), parsed, c)
		}
	}
}

func TestLoadScenarioFile(t *testing.T) {
	yml := `
name: mid-round
seed: 9
round: 4
current: 1
players:
  - name: Ada
    phase: 8
    score: 45
    hand: [1G, 3G, 5G, 7G, WB, 2R, SB]
  - name: Bea
    phase: 4
    hand: [2B, 3B, 4B, 5B, 6B, 7B, 10Y, 11Y]
    laydowns:
      - [4R, 5R, 6G, 7Y, 8G, 9R, 10G]
discard: [12R, 12B]
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "mid-round" || sc.Seed != 9 {
		t.Errorf("scenario header = %q seed %d", sc.Name, sc.Seed)
	}

	gs, err := sc.BuildState()
	if err != nil {
		t.Fatalf("BuildState: %v", err)
	}

	if gs.Round != 4 || gs.Current != 1 {
		t.Errorf("round/current = %d/%d", gs.Round, gs.Current)
	}
	ada, bea := gs.Players[0], gs.Players[1]
	if ada.PhaseNumber != 8 || ada.Score != 45 || len(ada.Hand) != 7 {
		t.Errorf("Ada = %v", ada)
	}
	if bea.PhaseNumber != 4 || !bea.Completed || len(bea.LayDowns) != 1 {
		t.Errorf("Bea = %v", bea)
	}
	if top, _ := gs.Discard.PeekTop(); top.Code() != "12B" {
		t.Errorf("discard top = %s, want 12B", top.Code())
	}
	if gs.TotalCards() != DeckSize {
		t.Errorf("cards in play = %d, want %d", gs.TotalCards(), DeckSize)
	}
}

func TestBuildStateRejectsOverusedCards(t *testing.T) {
	sc := &Scenario{
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"5R", "5R", "5R"}}, // only two copies exist
			{Name: "Bea", Hand: []string{"1G"}},
		},
	}
	if _, err := sc.BuildState(); err == nil {
		t.Error("three copies of 5R accepted")
	}
}

func TestBuildStateRejectsInvalidLayDown(t *testing.T) {
	sc := &Scenario{
		Players: []ScenarioPlayer{
			{Name: "Ada", Phase: 4, Hand: []string{"1R"},
				LayDowns: [][]string{{"2R", "3B", "5G", "6Y", "7R", "8B", "9G"}}},
			{Name: "Bea", Hand: []string{"1G"}},
		},
	}
	if _, err := sc.BuildState(); err == nil {
		t.Error("gapped run accepted as an existing lay-down")
	}
}

func TestBuildStateStackedDeck(t *testing.T) {
	sc := &Scenario{
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"1R"}},
			{Name: "Bea", Hand: []string{"1G"}},
		},
		Discard: []string{"2B"},
		Deck:    []string{"9Y", "4G"},
	}
	gs, err := sc.BuildState()
	if err != nil {
		t.Fatalf("BuildState: %v", err)
	}
	first, _ := gs.Deck.Draw()
	second, _ := gs.Deck.Draw()
	if first.Code() != "9Y" || second.Code() != "4G" {
		t.Errorf("draw order = %s, %s; want 9Y, 4G", first.Code(), second.Code())
	}
	if !gs.Deck.Empty() {
		t.Error("stacked deck holds extra cards")
	}
}
