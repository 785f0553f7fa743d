package game

import (
	"testing"

	"github.com/peterkuimelis/phaseten/internal/log"
)

func buildScenario(t *testing.T, sc *Scenario) *GameState {
	t.Helper()
	gs, err := sc.BuildState()
	if err != nil {
		t.Fatalf("BuildState: %v", err)
	}
	return gs
}

func turnPlayers(logger *log.MemoryLogger) []int {
	var players []int
	for _, e := range logger.EventsOfType(log.EventNewTurn) {
		players = append(players, e.Player)
	}
	return players
}

func TestGameCompletesWithWin(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Round: 8,
		Players: []ScenarioPlayer{
			{Name: "Ada", Phase: 10,
				Hand: []string{"7R", "7B", "7G", "7Y", "WR", "9R", "9B", "9G", "WB"}},
			{Name: "Bea", Phase: 3,
				Hand: []string{"1B", "2G", "3Y", "4B", "5G", "6Y", "8B", "10G", "11Y", "12B"}},
		},
		Discard: []string{"2B"},
		Deck:    []string{"1R"},
	})

	ada := NewScriptedController(t, "Ada").
		AddLay([]string{"7R", "7B", "7G", "7Y", "WR"}, []string{"9R", "9B", "9G"}).
		AddHit("WB", 0, 1).
		AddDiscard("1R")
	bea := NewScriptedController(t, "Bea")

	g, logger := runGameToCompletion(t, GameConfig{State: gs}, ada, bea)

	if !g.State.Over || g.State.Winner != 0 {
		t.Fatalf("winner = %d, want Ada (0)", g.State.Winner)
	}
	if len(logger.EventsOfType(log.EventPhaseComplete)) != 1 {
		t.Error("expected exactly one phase completion")
	}
	if len(logger.EventsOfType(log.EventHit)) != 1 {
		t.Error("expected exactly one hit")
	}
	if len(logger.EventsOfType(log.EventGoOut)) != 1 {
		t.Error("expected a go-out event")
	}

	// Bea keeps her whole hand: seven small cards and three big ones.
	if got := g.State.Players[1].Score; got != 65 {
		t.Errorf("Bea's score = %d, want 65", got)
	}
	if got := g.State.Players[0].Score; got != 0 {
		t.Errorf("Ada's score = %d, want 0", got)
	}
	if g.State.Players[1].PhaseNumber != 3 {
		t.Error("Bea advanced a phase without completing it")
	}
}

func TestGameWinTieBreakByScore(t *testing.T) {
	// Both players finish phase 10 in the same round; Bea's lower score
	// wins even though Ada went out.
	gs := buildScenario(t, &Scenario{
		Players: []ScenarioPlayer{
			{Name: "Ada", Phase: 10, Score: 50,
				Hand: []string{"7R", "7B", "7G", "7Y", "WR", "9R", "9B", "9G", "WB"}},
			{Name: "Bea", Phase: 10, Score: 10,
				Hand: []string{"1Y"},
				LayDowns: [][]string{
					{"8R", "8B", "8G", "8Y", "WG"},
					{"11R", "11B", "11G"},
				}},
		},
		Discard: []string{"2B"},
		Deck:    []string{"1R"},
	})

	ada := NewScriptedController(t, "Ada").
		AddLay([]string{"7R", "7B", "7G", "7Y", "WR"}, []string{"9R", "9B", "9G"}).
		AddHit("WB", 1, 1).
		AddDiscard("1R")
	bea := NewScriptedController(t, "Bea")

	g, _ := runGameToCompletion(t, GameConfig{State: gs}, ada, bea)

	if g.State.Winner != 1 {
		t.Fatalf("winner = %d, want Bea (1)", g.State.Winner)
	}
	// Bea's leftover card still counts against her.
	if got := g.State.Players[1].Score; got != 15 {
		t.Errorf("Bea's score = %d, want 15", got)
	}
	if len(g.State.Players[1].LayDowns[1].Cards) != 4 {
		t.Error("Ada's hit did not land on Bea's group")
	}
}

func TestSkipWithTwoPlayersRepeatsTurn(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Seed: 3,
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"SR", "1R", "2R", "3R", "4R", "5R", "6R", "7R", "8R", "9R"}},
			{Name: "Bea", Hand: []string{"1G", "2G", "3G", "4G", "5G", "6G", "7G", "8G", "9G", "10G"}},
		},
		Discard: []string{"12Y"},
	})

	ada := NewScriptedController(t, "Ada").AddDiscard("SR")
	bea := NewScriptedController(t, "Bea")

	_, logger := runGameToCompletion(t, GameConfig{State: gs, MaxTurns: 3}, ada, bea)

	got := turnPlayers(logger)
	want := []int{0, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("turn order = %v, want %v", got, want)
		}
	}
	if len(logger.EventsOfType(log.EventSkip)) != 1 {
		t.Error("expected one skip event")
	}
}

func TestSkipWithThreePlayersSkipsNext(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Seed: 3,
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"SR", "1R", "2R", "3R", "4R", "5R", "6R", "7R", "8R", "9R"}},
			{Name: "Bea", Hand: []string{"1G", "2G", "3G", "4G", "5G", "6G", "7G", "8G", "9G", "10G"}},
			{Name: "Cam", Hand: []string{"1B", "2B", "3B", "4B", "5B", "6B", "7B", "8B", "9B", "10B"}},
		},
		Discard: []string{"12Y"},
	})

	ada := NewScriptedController(t, "Ada").AddDiscard("SR")

	_, logger := runGameToCompletion(t, GameConfig{State: gs, MaxTurns: 2},
		ada, NewScriptedController(t, "Bea"), NewScriptedController(t, "Cam"))

	got := turnPlayers(logger)
	want := []int{0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("turn order = %v, want %v", got, want)
		}
	}
}

func TestSkipOnDiscardPileCannotBeTaken(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Seed: 3,
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"1R", "2R", "3R", "4R", "5R", "6R", "7R", "8R", "9R", "10R"}},
			{Name: "Bea", Hand: []string{"1G", "2G", "3G", "4G", "5G", "6G", "7G", "8G", "9G", "10G"}},
		},
		Discard: []string{"SG"},
	})

	ada := NewScriptedController(t, "Ada").AddDraw(DrawFromDiscard)

	_, logger := runGameToCompletion(t, GameConfig{State: gs, MaxTurns: 1},
		ada, NewScriptedController(t, "Bea"))

	if len(logger.EventsOfType(log.EventDrawDiscard)) != 0 {
		t.Error("skip was taken from the discard pile")
	}
	if len(logger.EventsOfType(log.EventDraw)) != 1 {
		t.Error("draw was not redirected to the deck")
	}
}

func TestDrawFromDiscardPile(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Seed: 3,
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"1R", "2R", "3R", "4R", "5R", "6R", "7R", "8R", "9R", "10R"}},
			{Name: "Bea", Hand: []string{"1G", "2G", "3G", "4G", "5G", "6G", "7G", "8G", "9G", "10G"}},
		},
		Discard: []string{"5B"},
	})

	ada := NewScriptedController(t, "Ada").AddDraw(DrawFromDiscard)

	g, logger := runGameToCompletion(t, GameConfig{State: gs, MaxTurns: 1},
		ada, NewScriptedController(t, "Bea"))

	draws := logger.EventsOfType(log.EventDrawDiscard)
	if len(draws) != 1 || draws[0].Card != "5 Blue" {
		t.Fatalf("discard draws = %v", draws)
	}
	// The pile's only card was taken; Ada's discard replaced it.
	if g.State.Discard.Len() != 1 {
		t.Errorf("discard pile has %d cards", g.State.Discard.Len())
	}
}

func TestDeckExhaustionReshufflesDiscard(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"1R", "2R", "3R", "4R", "5R", "6R", "7R", "8R", "9R", "10R"}},
			{Name: "Bea", Hand: []string{"1G", "2G", "3G", "4G", "5G", "6G", "7G", "8G", "9G", "10G"}},
		},
		Discard: []string{"2B", "3B", "4Y"},
		Deck:    []string{"11Y"},
	})

	_, logger := runGameToCompletion(t, GameConfig{State: gs, MaxTurns: 2, Seed: 5},
		NewScriptedController(t, "Ada"), NewScriptedController(t, "Bea"))

	reshuffles := logger.EventsOfType(log.EventReshuffle)
	if len(reshuffles) != 1 {
		t.Fatalf("expected one reshuffle, got %d", len(reshuffles))
	}
	// Both players still got their draw.
	if got := logger.EventsOfType(log.EventDraw); len(got) != 2 {
		t.Errorf("expected two deck draws, got %d", len(got))
	}
}

func TestInvalidMeldLeavesHandUntouched(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Seed: 3,
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"2R", "2B", "3G", "5R", "6B", "7G", "9Y", "10R", "11B", "12G"}},
			{Name: "Bea", Hand: []string{"1G", "2G", "3G", "4G", "5G", "6G", "7G", "8G", "9G", "10G"}},
		},
		Discard: []string{"12Y"},
	})

	ada := NewScriptedController(t, "Ada").
		AddLay([]string{"2R", "2B", "3G"}, []string{"5R", "6B", "7G"})

	g, logger := runGameToCompletion(t, GameConfig{State: gs, MaxTurns: 1},
		ada, NewScriptedController(t, "Bea"))

	if len(logger.EventsOfType(log.EventMeldRejected)) != 1 {
		t.Fatal("expected one rejected meld")
	}
	if len(logger.EventsOfType(log.EventPhaseComplete)) != 0 {
		t.Error("rejected meld still completed the phase")
	}
	p := g.State.Players[0]
	if p.Completed || len(p.LayDowns) != 0 {
		t.Error("rejected meld mutated player state")
	}
	// Drew one, discarded one.
	if len(p.Hand) != 10 {
		t.Errorf("hand has %d cards, want 10", len(p.Hand))
	}
}

func TestValidLayDownWithoutGoingOut(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Seed: 3,
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"2R", "2B", "2G", "9R", "9B", "9G", "5R", "6B", "7G", "8Y"}},
			{Name: "Bea", Hand: []string{"1G", "2G", "3G", "4G", "5G", "6G", "7G", "8G", "9G", "10G"}},
		},
		Discard: []string{"12Y"},
	})

	ada := NewScriptedController(t, "Ada").
		AddLay([]string{"2R", "2B", "2G"}, []string{"9R", "9B", "9G"})

	g, logger := runGameToCompletion(t, GameConfig{State: gs, MaxTurns: 1},
		ada, NewScriptedController(t, "Bea"))

	p := g.State.Players[0]
	if !p.Completed || len(p.LayDowns) != 2 {
		t.Fatal("lay-down did not register")
	}
	if len(p.Hand) != 4 {
		t.Errorf("hand has %d cards, want 4", len(p.Hand))
	}
	if len(logger.EventsOfType(log.EventGoOut)) != 0 {
		t.Error("player went out with cards in hand")
	}
}

func TestTotalCardsConserved(t *testing.T) {
	gs := buildScenario(t, &Scenario{
		Seed: 11,
		Players: []ScenarioPlayer{
			{Name: "Ada", Hand: []string{"1R", "2R", "3R", "4R", "5R", "6R", "7R", "8R", "9R", "10R"}},
			{Name: "Bea", Hand: []string{"1G", "2G", "3G", "4G", "5G", "6G", "7G", "8G", "9G", "10G"}},
		},
		Discard: []string{"12Y"},
	})

	if gs.TotalCards() != DeckSize {
		t.Fatalf("scenario starts with %d cards, want %d", gs.TotalCards(), DeckSize)
	}

	g, _ := runGameToCompletion(t, GameConfig{State: gs, MaxTurns: 25, Seed: 11},
		NewScriptedController(t, "Ada"), NewScriptedController(t, "Bea"))

	if got := g.State.TotalCards(); got != DeckSize {
		t.Errorf("cards in play = %d, want %d", got, DeckSize)
	}
}

func TestFreshGameDealsAndRuns(t *testing.T) {
	cfg := GameConfig{
		Names:    []string{"Ada", "Bea", "Cam"},
		Seed:     42,
		MaxTurns: 30,
	}
	g, logger := runGameToCompletion(t, cfg,
		NewScriptedController(t, "Ada"),
		NewScriptedController(t, "Bea"),
		NewScriptedController(t, "Cam"))

	for i, p := range g.State.Players {
		total := len(p.Hand)
		for _, ld := range p.LayDowns {
			total += len(ld.Cards)
		}
		if total < InitialHandSize {
			t.Errorf("player %d holds %d cards, want at least %d", i, total, InitialHandSize)
		}
	}
	if len(logger.EventsOfType(log.EventDeal)) != 1 {
		t.Error("expected one deal event")
	}
	if g.State.TotalCards() != DeckSize {
		t.Errorf("cards in play = %d, want %d", g.State.TotalCards(), DeckSize)
	}
}
