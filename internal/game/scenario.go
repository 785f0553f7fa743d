package game

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario describes a prepared mid-game position loaded from YAML. Cards
// are written as compact codes: "5R" is a red 5, "12Y" a yellow 12, "WB" a
// wild, "SG" a skip. Any card not placed by the scenario goes into the
// deck, which is shuffled with the scenario seed unless an explicit deck
// order is given.
type Scenario struct {
	Name    string           `yaml:"name"`
	Seed    int64            `yaml:"seed"`
	Round   int              `yaml:"round"`
	Current int              `yaml:"current"`
	Players []ScenarioPlayer `yaml:"players"`
	Discard []string         `yaml:"discard"` // bottom first, top last
	Deck    []string         `yaml:"deck"`    // optional, next draw first
}

// ScenarioPlayer is one seat in a scenario file.
type ScenarioPlayer struct {
	Name     string     `yaml:"name"`
	Phase    int        `yaml:"phase"`
	Score    int        `yaml:"score"`
	Hand     []string   `yaml:"hand"`
	LayDowns [][]string `yaml:"laydowns"` // one list per completed group
}

// LoadScenario parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}
	return &sc, nil
}

// ParseCard parses a compact card code. The color letter is required for
// number cards and optional for wilds ("W") and skips ("S"), which default
// to red.
func ParseCard(code string) (Card, error) {
	s := strings.ToUpper(strings.TrimSpace(code))
	if s == "" {
		return Card{}, fmt.Errorf("empty card code")
	}

	color := Red
	last := s[len(s)-1]
	hasColor := false
	switch last {
	case 'R':
		color, hasColor = Red, true
	case 'B':
		color, hasColor = Blue, true
	case 'G':
		color, hasColor = Green, true
	case 'Y':
		color, hasColor = Yellow, true
	}
	body := s
	if hasColor {
		body = s[:len(s)-1]
	}

	switch body {
	case "W":
		return WildCard(color), nil
	case "S":
		return SkipCard(color), nil
	}
	rank, err := strconv.Atoi(body)
	if err != nil || !hasColor {
		return Card{}, fmt.Errorf("bad card code %q", code)
	}
	if rank < MinRank || rank > MaxRank {
		return Card{}, fmt.Errorf("bad card code %q: rank out of range", code)
	}
	return NumberCard(rank, color), nil
}

func parseCards(codes []string) ([]Card, error) {
	cards := make([]Card, len(codes))
	for i, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}

// BuildState turns a scenario into a ready-to-run GameState. Every card
// placed by the scenario is subtracted from the full 108-card deck; the
// remainder forms the draw pile.
func (sc *Scenario) BuildState() (*GameState, error) {
	if len(sc.Players) < MinPlayers || len(sc.Players) > MaxPlayers {
		return nil, fmt.Errorf("scenario needs %d-%d players, got %d", MinPlayers, MaxPlayers, len(sc.Players))
	}

	names := make([]string, len(sc.Players))
	for i, sp := range sc.Players {
		names[i] = sp.Name
	}
	gs := NewGameState(names)
	if sc.Round > 0 {
		gs.Round = sc.Round
	}
	if sc.Current < 0 || sc.Current >= len(sc.Players) {
		return nil, fmt.Errorf("scenario current player %d out of range", sc.Current)
	}
	gs.Current = sc.Current

	pool := newCardPool()

	for i, sp := range sc.Players {
		p := gs.Players[i]
		if sp.Phase > 0 {
			p.PhaseNumber = sp.Phase
		}
		p.Score = sp.Score

		hand, err := parseCards(sp.Hand)
		if err != nil {
			return nil, fmt.Errorf("player %s hand: %w", sp.Name, err)
		}
		if err := pool.take(hand); err != nil {
			return nil, fmt.Errorf("player %s hand: %w", sp.Name, err)
		}
		p.Hand = hand

		if len(sp.LayDowns) > 0 {
			phase := p.CurrentPhase()
			if len(sp.LayDowns) != len(phase.Requirements) {
				return nil, fmt.Errorf("player %s: phase %d has %d groups, scenario lists %d",
					sp.Name, phase.Number, len(phase.Requirements), len(sp.LayDowns))
			}
			for gi, codes := range sp.LayDowns {
				cards, err := parseCards(codes)
				if err != nil {
					return nil, fmt.Errorf("player %s lay-down %d: %w", sp.Name, gi+1, err)
				}
				req := Requirement{Kind: phase.Requirements[gi].Kind, Size: len(cards)}
				if err := CheckRequirement(req, cards); err != nil {
					return nil, fmt.Errorf("player %s lay-down %d: %w", sp.Name, gi+1, err)
				}
				if err := pool.take(cards); err != nil {
					return nil, fmt.Errorf("player %s lay-down %d: %w", sp.Name, gi+1, err)
				}
				p.LayDowns = append(p.LayDowns, LayDown{Requirement: req, Cards: cards})
			}
			p.Completed = true
		}
	}

	discard, err := parseCards(sc.Discard)
	if err != nil {
		return nil, fmt.Errorf("discard pile: %w", err)
	}
	if err := pool.take(discard); err != nil {
		return nil, fmt.Errorf("discard pile: %w", err)
	}
	for _, c := range discard {
		gs.Discard.Push(c)
	}

	if len(sc.Deck) > 0 {
		deck, err := parseCards(sc.Deck)
		if err != nil {
			return nil, fmt.Errorf("deck: %w", err)
		}
		if err := pool.take(deck); err != nil {
			return nil, fmt.Errorf("deck: %w", err)
		}
		// Codes list the next draw first, the deck stores it last.
		stacked := make([]Card, len(deck))
		for i, c := range deck {
			stacked[len(deck)-1-i] = c
		}
		gs.Deck = NewStackedDeck(stacked)
		return gs, nil
	}

	rest := pool.remaining()
	gs.Deck = NewStackedDeck(rest)
	gs.Deck.Shuffle(rand.New(rand.NewSource(sc.Seed)))
	return gs, nil
}

// cardPool tracks how many copies of each card are still unplaced.
type cardPool struct {
	counts map[Card]int
}

func newCardPool() *cardPool {
	pool := &cardPool{counts: make(map[Card]int)}
	for _, c := range NewDeck().cards {
		pool.counts[c]++
	}
	return pool
}

func (cp *cardPool) take(cards []Card) error {
	for _, c := range cards {
		if cp.counts[c] == 0 {
			return fmt.Errorf("too many copies of %s placed", c)
		}
		cp.counts[c]--
	}
	return nil
}

// remaining returns the unplaced cards in deterministic order.
func (cp *cardPool) remaining() []Card {
	var rest []Card
	for _, c := range NewDeck().cards {
		if cp.counts[c] > 0 {
			cp.counts[c]--
			rest = append(rest, c)
		}
	}
	return rest
}
