package game

import (
	"context"
	"strings"
	"testing"

	"github.com/peterkuimelis/phaseten/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined
// script of choices, selecting cards by code so tests stay readable.
// Exhausted scripts fall back to safe defaults: draw from the deck, pass
// on laying down and hitting, discard the first displayed card.
type ScriptedController struct {
	t    *testing.T
	name string

	draws    []DrawSource
	drawPos  int
	lays     [][][]string // one entry per ProposePhase call; empty = pass
	layPos   int
	hits     []scriptedHit // one entry per ProposeHit call
	hitPos   int
	discards []string // card codes; one entry per ChooseDiscard call
	discPos  int
}

type scriptedHit struct {
	code   string
	player int
	group  int
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddDraw(src DrawSource) *ScriptedController {
	sc.draws = append(sc.draws, src)
	return sc
}

// AddLay queues one lay-down attempt, one code list per group.
func (sc *ScriptedController) AddLay(groups ...[]string) *ScriptedController {
	sc.lays = append(sc.lays, groups)
	return sc
}

// AddLayPass queues an explicit pass for one lay-down prompt.
func (sc *ScriptedController) AddLayPass() *ScriptedController {
	sc.lays = append(sc.lays, nil)
	return sc
}

func (sc *ScriptedController) AddHit(code string, player, group int) *ScriptedController {
	sc.hits = append(sc.hits, scriptedHit{code: code, player: player, group: group})
	return sc
}

func (sc *ScriptedController) AddDiscard(code string) *ScriptedController {
	sc.discards = append(sc.discards, code)
	return sc
}

func (sc *ScriptedController) ChooseDrawSource(ctx context.Context, state *GameState, canTakeDiscard bool) (DrawSource, error) {
	if sc.drawPos >= len(sc.draws) {
		return DrawFromDeck, nil
	}
	src := sc.draws[sc.drawPos]
	sc.drawPos++
	return src, nil
}

func (sc *ScriptedController) ProposePhase(ctx context.Context, state *GameState) ([][]int, error) {
	if sc.layPos >= len(sc.lays) {
		return nil, nil
	}
	groups := sc.lays[sc.layPos]
	sc.layPos++
	if groups == nil {
		return nil, nil
	}

	sorted := state.CurrentPlayer().SortedHand()
	used := make(map[int]bool)
	result := make([][]int, len(groups))
	for gi, codes := range groups {
		for _, code := range codes {
			idx := findCode(sorted, code, used)
			if idx < 0 {
				sc.t.Fatalf("[%s] lay-down: no unused %s in hand", sc.name, code)
			}
			used[idx] = true
			result[gi] = append(result[gi], idx)
		}
	}
	return result, nil
}

func (sc *ScriptedController) ProposeHit(ctx context.Context, state *GameState, targets []HitTarget) (*Hit, error) {
	if sc.hitPos >= len(sc.hits) {
		return nil, nil
	}
	h := sc.hits[sc.hitPos]
	sc.hitPos++

	sorted := state.CurrentPlayer().SortedHand()
	idx := findCode(sorted, h.code, nil)
	if idx < 0 {
		sc.t.Fatalf("[%s] hit: no %s in hand", sc.name, h.code)
	}
	return &Hit{Target: HitTarget{Player: h.player, Group: h.group}, CardIndex: idx}, nil
}

func (sc *ScriptedController) ChooseDiscard(ctx context.Context, state *GameState) (int, error) {
	if sc.discPos >= len(sc.discards) {
		return 0, nil
	}
	code := sc.discards[sc.discPos]
	sc.discPos++

	sorted := state.CurrentPlayer().SortedHand()
	idx := findCode(sorted, code, nil)
	if idx < 0 {
		sc.t.Fatalf("[%s] discard: no %s in hand", sc.name, code)
	}
	return idx, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// findCode returns the first sorted-hand index holding the given card
// code, skipping indices already marked in used.
func findCode(sorted []SortedCard, code string, used map[int]bool) int {
	want := strings.ToUpper(code)
	for i, sc := range sorted {
		if used[i] {
			continue
		}
		if sc.Card.Code() == want {
			return i
		}
	}
	return -1
}

// --- Test card helpers ---

func n(rank int, color Color) Card { return NumberCard(rank, color) }

func cards(codes ...string) []Card {
	out := make([]Card, len(codes))
	for i, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// runGameToCompletion runs a game and returns it with its logger for
// inspection.
func runGameToCompletion(t *testing.T, cfg GameConfig, ctrls ...PlayerController) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 200
	}

	g, err := NewGame(cfg, ctrls...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	winner, err := g.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Run: %v", err)
	}

	t.Logf("Result: winner=%d (%s)", winner, g.State.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
	return g, logger
}
