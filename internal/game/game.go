package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/phaseten/internal/log"
)

// PlayerController is the interface that human (console, network) and AI
// (MCP) players implement. All card and group indices refer to the sorted
// hand as returned by Player.SortedHand, which is what every front end
// displays.
type PlayerController interface {
	// ChooseDrawSource asks where to draw from at the start of the turn.
	// canTakeDiscard is false when the discard pile is empty or shows a skip.
	ChooseDrawSource(ctx context.Context, state *GameState, canTakeDiscard bool) (DrawSource, error)

	// ProposePhase asks for a lay-down attempt: one index group per
	// sub-requirement of the player's current phase, indices into the
	// sorted hand. A nil result passes without laying down.
	ProposePhase(ctx context.Context, state *GameState) ([][]int, error)

	// ProposeHit asks for a single hit onto one of the given targets.
	// A nil result ends the hitting step.
	ProposeHit(ctx context.Context, state *GameState, targets []HitTarget) (*Hit, error)

	// ChooseDiscard asks which sorted-hand index to discard.
	ChooseDiscard(ctx context.Context, state *GameState) (int, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Names     []string // player names, one per seat (2-6)
	Logger    log.EventLogger
	Seed      int64      // RNG seed (0 for time-based)
	NoShuffle bool       // skip the initial shuffle (for deterministic tests)
	MaxRounds int        // stop after this many rounds (0 = default limit)
	MaxTurns  int        // stop after this many total turns (0 = default limit)
	State     *GameState // start from a prepared state instead of dealing
}

// Game orchestrates an entire game between two to six players.
type Game struct {
	State       *GameState
	Controllers []PlayerController
	Logger      log.EventLogger
	ctx         context.Context
	rng         *rand.Rand
	noShuffle   bool
	maxRounds   int
	maxTurns    int
	turns       int  // total turns played across all rounds
	prepared    bool // state came in already dealt
}

// NewGame creates a new game from the given config and one controller per
// player.
func NewGame(cfg GameConfig, controllers ...PlayerController) (*Game, error) {
	gs := cfg.State
	if gs == nil {
		if len(cfg.Names) < MinPlayers || len(cfg.Names) > MaxPlayers {
			return nil, fmt.Errorf("need %d-%d players, got %d", MinPlayers, MaxPlayers, len(cfg.Names))
		}
		gs = NewGameState(cfg.Names)
	}
	if len(controllers) != len(gs.Players) {
		return nil, fmt.Errorf("%d players but %d controllers", len(gs.Players), len(controllers))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = 100 // safety limit
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = 10000
	}

	return &Game{
		State:       gs,
		Controllers: controllers,
		Logger:      logger,
		ctx:         context.Background(),
		rng:         rand.New(rand.NewSource(seed)),
		noShuffle:   cfg.NoShuffle,
		maxRounds:   maxRounds,
		maxTurns:    maxTurns,
		prepared:    cfg.State != nil,
	}, nil
}

// Run executes the entire game loop. Returns the winner's index, or -1 if
// the game ended without one (round limit, cancellation).
func (g *Game) Run(ctx context.Context) (int, error) {
	g.ctx = ctx
	gs := g.State

	if !g.prepared {
		g.startRound()
	}

	for !gs.Over {
		if g.turns >= g.maxTurns {
			gs.Over = true
			gs.Winner = -1
			gs.Result = fmt.Sprintf("Turn limit reached (%d turns)", g.maxTurns)
			break
		}
		g.turns++
		if err := g.runTurn(); err != nil {
			return gs.Winner, err
		}
		if err := g.ctx.Err(); err != nil {
			return -1, err
		}
		if gs.RoundOver() {
			g.endRound()
			if gs.Over {
				break
			}
			if gs.Round >= g.maxRounds {
				gs.Over = true
				gs.Winner = -1
				gs.Result = fmt.Sprintf("Round limit reached (%d rounds)", g.maxRounds)
				break
			}
			gs.Round++
			gs.Turn = 0
			g.startRound()
		}
	}

	return gs.Winner, nil
}

// startRound shuffles, deals ten cards to every player and turns one card
// up to start the discard pile.
func (g *Game) startRound() {
	gs := g.State
	g.log(log.NewRoundEvent(gs.Round))

	for _, p := range gs.Players {
		p.ResetForRound()
	}
	gs.Deck = NewDeck()
	gs.Discard = &DiscardPile{}

	if !g.noShuffle {
		gs.Deck.Shuffle(g.rng)
		g.log(log.NewShuffleEvent(gs.Round))
	}

	for i := 0; i < InitialHandSize; i++ {
		for _, p := range gs.Players {
			card, _ := gs.Deck.Draw()
			p.AddToHand(card)
		}
	}
	up, _ := gs.Deck.Draw()
	gs.Discard.Push(up)
	g.log(log.NewDealEvent(gs.Round, len(gs.Players), InitialHandSize, up.String()))
}

// runTurn executes a single turn for the current player: draw, optional
// lay-down, optional hits, discard.
func (g *Game) runTurn() error {
	gs := g.State
	gs.Turn++
	p := gs.CurrentPlayer()
	ctrl := g.Controllers[gs.Current]

	g.log(log.NewTurnEvent(gs.Round, gs.Turn, gs.Current, p.Name, p.PhaseNumber))

	if err := g.drawStep(p, ctrl); err != nil {
		return err
	}

	if !p.Completed {
		if err := g.layDownStep(p, ctrl); err != nil {
			return err
		}
	}

	if p.Completed && len(p.Hand) > 0 {
		if err := g.hitStep(p, ctrl); err != nil {
			return err
		}
	}

	step := 1
	if len(p.Hand) > 0 {
		var err error
		step, err = g.discardStep(p, ctrl)
		if err != nil {
			return err
		}
	}

	if len(p.Hand) == 0 {
		g.log(log.NewGoOutEvent(gs.Round, gs.Turn, gs.Current, p.Name))
		return nil
	}

	gs.Current = gs.NextIndex(step)
	return nil
}

// drawStep draws one card into the player's hand, from the deck or the
// discard pile. A skip on top of the discard pile cannot be taken.
func (g *Game) drawStep(p *Player, ctrl PlayerController) error {
	gs := g.State

	top, hasTop := gs.Discard.PeekTop()
	canTake := hasTop && !top.IsSkip()

	src, err := ctrl.ChooseDrawSource(g.ctx, gs, canTake)
	if err != nil {
		return err
	}
	if src == DrawFromDiscard && canTake {
		card, _ := gs.Discard.TakeTop()
		p.AddToHand(card)
		g.log(log.NewDrawDiscardEvent(gs.Round, gs.Turn, gs.Current, p.Name, card.String()))
		return nil
	}

	if gs.Deck.Empty() {
		g.reshuffle()
	}
	card, ok := gs.Deck.Draw()
	if !ok {
		// Every drawable card is in hands or lay-downs. Cannot happen in a
		// real game but a stacked test deck can get here.
		return ErrEmptyDeck
	}
	p.AddToHand(card)
	g.log(log.NewDrawEvent(gs.Round, gs.Turn, gs.Current, p.Name, card.String()))
	return nil
}

// reshuffle rebuilds the deck from the discard pile, leaving its top card
// in place.
func (g *Game) reshuffle() {
	gs := g.State
	cards := gs.Discard.TakeAllButTop()
	if len(cards) == 0 {
		return
	}
	gs.Deck.Refill(cards)
	gs.Deck.Shuffle(g.rng)
	g.log(log.NewReshuffleEvent(gs.Round, gs.Turn, len(cards)))
}

// layDownStep lets the player attempt their phase. Invalid melds are
// rejected with the hand untouched and the player is re-prompted until
// they pass or succeed.
func (g *Game) layDownStep(p *Player, ctrl PlayerController) error {
	gs := g.State

	for {
		groups, err := ctrl.ProposePhase(g.ctx, gs)
		if err != nil {
			return err
		}
		if groups == nil {
			return nil
		}
		if err := g.layDown(p, groups); err != nil {
			g.log(log.NewMeldRejectedEvent(gs.Round, gs.Turn, gs.Current, p.Name, err.Error()))
			continue
		}
		phase := p.CurrentPhase()
		g.log(log.NewPhaseCompleteEvent(gs.Round, gs.Turn, gs.Current, p.Name, phase.Number, phase.Description))
		return nil
	}
}

// layDown validates and applies one lay-down attempt. The groups index
// into the sorted hand; nothing is removed unless the whole attempt is
// valid.
func (g *Game) layDown(p *Player, displayGroups [][]int) error {
	sorted := p.SortedHand()
	phase := p.CurrentPhase()

	if len(displayGroups) != len(phase.Requirements) {
		return fmt.Errorf("%w: phase %d needs %d groups, got %d",
			ErrInvalidMeld, phase.Number, len(phase.Requirements), len(displayGroups))
	}

	seen := make(map[int]bool)
	origGroups := make([][]int, len(displayGroups))
	cardGroups := make([][]Card, len(displayGroups))
	for gi, group := range displayGroups {
		origGroups[gi] = make([]int, len(group))
		cardGroups[gi] = make([]Card, len(group))
		for ci, di := range group {
			if di < 0 || di >= len(sorted) {
				return fmt.Errorf("%w: card index %d out of range", ErrInvalidSelection, di)
			}
			if seen[di] {
				return fmt.Errorf("%w: card index %d used twice", ErrInvalidSelection, di)
			}
			seen[di] = true
			origGroups[gi][ci] = sorted[di].Index
			cardGroups[gi][ci] = sorted[di].Card
		}
	}

	if err := ValidateGroups(phase.Number, cardGroups); err != nil {
		return err
	}

	var flat []int
	for _, group := range origGroups {
		flat = append(flat, group...)
	}
	if _, err := p.removeAll(flat); err != nil {
		return err
	}
	for gi, req := range phase.Requirements {
		p.LayDowns = append(p.LayDowns, LayDown{Requirement: req, Cards: cardGroups[gi]})
	}
	p.Completed = true
	return nil
}

// hitStep lets a player who has laid down play leftover cards onto any
// completed group on the table, one at a time, until they pass or run out.
func (g *Game) hitStep(p *Player, ctrl PlayerController) error {
	gs := g.State

	for len(p.Hand) > 0 {
		targets := gs.HitTargets(gs.Current)
		if len(targets) == 0 {
			return nil
		}
		hit, err := ctrl.ProposeHit(g.ctx, gs, targets)
		if err != nil {
			return err
		}
		if hit == nil {
			return nil
		}
		if err := g.applyHit(p, hit); err != nil {
			g.log(log.NewMeldRejectedEvent(gs.Round, gs.Turn, gs.Current, p.Name, err.Error()))
		}
	}
	return nil
}

// applyHit resolves one hit against the table, mapping the sorted-hand
// index back to the real hand.
func (g *Game) applyHit(p *Player, hit *Hit) error {
	gs := g.State

	if hit.Target.Player < 0 || hit.Target.Player >= len(gs.Players) {
		return fmt.Errorf("%w: no player %d", ErrInvalidSelection, hit.Target.Player)
	}
	target := gs.Players[hit.Target.Player]
	if !target.Completed {
		return fmt.Errorf("%w: %s has not laid down", ErrInvalidSelection, target.Name)
	}

	sorted := p.SortedHand()
	if hit.CardIndex < 0 || hit.CardIndex >= len(sorted) {
		return fmt.Errorf("%w: card index %d out of range", ErrInvalidSelection, hit.CardIndex)
	}
	sc := sorted[hit.CardIndex]

	if err := p.Hit(sc.Index, target, hit.Target.Group); err != nil {
		return err
	}
	group := target.LayDowns[hit.Target.Group]
	g.log(log.NewHitEvent(gs.Round, gs.Turn, gs.Current, p.Name,
		sc.Card.String(), target.Name, group.Requirement.String()))
	return nil
}

// discardStep asks for a discard and applies skip-card turn advances.
// Returns how many seats the turn moves: 1 normally, 2 when a skip
// removes the next player's turn, 0 when a skip in a two-player game
// gives the current player another turn.
func (g *Game) discardStep(p *Player, ctrl PlayerController) (int, error) {
	gs := g.State

	var card Card
	for {
		idx, err := ctrl.ChooseDiscard(g.ctx, gs)
		if err != nil {
			return 0, err
		}
		sorted := p.SortedHand()
		if idx < 0 || idx >= len(sorted) {
			g.log(log.NewMeldRejectedEvent(gs.Round, gs.Turn, gs.Current, p.Name,
				fmt.Sprintf("card index %d out of range", idx)))
			continue
		}
		card, err = p.RemoveAt(sorted[idx].Index)
		if err != nil {
			return 0, err
		}
		break
	}

	gs.Discard.Push(card)
	g.log(log.NewDiscardEvent(gs.Round, gs.Turn, gs.Current, p.Name, card.String()))

	if !card.IsSkip() {
		return 1, nil
	}
	if len(gs.Players) == 2 {
		// Two players: skipping the opponent means playing again.
		g.log(log.NewSkipEvent(gs.Round, gs.Turn, gs.Current, p.Name, gs.Players[gs.NextIndex(1)].Name))
		return 0, nil
	}
	skipped := gs.Players[gs.NextIndex(1)]
	g.log(log.NewSkipEvent(gs.Round, gs.Turn, gs.Current, p.Name, skipped.Name))
	return 2, nil
}

// endRound scores the finished round, advances phases and decides whether
// the game is over.
func (g *Game) endRound() {
	gs := g.State
	winner := gs.roundWinner()
	g.log(log.NewRoundEndEvent(gs.Round, winner, gs.Players[winner].Name))

	for i, p := range gs.Players {
		if i == winner {
			continue
		}
		pts := p.HandPoints()
		p.Score += pts
		g.log(log.NewScoreEvent(gs.Round, i, p.Name, pts, p.Score))
	}
	for _, p := range gs.Players {
		p.AdvancePhase()
	}

	// The game ends once somebody has completed phase 10. If several
	// players finished in the same round, the lowest score wins.
	best := -1
	for i, p := range gs.Players {
		if !p.Finished() {
			continue
		}
		if best == -1 || p.Score < gs.Players[best].Score {
			best = i
		}
	}
	if best == -1 {
		return
	}
	gs.Over = true
	gs.Winner = best
	w := gs.Players[best]
	gs.Result = fmt.Sprintf("%s completed all ten phases with %d points", w.Name, w.Score)
	g.log(log.NewWinEvent(gs.Round, best, w.Name, fmt.Sprintf("%d points", w.Score)))
}

// log emits a game event through the logger and notifies every player.
func (g *Game) log(event log.GameEvent) {
	g.Logger.Log(event)
	for _, c := range g.Controllers {
		_ = c.Notify(g.ctx, event)
	}
}
