package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("R%-2d T%-3d | %s", e.Round, e.Turn, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewRoundEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventNewRound,
		Details: fmt.Sprintf("=== Round %d ===", round),
	}
}

func NewShuffleEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventShuffle,
		Details: "Deck shuffled",
	}
}

func NewDealEvent(round, players, handSize int, upCard string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventDeal,
		Card:    upCard,
		Details: fmt.Sprintf("Dealt %d cards to %d players, %s turned up", handSize, players, upCard),
	}
}

func NewTurnEvent(round, turn, player int, name string, phase int) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("--- Turn %d: %s (phase %d) ---", turn, name, phase),
	}
}

func NewDrawEvent(round, turn, player int, name, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws from the deck", name),
	}
}

func NewDrawDiscardEvent(round, turn, player int, name, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventDrawDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s takes %s from the discard pile", name, cardName),
	}
}

func NewDiscardEvent(round, turn, player int, name, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", name, cardName),
	}
}

func NewReshuffleEvent(round, turn, count int) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  -1,
		Type:    EventReshuffle,
		Details: fmt.Sprintf("Deck empty, reshuffled %d cards from the discard pile", count),
	}
}

func NewPhaseCompleteEvent(round, turn, player int, name string, phase int, desc string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventPhaseComplete,
		Details: fmt.Sprintf("%s completes phase %d (%s)", name, phase, desc),
	}
}

func NewMeldRejectedEvent(round, turn, player int, name, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventMeldRejected,
		Details: fmt.Sprintf("%s's meld rejected: %s", name, reason),
	}
}

func NewHitEvent(round, turn, player int, name, cardName, targetName, group string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventHit,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s onto %s's %s", name, cardName, targetName, group),
	}
}

func NewSkipEvent(round, turn, player int, name, skippedName string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventSkip,
		Details: fmt.Sprintf("%s plays a Skip, %s loses a turn", name, skippedName),
	}
}

func NewGoOutEvent(round, turn, player int, name string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventGoOut,
		Details: fmt.Sprintf("%s goes out!", name),
	}
}

func NewScoreEvent(round, player int, name string, points, total int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventScore,
		Details: fmt.Sprintf("%s scores %d penalty points (total %d)", name, points, total),
	}
}

func NewRoundEndEvent(round, winner int, name string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  winner,
		Type:    EventRoundEnd,
		Details: fmt.Sprintf("Round %d won by %s", round, name),
	}
}

func NewWinEvent(round, winner int, name, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins the game! (%s)", name, reason),
	}
}
