package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewRound EventType = iota
	EventShuffle
	EventDeal
	EventNewTurn
	EventDraw
	EventDrawDiscard
	EventDiscard
	EventReshuffle
	EventPhaseComplete
	EventMeldRejected
	EventHit
	EventSkip
	EventGoOut
	EventScore
	EventRoundEnd
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventNewRound:
		return "NewRound"
	case EventShuffle:
		return "Shuffle"
	case EventDeal:
		return "Deal"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventDrawDiscard:
		return "DrawDiscard"
	case EventDiscard:
		return "Discard"
	case EventReshuffle:
		return "Reshuffle"
	case EventPhaseComplete:
		return "PhaseComplete"
	case EventMeldRejected:
		return "MeldRejected"
	case EventHit:
		return "Hit"
	case EventSkip:
		return "Skip"
	case EventGoOut:
		return "GoOut"
	case EventScore:
		return "Score"
	case EventRoundEnd:
		return "RoundEnd"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based)
	Turn    int       // which turn within the round (1-based)
	Player  int       // acting player index (-1 if none)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
