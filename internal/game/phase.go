package game

import "fmt"

// RequirementKind is the shape of a single phase sub-requirement.
type RequirementKind int

const (
	ReqSet RequirementKind = iota
	ReqRun
	ReqColor
)

func (k RequirementKind) String() string {
	switch k {
	case ReqSet:
		return "set"
	case ReqRun:
		return "run"
	case ReqColor:
		return "color"
	default:
		return "unknown"
	}
}

// Requirement is one shape a meld group must satisfy: a set of Size equal
// ranks, a run of Size consecutive ranks, or Size cards of one color.
type Requirement struct {
	Kind RequirementKind
	Size int
}

func (r Requirement) String() string {
	switch r.Kind {
	case ReqSet:
		return fmt.Sprintf("set of %d", r.Size)
	case ReqRun:
		return fmt.Sprintf("run of %d", r.Size)
	case ReqColor:
		return fmt.Sprintf("%d cards of one color", r.Size)
	default:
		return "unknown requirement"
	}
}

// Phase is one of the ten fixed pattern requirements a player works
// through in order.
type Phase struct {
	Number       int
	Requirements []Requirement
	Description  string
	Hint         string
}

func (p Phase) String() string {
	return fmt.Sprintf("Phase %d: %s", p.Number, p.Description)
}

// CardsRequired returns the total number of cards a full lay-down needs.
func (p Phase) CardsRequired() int {
	total := 0
	for _, r := range p.Requirements {
		total += r.Size
	}
	return total
}

const PhaseCount = 10

// phases is the fixed rule table for all ten phases.
var phases = [PhaseCount]Phase{
	{1, []Requirement{{ReqSet, 3}, {ReqSet, 3}}, "2 sets of 3",
		"Look for pairs of the same number (like 5,5,5 and 8,8,8)"},
	{2, []Requirement{{ReqSet, 3}, {ReqRun, 4}}, "1 set of 3 + 1 run of 4",
		"Need 3 of a kind AND 4 consecutive numbers"},
	{3, []Requirement{{ReqSet, 4}, {ReqRun, 4}}, "1 set of 4 + 1 run of 4",
		"Need 4 of a kind AND 4 consecutive numbers"},
	{4, []Requirement{{ReqRun, 7}}, "1 run of 7",
		"Need 7 consecutive numbers (like 3,4,5,6,7,8,9)"},
	{5, []Requirement{{ReqRun, 8}}, "1 run of 8",
		"Need 8 consecutive numbers"},
	{6, []Requirement{{ReqRun, 9}}, "1 run of 9",
		"Need 9 consecutive numbers"},
	{7, []Requirement{{ReqSet, 4}, {ReqSet, 4}}, "2 sets of 4",
		"Look for two groups of 4 same numbers each"},
	{8, []Requirement{{ReqColor, 7}}, "7 cards of one color",
		"Need 7 cards all the same color (wilds count as any color)"},
	{9, []Requirement{{ReqSet, 5}, {ReqSet, 2}}, "1 set of 5 + 1 set of 2",
		"Need 5 of a kind AND 2 of a kind"},
	{10, []Requirement{{ReqSet, 5}, {ReqSet, 3}}, "1 set of 5 + 1 set of 3",
		"Need 5 of a kind AND 3 of a kind"},
}

// PhaseByNumber returns the phase with the given number (1-10).
func PhaseByNumber(n int) (Phase, bool) {
	if n < 1 || n > PhaseCount {
		return Phase{}, false
	}
	return phases[n-1], true
}

// AllPhases returns the full catalog in order.
func AllPhases() []Phase {
	return phases[:]
}
