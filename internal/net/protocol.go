package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// Attached to every prompt
	State *StateView `json:"state,omitempty"`

	// For "choose_draw"
	CanTakeDiscard bool `json:"can_take_discard,omitempty"`

	// For "choose_hit"
	Targets []TargetView `json:"targets,omitempty"`

	// For "game_over"
	Winner int    `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Round   int    `json:"round"`
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// StateView is the game state from one player's perspective. Hand contents
// are only ever the viewer's own, in sorted display order.
type StateView struct {
	You        int          `json:"you"`
	Round      int          `json:"round"`
	Turn       int          `json:"turn"`
	Current    int          `json:"current"`
	DeckCount  int          `json:"deck_count"`
	DiscardTop string       `json:"discard_top,omitempty"`
	Players    []PlayerView `json:"players"`
	Hand       []string     `json:"hand"`
	Phase      PhaseView    `json:"phase"`
}

// PlayerView shows one seat at the table.
type PlayerView struct {
	Name      string      `json:"name"`
	Phase     int         `json:"phase"`
	HandCount int         `json:"hand_count"`
	Score     int         `json:"score"`
	Completed bool        `json:"completed"`
	LayDowns  []GroupView `json:"laydowns,omitempty"`
}

// GroupView is one meld group on the table.
type GroupView struct {
	Kind  string   `json:"kind"`
	Cards []string `json:"cards"`
}

// PhaseView describes the viewer's current phase.
type PhaseView struct {
	Number      int      `json:"number"`
	Description string   `json:"description"`
	Hint        string   `json:"hint,omitempty"`
	Groups      []string `json:"groups"`
}

// TargetView is a numbered hit target.
type TargetView struct {
	Index  int      `json:"index"`
	Player string   `json:"player"`
	Group  string   `json:"group"`
	Cards  []string `json:"cards"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "draw"
	Source string `json:"source,omitempty"` // "deck" or "discard"

	// For "phase": card indices into the sorted hand, one list per group.
	// Empty groups with Pass set means the player is not laying down.
	Groups [][]int `json:"groups,omitempty"`
	Pass   bool    `json:"pass,omitempty"`

	// For "hit"
	Target    int `json:"target,omitempty"`
	CardIndex int `json:"card_index,omitempty"`

	// For "discard"
	Index int `json:"index,omitempty"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`
}
