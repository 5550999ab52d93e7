package models

// RosterSlot pairs a roster slot label with the player name filling it.
type RosterSlot struct {
	Slot string `json:"slot"`
	Name string `json:"name"`
}

// FantasyTeam is one pool entrant: an owner, up to five roster slots holding
// player-name references, and up to three bets. The simulation core only
// reads from teams, it never mutates them.
type FantasyTeam struct {
	Owner string `json:"owner"`
	QB    string `json:"qb,omitempty"`
	RB    string `json:"rb,omitempty"`
	WR    string `json:"wr,omitempty"`
	TE    string `json:"te,omitempty"`
	Flex  string `json:"flex,omitempty"` // RB, WR, or TE
	Bets  []Bet  `json:"bets"`
}

// RosterSlots returns all slots in the fixed QB, RB, WR, TE, FLEX order,
// including empty ones.
func (t FantasyTeam) RosterSlots() []RosterSlot {
	return []RosterSlot{
		{Slot: "QB", Name: t.QB},
		{Slot: "RB", Name: t.RB},
		{Slot: "WR", Name: t.WR},
		{Slot: "TE", Name: t.TE},
		{Slot: "FLEX", Name: t.Flex},
	}
}

// PlayerNames returns the names on the roster in slot order, skipping empty
// slots. Simulation draw order depends on this ordering staying fixed.
func (t FantasyTeam) PlayerNames() []string {
	names := make([]string, 0, 5)
	for _, slot := range t.RosterSlots() {
		if slot.Name != "" {
			names = append(names, slot.Name)
		}
	}
	return names
}
