package models

import "fmt"

// Position identifies a fantasy roster position.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// ParsePosition converts a position string into a Position.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return Position(s), nil
	}
	return "", fmt.Errorf("unknown position: %q", s)
}

// PlayerProjection is a full-game expected box score for one player. All
// statistical fields are real-valued rates. Projections are read-only inputs
// to a simulation run; Scale returns a new value rather than mutating.
type PlayerProjection struct {
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	Position Position `json:"position"`

	// Passing (QB only)
	PassAtt float64 `json:"pass_att"`
	PassCmp float64 `json:"pass_cmp"`
	PassYds float64 `json:"pass_yds"`
	PassTDs float64 `json:"pass_tds"`
	Ints    float64 `json:"ints"`

	// Rushing
	RushAtt float64 `json:"rush_att"`
	RushYds float64 `json:"rush_yds"`
	RushTDs float64 `json:"rush_tds"`

	// Receiving
	Rec    float64 `json:"rec"`
	RecYds float64 `json:"rec_yds"`
	RecTDs float64 `json:"rec_tds"`

	FumblesLost float64 `json:"fumbles_lost"`
}

// YardsPerReception returns the projected average yards per reception.
func (p PlayerProjection) YardsPerReception() float64 {
	if p.Rec <= 0 {
		return 0
	}
	return p.RecYds / p.Rec
}

// YardsPerRush returns the projected average yards per carry.
func (p PlayerProjection) YardsPerRush() float64 {
	if p.RushAtt <= 0 {
		return 0
	}
	return p.RushYds / p.RushAtt
}

// YardsPerCompletion returns the projected average yards per pass completion.
func (p PlayerProjection) YardsPerCompletion() float64 {
	if p.PassCmp <= 0 {
		return 0
	}
	return p.PassYds / p.PassCmp
}

// Scale returns a copy of the projection with every rate field multiplied by
// fraction. Used to represent the expectation for the remaining part of a game.
func (p PlayerProjection) Scale(fraction float64) PlayerProjection {
	scaled := p
	scaled.PassAtt *= fraction
	scaled.PassCmp *= fraction
	scaled.PassYds *= fraction
	scaled.PassTDs *= fraction
	scaled.Ints *= fraction
	scaled.RushAtt *= fraction
	scaled.RushYds *= fraction
	scaled.RushTDs *= fraction
	scaled.Rec *= fraction
	scaled.RecYds *= fraction
	scaled.RecTDs *= fraction
	scaled.FumblesLost *= fraction
	return scaled
}

// PlayerStats is an accumulated or simulated actual box score. Counts are
// integers, yardage totals are real-valued.
type PlayerStats struct {
	PassYds     float64 `json:"pass_yds"`
	PassTDs     int     `json:"pass_tds"`
	Ints        int     `json:"ints"`
	RushYds     float64 `json:"rush_yds"`
	RushTDs     int     `json:"rush_tds"`
	Rec         int     `json:"rec"`
	RecYds      float64 `json:"rec_yds"`
	RecTDs      int     `json:"rec_tds"`
	FumblesLost int     `json:"fumbles_lost"`
}

// Add returns the pointwise sum of two stat lines, e.g. accumulated-so-far
// plus a simulated remainder.
func (s PlayerStats) Add(o PlayerStats) PlayerStats {
	return PlayerStats{
		PassYds:     s.PassYds + o.PassYds,
		PassTDs:     s.PassTDs + o.PassTDs,
		Ints:        s.Ints + o.Ints,
		RushYds:     s.RushYds + o.RushYds,
		RushTDs:     s.RushTDs + o.RushTDs,
		Rec:         s.Rec + o.Rec,
		RecYds:      s.RecYds + o.RecYds,
		RecTDs:      s.RecTDs + o.RecTDs,
		FumblesLost: s.FumblesLost + o.FumblesLost,
	}
}
