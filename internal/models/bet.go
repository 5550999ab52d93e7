package models

import "fmt"

// BetType is the kind of wager placed on a game.
type BetType string

const (
	BetSpread BetType = "spread"
	BetOver   BetType = "over"
	BetUnder  BetType = "under"
)

// MaxDraftRound is the last draft round; picks in it get no tease bonus.
const MaxDraftRound = 8

// Tease bonus lookup tables indexed by draft round 1..8. Index 0 is unused.
var (
	spreadTeaseByRound = [MaxDraftRound + 1]float64{0, 3.5, 3.0, 2.5, 2.0, 1.5, 1.0, 0.5, 0}
	ouTeaseByRound     = [MaxDraftRound + 1]float64{0, 7.0, 6.0, 5.0, 4.0, 3.0, 2.0, 1.0, 0}
)

// Bet is a wager on one game. Immutable once constructed. Team is set only
// for spread bets and names the side being bet on. DraftRound (1-8) sizes the
// tease bonus; rounds outside that range get no bonus.
type Bet struct {
	GameID     string  `json:"game_id"`
	Type       BetType `json:"bet_type"`
	Line       float64 `json:"line"`
	Team       string  `json:"team,omitempty"`
	DraftRound int     `json:"draft_round"`
}

// TeaseBonus is the line adjustment earned by the bet's draft round.
func (b Bet) TeaseBonus() float64 {
	if b.DraftRound < 1 || b.DraftRound > MaxDraftRound {
		return 0
	}
	if b.Type == BetSpread {
		return spreadTeaseByRound[b.DraftRound]
	}
	return ouTeaseByRound[b.DraftRound]
}

// AdjustedLine is the line after the tease bonus, always shifted in the
// bettor's favor: spreads gain points, overs get a lower bar, unders a
// higher ceiling.
func (b Bet) AdjustedLine() float64 {
	switch b.Type {
	case BetSpread, BetUnder:
		return b.Line + b.TeaseBonus()
	case BetOver:
		return b.Line - b.TeaseBonus()
	}
	return b.Line
}

// String renders the bet the way it appears on the pool's draft sheet.
func (b Bet) String() string {
	switch b.Type {
	case BetOver:
		return fmt.Sprintf("%s: o%g", b.GameID, b.Line)
	case BetUnder:
		return fmt.Sprintf("%s: u%g", b.GameID, b.Line)
	default:
		sign := ""
		if b.Line >= 0 {
			sign = "+"
		}
		return fmt.Sprintf("%s: %s %s%g", b.GameID, b.Team, sign, b.Line)
	}
}
