package models

import (
	"fmt"
	"strings"
)

// GameSeconds is the regulation length of an NFL game.
const GameSeconds = 3600

// Quarter values for NFLGame.Quarter.
const (
	QuarterNotStarted = 0
	QuarterFinal      = 5
)

// NFLGame is a contest with betting lines and live state. Game IDs follow the
// "AWAY @ HOME" convention, e.g. "SF @ PHI".
type NFLGame struct {
	GameID   string `json:"game_id"`
	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`

	// Spread is positive when the away side is favored, negative when the
	// home side is favored. OverUnder is the combined-score line.
	Spread    float64 `json:"spread"`
	OverUnder float64 `json:"over_under"`
	StartTime string  `json:"start_time,omitempty"`

	// Live state
	AwayScore            int `json:"away_score"`
	HomeScore            int `json:"home_score"`
	TimeRemainingSeconds int `json:"time_remaining_seconds"`
	Quarter              int `json:"quarter"` // 0 = not started, 1-4 = in progress, 5 = final
}

// IsFinal reports whether the game has ended.
func (g *NFLGame) IsFinal() bool {
	return g.Quarter == QuarterFinal || (g.Quarter == 4 && g.TimeRemainingSeconds == 0)
}

// FractionRemaining is the proportion of the game not yet played, in [0,1].
func (g *NFLGame) FractionRemaining() float64 {
	if g.IsFinal() {
		return 0
	}
	return float64(g.TimeRemainingSeconds) / GameSeconds
}

// TotalScore is the current combined score.
func (g *NFLGame) TotalScore() int {
	return g.AwayScore + g.HomeScore
}

// ExpectedScores derives expected final scores for each side from the betting
// lines, solving:
//
//	over_under = away + home
//	spread     = away - home
func (g *NFLGame) ExpectedScores() (away, home float64) {
	away = (g.OverUnder + g.Spread) / 2
	home = (g.OverUnder - g.Spread) / 2
	return away, home
}

// GameResult is a concrete pair of final scores, actual or simulated.
type GameResult struct {
	AwayScore float64 `json:"away_score"`
	HomeScore float64 `json:"home_score"`
}

// Total is the combined score.
func (r GameResult) Total() float64 {
	return r.AwayScore + r.HomeScore
}

// Margin is the home team's margin of victory (positive = home won).
func (r GameResult) Margin() float64 {
	return r.HomeScore - r.AwayScore
}

// ParseGameID splits a game ID like "SF @ PHI" into its away and home teams.
func ParseGameID(gameID string) (away, home string, err error) {
	parts := strings.Split(gameID, "@")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid game ID format: %q", gameID)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
