// Package scoring implements the pool's fantasy point formulas and the bet
// scoring rules with their round-dependent tease adjustment.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

// QB scoring constants.
const (
	QBPassYardsPerPoint = 25
	QBPassTDPoints      = 4
	QBRushYardsPerPoint = 20
	QBRushTDPoints      = 6
	TurnoverPoints      = -2
)

// Skill position (RB/WR/TE) scoring constants.
const (
	SkillYardsPerPoint = 10
	SkillTDPoints      = 6
	PointsPerReception = 0.5
)

// Bet scoring constants. A won bet is worth the base award plus a bonus of
// one point per covering point (two per point for unders), capped at the max.
const (
	BetBasePoints      = 10
	BetMaxBonus        = 10
	UnderBonusPerPoint = 2
)

// ErrInvalidBetType marks a bet whose type is none of spread/over/under.
// Callers passing one have violated the scoring contract; runs treat it as
// fatal rather than a recoverable condition.
var ErrInvalidBetType = errors.New("invalid bet type")

// QBPoints scores a QB stat line: 1 pt per 25 passing yards, 4 per passing
// TD, 1 pt per 20 rushing yards, 6 per rushing TD, -2 per turnover.
func QBPoints(stats models.PlayerStats) float64 {
	return stats.PassYds/QBPassYardsPerPoint +
		float64(stats.PassTDs)*QBPassTDPoints +
		stats.RushYds/QBRushYardsPerPoint +
		float64(stats.RushTDs)*QBRushTDPoints +
		float64(stats.Ints+stats.FumblesLost)*TurnoverPoints
}

// SkillPoints scores an RB/WR/TE stat line: half-point PPR, 1 pt per 10
// combined yards, 6 per TD, -2 per fumble lost.
func SkillPoints(stats models.PlayerStats) float64 {
	totalYards := stats.RushYds + stats.RecYds
	totalTDs := stats.RushTDs + stats.RecTDs
	return totalYards/SkillYardsPerPoint +
		float64(totalTDs)*SkillTDPoints +
		float64(stats.Rec)*PointsPerReception +
		float64(stats.FumblesLost)*TurnoverPoints
}

// PlayerPoints scores a stat line using the formula for the given position.
func PlayerPoints(stats models.PlayerStats, pos models.Position) float64 {
	if pos == models.PositionQB {
		return QBPoints(stats)
	}
	return SkillPoints(stats)
}

// ProjectedPoints computes the full-game fantasy expectation implied by a
// projection, used for display alongside simulated expectations.
func ProjectedPoints(proj models.PlayerProjection) float64 {
	if proj.Position == models.PositionQB {
		return proj.PassYds/QBPassYardsPerPoint +
			proj.PassTDs*QBPassTDPoints +
			proj.RushYds/QBRushYardsPerPoint +
			proj.RushTDs*QBRushTDPoints +
			(proj.Ints+proj.FumblesLost)*TurnoverPoints
	}
	totalYards := proj.RushYds + proj.RecYds
	totalTDs := proj.RushTDs + proj.RecTDs
	return totalYards/SkillYardsPerPoint +
		totalTDs*SkillTDPoints +
		proj.Rec*PointsPerReception +
		proj.FumblesLost*TurnoverPoints
}

// betScorer evaluates one bet against realized scores. Resolving the bet's
// side and adjusted line once up front keeps the scalar and vectorized paths
// numerically identical.
type betScorer struct {
	betType      models.BetType
	adjustedLine float64
	betOnAway    bool
}

func newBetScorer(bet models.Bet) (*betScorer, error) {
	switch bet.Type {
	case models.BetSpread, models.BetOver, models.BetUnder:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBetType, bet.Type)
	}

	s := &betScorer{betType: bet.Type, adjustedLine: bet.AdjustedLine()}
	if bet.Type == models.BetSpread {
		away, _, err := models.ParseGameID(bet.GameID)
		if err != nil {
			return nil, err
		}
		s.betOnAway = bet.Team == away
	}
	return s, nil
}

// score awards points for one realized (away, home) score pair.
//
// Spread: coverMargin = actual margin from the bet side's perspective plus
// the adjusted line; a win pays 10 + min(10, coverMargin), an exact zero is
// a push and pays nothing.
// Over: margin = total - adjusted line, win pays 10 + min(10, margin).
// Under: margin = adjusted line - total, win pays 10 + min(10, 2*margin).
func (s *betScorer) score(awayScore, homeScore float64) float64 {
	switch s.betType {
	case models.BetOver:
		margin := awayScore + homeScore - s.adjustedLine
		if margin > 0 {
			return BetBasePoints + math.Min(BetMaxBonus, margin)
		}
		return 0
	case models.BetUnder:
		margin := s.adjustedLine - (awayScore + homeScore)
		if margin > 0 {
			return BetBasePoints + math.Min(BetMaxBonus, margin*UnderBonusPerPoint)
		}
		return 0
	default: // spread
		actualMargin := homeScore - awayScore
		if s.betOnAway {
			actualMargin = awayScore - homeScore
		}
		coverMargin := actualMargin + s.adjustedLine
		if coverMargin > 0 {
			return BetBasePoints + math.Min(BetMaxBonus, coverMargin)
		}
		return 0 // push or loss
	}
}

// BetPoints scores a bet against one realized game result.
func BetPoints(bet models.Bet, result models.GameResult) (float64, error) {
	scorer, err := newBetScorer(bet)
	if err != nil {
		return 0, err
	}
	return scorer.score(result.AwayScore, result.HomeScore), nil
}

// BetPointsTrials scores a bet against per-trial score arrays, one award per
// trial. The away and home slices must be the same length.
func BetPointsTrials(bet models.Bet, away, home []float64) ([]float64, error) {
	scorer, err := newBetScorer(bet)
	if err != nil {
		return nil, err
	}
	points := make([]float64, len(away))
	for i := range away {
		points[i] = scorer.score(away[i], home[i])
	}
	return points, nil
}
