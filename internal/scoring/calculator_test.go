package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

func TestQBPoints(t *testing.T) {
	stats := models.PlayerStats{
		PassYds: 250, PassTDs: 2, Ints: 1,
		RushYds: 40, RushTDs: 1,
	}
	// 250/25 + 2*4 + 40/20 + 1*6 - 2 = 24
	assert.InDelta(t, 24.0, QBPoints(stats), 1e-9)
}

func TestQBPointsCountsFumblesAsTurnovers(t *testing.T) {
	stats := models.PlayerStats{PassYds: 100, Ints: 1, FumblesLost: 1}
	assert.InDelta(t, 0.0, QBPoints(stats), 1e-9)
}

func TestSkillPoints(t *testing.T) {
	stats := models.PlayerStats{
		Rec: 6, RecYds: 85, RecTDs: 1,
		RushYds: 40,
	}
	// 6*0.5 + (85+40)/10 + 1*6 = 21.5
	assert.InDelta(t, 21.5, SkillPoints(stats), 1e-9)
}

func TestPlayerPointsDispatchesOnPosition(t *testing.T) {
	stats := models.PlayerStats{RushYds: 100}
	assert.InDelta(t, 5.0, PlayerPoints(stats, models.PositionQB), 1e-9)
	assert.InDelta(t, 10.0, PlayerPoints(stats, models.PositionRB), 1e-9)
}

func TestProjectedPointsMatchesStatFormula(t *testing.T) {
	proj := models.PlayerProjection{
		Position: models.PositionRB,
		Rec:      4, RecYds: 32, RecTDs: 0.3,
		RushAtt: 18, RushYds: 85, RushTDs: 0.7,
		FumblesLost: 0.1,
	}
	// 4*0.5 + (32+85)/10 + 1.0*6 + 0.1*-2 = 19.5
	assert.InDelta(t, 19.5, ProjectedPoints(proj), 1e-9)
}

func TestBetPointsOver(t *testing.T) {
	bet := models.Bet{GameID: "BUF @ JAX", Type: models.BetOver, Line: 51.5, DraftRound: 2}
	// Round 2 tease 6 -> adjusted 45.5; total 49 covers by 3.5
	pts, err := BetPoints(bet, models.GameResult{AwayScore: 28, HomeScore: 21})
	require.NoError(t, err)
	assert.InDelta(t, 13.5, pts, 1e-9)

	// Total below the adjusted line scores nothing
	pts, err = BetPoints(bet, models.GameResult{AwayScore: 21, HomeScore: 21})
	require.NoError(t, err)
	assert.Zero(t, pts)
}

func TestBetPointsUnderDoubleBonus(t *testing.T) {
	bet := models.Bet{GameID: "HOU @ PIT", Type: models.BetUnder, Line: 39.5, DraftRound: 4}
	// Round 4 tease 4 -> adjusted 43.5; total 35 covers by 8.5, bonus capped
	pts, err := BetPoints(bet, models.GameResult{AwayScore: 21, HomeScore: 14})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, pts, 1e-9)

	// Margin 2 doubles to a bonus of 4
	pts, err = BetPoints(bet, models.GameResult{AwayScore: 21, HomeScore: 20.5})
	require.NoError(t, err)
	assert.InDelta(t, 14.0, pts, 1e-9)
}

func TestBetPointsSpread(t *testing.T) {
	// Home underdog +1.5 drafted round 3: tease 2.5 -> adjusted +4
	bet := models.Bet{GameID: "SF @ PHI", Type: models.BetSpread, Line: 1.5, Team: "PHI", DraftRound: 3}
	pts, err := BetPoints(bet, models.GameResult{AwayScore: 24, HomeScore: 21})
	require.NoError(t, err)
	assert.InDelta(t, 11.0, pts, 1e-9)

	// Away side of the same game with the same adjusted line
	awayBet := models.Bet{GameID: "SF @ PHI", Type: models.BetSpread, Line: 1.5, Team: "SF", DraftRound: 3}
	pts, err = BetPoints(awayBet, models.GameResult{AwayScore: 24, HomeScore: 21})
	require.NoError(t, err)
	assert.InDelta(t, 17.0, pts, 1e-9)
}

func TestBetPointsPush(t *testing.T) {
	// Adjusted spread of exactly the deficit is a push, zero points
	bet := models.Bet{GameID: "SF @ PHI", Type: models.BetSpread, Line: 3, Team: "PHI", DraftRound: 8}
	pts, err := BetPoints(bet, models.GameResult{AwayScore: 24, HomeScore: 21})
	require.NoError(t, err)
	assert.Zero(t, pts)

	over := models.Bet{GameID: "SF @ PHI", Type: models.BetOver, Line: 45, DraftRound: 8}
	pts, err = BetPoints(over, models.GameResult{AwayScore: 24, HomeScore: 21})
	require.NoError(t, err)
	assert.Zero(t, pts)
}

func TestBetPointsBonusCap(t *testing.T) {
	bet := models.Bet{GameID: "LAR @ CAR", Type: models.BetSpread, Line: 10.5, Team: "LAR", DraftRound: 8}
	pts, err := BetPoints(bet, models.GameResult{AwayScore: 45, HomeScore: 3})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, pts, 1e-9)
}

func TestBetPointsInvalidType(t *testing.T) {
	bet := models.Bet{GameID: "SF @ PHI", Type: "moneyline", Line: 1.5}
	_, err := BetPoints(bet, models.GameResult{})
	assert.ErrorIs(t, err, ErrInvalidBetType)

	_, err = BetPointsTrials(bet, []float64{1}, []float64{2})
	assert.ErrorIs(t, err, ErrInvalidBetType)
}

func TestBetPointsTrialsMatchesScalar(t *testing.T) {
	away := []float64{28, 21, 24, 17.5, 45}
	home := []float64{21, 21, 28, 26, 3}

	bets := []models.Bet{
		{GameID: "SF @ PHI", Type: models.BetOver, Line: 45.5, DraftRound: 1},
		{GameID: "SF @ PHI", Type: models.BetUnder, Line: 45.5, DraftRound: 5},
		{GameID: "SF @ PHI", Type: models.BetSpread, Line: -4.5, Team: "PHI", DraftRound: 3},
		{GameID: "SF @ PHI", Type: models.BetSpread, Line: 4.5, Team: "SF", DraftRound: 8},
	}

	for _, bet := range bets {
		trials, err := BetPointsTrials(bet, away, home)
		require.NoError(t, err)
		require.Len(t, trials, len(away))
		for i := range away {
			scalar, err := BetPoints(bet, models.GameResult{AwayScore: away[i], HomeScore: home[i]})
			require.NoError(t, err)
			assert.Equal(t, scalar, trials[i], "bet %s trial %d", bet, i)
		}
	}
}
