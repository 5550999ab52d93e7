package simulator

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

func testContext() SimContext {
	games := map[string]*models.NFLGame{
		"SF @ PHI": {GameID: "SF @ PHI", AwayTeam: "SF", HomeTeam: "PHI", Spread: -4.5, OverUnder: 44.5, TimeRemainingSeconds: models.GameSeconds},
		"GB @ CHI": {GameID: "GB @ CHI", AwayTeam: "GB", HomeTeam: "CHI", Spread: 1.5, OverUnder: 45.5, TimeRemainingSeconds: models.GameSeconds},
	}
	projections := map[string]models.PlayerProjection{
		"Jordan Love": {
			Name: "Jordan Love", Team: "GB", Position: models.PositionQB,
			PassAtt: 32, PassCmp: 21, PassYds: 240, PassTDs: 1.7, Ints: 0.8,
			RushAtt: 3, RushYds: 12, RushTDs: 0.1,
		},
		"Saquon Barkley": {
			Name: "Saquon Barkley", Team: "PHI", Position: models.PositionRB,
			RushAtt: 22, RushYds: 110, RushTDs: 0.9,
			Rec: 3, RecYds: 22, RecTDs: 0.1,
			FumblesLost: 0.1,
		},
	}
	teams := []models.FantasyTeam{
		{
			Owner: "Ian",
			QB:    "Jordan Love",
			Bets: []models.Bet{
				{GameID: "SF @ PHI", Type: models.BetOver, Line: 44.5, DraftRound: 3},
			},
		},
		{
			Owner: "Kevin",
			RB:    "Saquon Barkley",
			Bets: []models.Bet{
				{GameID: "GB @ CHI", Type: models.BetSpread, Line: 1.5, Team: "GB", DraftRound: 2},
			},
		},
	}
	return SimContext{Teams: teams, Games: games, Projections: projections}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRunRejectsNonPositiveTrials(t *testing.T) {
	engine := NewEngine(1, 0, quietLogger())
	_, err := engine.Run(testContext(), 0)
	assert.Error(t, err)
	_, err = engine.Run(testContext(), -5)
	assert.Error(t, err)
}

func TestRunRejectsEmptyTeamList(t *testing.T) {
	engine := NewEngine(1, 0, quietLogger())
	ctx := testContext()
	ctx.Teams = nil
	_, err := engine.Run(ctx, 100)
	assert.Error(t, err)
}

func TestRunWinProbabilitiesSumToOne(t *testing.T) {
	engine := NewEngine(42, 0, quietLogger())
	result, err := engine.Run(testContext(), 20000)
	require.NoError(t, err)

	sum := 0.0
	for _, p := range result.WinProbabilities {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, 20000, result.NSimulations)
	assert.Len(t, result.WinProbabilities, 2)
	assert.Empty(t, result.Warnings)
}

func TestRunReproducibleWithSameSeed(t *testing.T) {
	a, err := NewEngine(1234, 0, quietLogger()).Run(testContext(), 5000)
	require.NoError(t, err)
	b, err := NewEngine(1234, 0, quietLogger()).Run(testContext(), 5000)
	require.NoError(t, err)

	assert.Equal(t, a.WinProbabilities, b.WinProbabilities)
	assert.Equal(t, a.ExpectedScores, b.ExpectedScores)
	assert.Equal(t, a.BetProbabilities, b.BetProbabilities)
}

func TestRunAllFinalIsSeedIndependent(t *testing.T) {
	ctx := testContext()
	for _, game := range ctx.Games {
		game.Quarter = models.QuarterFinal
	}
	ctx.Games["SF @ PHI"].AwayScore = 24
	ctx.Games["SF @ PHI"].HomeScore = 27
	ctx.Games["GB @ CHI"].AwayScore = 21
	ctx.Games["GB @ CHI"].HomeScore = 17
	ctx.CurrentStats = map[string]models.PlayerStats{
		"Jordan Love":    {PassYds: 260, PassTDs: 2, Ints: 1},
		"Saquon Barkley": {RushYds: 120, RushTDs: 1, Rec: 4, RecYds: 30},
	}

	a, err := NewEngine(1, 0, quietLogger()).Run(ctx, 1000)
	require.NoError(t, err)
	b, err := NewEngine(999999, 0, quietLogger()).Run(ctx, 1000)
	require.NoError(t, err)

	// Nothing is random once every game is final
	assert.Equal(t, a.WinProbabilities, b.WinProbabilities)
	assert.Equal(t, a.ExpectedScores, b.ExpectedScores)
	for _, owner := range []string{"Ian", "Kevin"} {
		assert.Zero(t, a.ScoreStd[owner])
	}

	// Deterministic winner gets the full probability mass
	total := 0.0
	for _, p := range a.WinProbabilities {
		assert.Contains(t, []float64{0, 1}, p)
		total += p
	}
	assert.Equal(t, 1.0, total)
}

func TestRunTieBreaksToLowestIndex(t *testing.T) {
	// Two teams with identical empty rosters and no bets tie on zero in
	// every trial; the first team listed takes every win.
	ctx := SimContext{
		Teams: []models.FantasyTeam{{Owner: "Ian"}, {Owner: "Kevin"}},
		Games: map[string]*models.NFLGame{},
	}

	result, err := NewEngine(5, 0, quietLogger()).Run(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.WinProbabilities["Ian"])
	assert.Zero(t, result.WinProbabilities["Kevin"])
}

func TestRunMissingProjectionWarnsAndScoresZero(t *testing.T) {
	ctx := testContext()
	ctx.Teams[0].WR = "Unknown Player"

	result, err := NewEngine(42, 0, quietLogger()).Run(ctx, 1000)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "Unknown Player")
	assert.Zero(t, result.PlayerExpectedPoints["Unknown Player"])
}

func TestRunBetOnUnknownGameWarns(t *testing.T) {
	ctx := testContext()
	ctx.Teams[0].Bets = append(ctx.Teams[0].Bets, models.Bet{
		GameID: "DAL @ NYG", Type: models.BetOver, Line: 40, DraftRound: 1,
	})

	result, err := NewEngine(42, 0, quietLogger()).Run(ctx, 1000)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Warnings)
	outcome := result.BetProbabilities["Ian"]["bet1"]
	assert.Zero(t, outcome.Probability)
	assert.Zero(t, outcome.ExpectedPoints)
}

func TestRunInvalidBetTypeFails(t *testing.T) {
	ctx := testContext()
	ctx.Teams[0].Bets[0].Type = "moneyline"

	_, err := NewEngine(42, 0, quietLogger()).Run(ctx, 100)
	assert.Error(t, err)
}

func TestRunBetOutcomeAggregation(t *testing.T) {
	ctx := testContext()
	result, err := NewEngine(42, 0, quietLogger()).Run(ctx, 20000)
	require.NoError(t, err)

	// An over at the game's own total with a round-3 tease wins well over
	// half the time.
	outcome := result.BetProbabilities["Ian"]["bet0"]
	assert.Greater(t, outcome.Probability, 0.5)
	assert.LessOrEqual(t, outcome.Probability, 1.0)
	assert.Greater(t, outcome.ExpectedPoints, 5.0)
	// Expected points never exceed the 20 point maximum award
	assert.LessOrEqual(t, outcome.ExpectedPoints, 20.0)
}
