package simulator

import (
	"math"
	"sort"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

// DefaultTeamScoreStd is the historical per-team per-game scoring standard
// deviation, roughly 13-14 points for NFL teams.
const DefaultTeamScoreStd = 13.5

// minEffectiveFraction floors the remaining-game fraction at five minutes:
// even in the closing minutes a single play can still swing a score.
const minEffectiveFraction = 5.0 / 60.0

// minRemainingStd keeps late-game variance from collapsing below roughly one
// touchdown per side.
const minRemainingStd = 5.0

// GameScores holds per-trial simulated final scores for one game.
type GameScores struct {
	Away []float64
	Home []float64
}

// GameSimulator projects final game scores from betting lines and the
// current live state.
type GameSimulator struct {
	teamScoreStd float64
	sampler      *Sampler
}

// NewGameSimulator creates a game simulator drawing from the given shared
// sampler. A non-positive teamScoreStd falls back to DefaultTeamScoreStd.
func NewGameSimulator(sampler *Sampler, teamScoreStd float64) *GameSimulator {
	if teamScoreStd <= 0 {
		teamScoreStd = DefaultTeamScoreStd
	}
	return &GameSimulator{teamScoreStd: teamScoreStd, sampler: sampler}
}

// SimulateRemaining projects a game's final scores across n trials. A final
// game replicates its actual scores with zero variance; otherwise each
// side's remaining points are drawn independently from a Normal clamped at
// zero and added to the current score.
func (g *GameSimulator) SimulateRemaining(game *models.NFLGame, n int) GameScores {
	if game.IsFinal() {
		away := make([]float64, n)
		home := make([]float64, n)
		for i := 0; i < n; i++ {
			away[i] = float64(game.AwayScore)
			home[i] = float64(game.HomeScore)
		}
		return GameScores{Away: away, Home: home}
	}

	awayExp, homeExp := game.ExpectedScores()

	frac := math.Max(game.FractionRemaining(), minEffectiveFraction)
	remainingStd := math.Max(minRemainingStd, g.teamScoreStd*math.Sqrt(frac))

	away := g.sampler.SampleNormalMin(awayExp*frac, remainingStd, n, 0)
	home := g.sampler.SampleNormalMin(homeExp*frac, remainingStd, n, 0)

	for i := 0; i < n; i++ {
		away[i] += float64(game.AwayScore)
		home[i] += float64(game.HomeScore)
	}
	return GameScores{Away: away, Home: home}
}

// SimulateAll simulates every game once, in sorted game-ID order so that the
// shared random stream is consumed in a stable order across runs.
func (g *GameSimulator) SimulateAll(games map[string]*models.NFLGame, n int) map[string]GameScores {
	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make(map[string]GameScores, len(games))
	for _, id := range ids {
		results[id] = g.SimulateRemaining(games[id], n)
	}
	return results
}
