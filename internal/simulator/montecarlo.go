package simulator

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/ianmccall/wildcard-sim/internal/models"
	"github.com/ianmccall/wildcard-sim/internal/scoring"
)

// SimContext is the caller-owned input to one simulation run: the pool's
// teams, the slate of games keyed by game ID, projections keyed by player
// name, and optionally the stats players have already accumulated. The
// engine only reads from it; there is no process-global state.
type SimContext struct {
	Teams        []models.FantasyTeam
	Games        map[string]*models.NFLGame
	Projections  map[string]models.PlayerProjection
	CurrentStats map[string]models.PlayerStats
}

// BetOutcome is the aggregated result for a single bet.
type BetOutcome struct {
	Probability    float64 `json:"prob"`
	ExpectedPoints float64 `json:"expected_pts"`
}

// Result is the aggregate output of a Monte Carlo run.
type Result struct {
	WinProbabilities     map[string]float64               `json:"win_probabilities"`
	ExpectedScores       map[string]float64               `json:"expected_scores"`
	ScoreStd             map[string]float64               `json:"score_std"`
	NSimulations         int                              `json:"n_simulations"`
	BetProbabilities     map[string]map[string]BetOutcome `json:"bet_probabilities"`
	PlayerExpectedPoints map[string]float64               `json:"player_expected_points"`
	Warnings             []string                         `json:"warnings,omitempty"`
}

// Engine orchestrates Monte Carlo trials. One engine is built per run,
// seeded once; its game and player simulators share a single random stream.
// Draw order is fixed: games in sorted ID order, then per team in input
// order its roster slots (QB, RB, WR, TE, FLEX) followed by its bets.
// Changing that order changes results even under the same seed.
type Engine struct {
	gameSim   *GameSimulator
	playerSim *PlayerSimulator
	logger    *logrus.Logger
}

// NewEngine creates an engine seeded for one run. teamScoreStd tunes game
// score variance; pass 0 for the default.
func NewEngine(seed uint64, teamScoreStd float64, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	sampler := NewSampler(seed)
	return &Engine{
		gameSim:   NewGameSimulator(sampler, teamScoreStd),
		playerSim: NewPlayerSimulator(sampler),
		logger:    logger,
	}
}

// Run executes n trials and aggregates win probabilities, expected scores,
// and per-bet and per-player expectations. Missing projections and games are
// non-fatal: they contribute zero and are surfaced as warnings. An invalid
// bet type is a caller contract violation and fails the run.
func (e *Engine) Run(ctx SimContext, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("trial count must be positive, got %d", n)
	}
	if len(ctx.Teams) == 0 {
		return nil, fmt.Errorf("no teams to simulate")
	}

	gameScores := e.gameSim.SimulateAll(ctx.Games, n)

	nTeams := len(ctx.Teams)
	totals := make([][]float64, nTeams)
	for i := range totals {
		totals[i] = make([]float64, n)
	}

	var warnings []string
	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		e.logger.Warn(msg)
		warnings = append(warnings, msg)
	}

	playerPoints := make(map[string]float64)
	betOutcomes := make(map[string]map[string]BetOutcome, nTeams)

	for i, team := range ctx.Teams {
		for _, name := range team.PlayerNames() {
			points, ok := e.simulatePlayer(ctx, name, n, warn)
			if !ok {
				playerPoints[name] = 0
				continue
			}
			for t := 0; t < n; t++ {
				totals[i][t] += points[t]
			}
			playerPoints[name] = stat.Mean(points, nil)
		}

		betOutcomes[team.Owner] = make(map[string]BetOutcome, len(team.Bets))
		for j, bet := range team.Bets {
			key := fmt.Sprintf("bet%d", j)
			scores, ok := gameScores[bet.GameID]
			if !ok {
				warn("no game found for bet %s (owner %s)", bet, team.Owner)
				betOutcomes[team.Owner][key] = BetOutcome{}
				continue
			}
			points, err := scoring.BetPointsTrials(bet, scores.Away, scores.Home)
			if err != nil {
				return nil, fmt.Errorf("scoring bet %s for %s: %w", bet, team.Owner, err)
			}
			wins := 0
			for t := 0; t < n; t++ {
				totals[i][t] += points[t]
				if points[t] > 0 {
					wins++
				}
			}
			betOutcomes[team.Owner][key] = BetOutcome{
				Probability:    float64(wins) / float64(n),
				ExpectedPoints: stat.Mean(points, nil),
			}
		}
	}

	// Per-trial winner is the team with the maximum total; exact ties go to
	// the lowest team index.
	winCounts := make([]int, nTeams)
	for t := 0; t < n; t++ {
		best := 0
		for i := 1; i < nTeams; i++ {
			if totals[i][t] > totals[best][t] {
				best = i
			}
		}
		winCounts[best]++
	}

	result := &Result{
		WinProbabilities:     make(map[string]float64, nTeams),
		ExpectedScores:       make(map[string]float64, nTeams),
		ScoreStd:             make(map[string]float64, nTeams),
		NSimulations:         n,
		BetProbabilities:     betOutcomes,
		PlayerExpectedPoints: playerPoints,
		Warnings:             warnings,
	}
	for i, team := range ctx.Teams {
		result.WinProbabilities[team.Owner] = float64(winCounts[i]) / float64(n)
		result.ExpectedScores[team.Owner] = stat.Mean(totals[i], nil)
		result.ScoreStd[team.Owner] = stat.PopStdDev(totals[i], nil)
	}
	return result, nil
}

// simulatePlayer produces a player's per-trial point array, or reports a
// warning and false when the projection or game lookup fails.
func (e *Engine) simulatePlayer(ctx SimContext, name string, n int, warn func(string, ...interface{})) ([]float64, bool) {
	proj, ok := ctx.Projections[name]
	if !ok {
		warn("no projection found for %s", name)
		return nil, false
	}

	game := findTeamGame(ctx.Games, proj.Team)
	if game == nil {
		warn("no game found for %s (team %s)", name, proj.Team)
		return nil, false
	}

	current := ctx.CurrentStats[name]
	return e.playerSim.SimulateRemaining(proj, current, game.FractionRemaining(), n), true
}

// findTeamGame locates the game an NFL team is playing in. Iteration is over
// sorted IDs so lookups are deterministic even if a team somehow appears in
// two games.
func findTeamGame(games map[string]*models.NFLGame, team string) *models.NFLGame {
	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		g := games[id]
		if g.AwayTeam == team || g.HomeTeam == team {
			return g
		}
	}
	return nil
}
