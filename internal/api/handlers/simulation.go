// Package handlers contains the gin HTTP handlers for the API.
package handlers

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ianmccall/wildcard-sim/internal/models"
	"github.com/ianmccall/wildcard-sim/internal/scoring"
	"github.com/ianmccall/wildcard-sim/internal/services"
	"github.com/ianmccall/wildcard-sim/internal/simulator"
	"github.com/ianmccall/wildcard-sim/pkg/utils"
)

// Owner colors matching the pool spreadsheet.
var ownerColors = map[string]string{
	"Ian":    "#f4e4d4",
	"Kevin":  "#fff2cc",
	"Torry":  "#fce5cd",
	"Daniel": "#f4cccc",
	"Ryan":   "#d9ead3",
	"Mitch":  "#cfe2f3",
	"David":  "#d9d2e9",
	"Nick":   "#b6d7a8",
}

const defaultOwnerColor = "#cccccc"

// SimulationHandler runs Monte Carlo simulations on demand.
type SimulationHandler struct {
	pool         *services.PoolService
	cache        *services.CacheService
	logger       *logrus.Logger
	defaultSims  int
	minSims      int
	maxSims      int
	teamScoreStd float64
}

func NewSimulationHandler(
	pool *services.PoolService,
	cache *services.CacheService,
	logger *logrus.Logger,
	defaultSims, minSims, maxSims int,
	teamScoreStd float64,
) *SimulationHandler {
	return &SimulationHandler{
		pool:         pool,
		cache:        cache,
		logger:       logger,
		defaultSims:  defaultSims,
		minSims:      minSims,
		maxSims:      maxSims,
		teamScoreStd: teamScoreStd,
	}
}

// DisplayData is the pre-computed dashboard payload.
type DisplayData struct {
	Owners       []OwnerDisplay `json:"owners"`
	Games        []GameDisplay  `json:"games"`
	NSimulations int            `json:"n_simulations"`
	Warnings     []string       `json:"warnings,omitempty"`
}

type OwnerDisplay struct {
	Name                 string          `json:"name"`
	Color                string          `json:"color"`
	WinProbability       float64         `json:"win_probability"`
	CurrentPts           float64         `json:"current_pts"`
	ProjectedPts         float64         `json:"projected_pts"`
	MinutesRemaining     int             `json:"minutes_remaining"`
	Players              []PlayerDisplay `json:"players"`
	PlayerCurrentTotal   float64         `json:"player_current_total"`
	PlayerProjectedTotal float64         `json:"player_projected_total"`
	Bets                 []BetDisplay    `json:"bets"`
}

type PlayerDisplay struct {
	Slot         string  `json:"slot"`
	Name         string  `json:"name,omitempty"`
	Team         string  `json:"team,omitempty"`
	CurrentPts   float64 `json:"current_pts"`
	ProjectedPts float64 `json:"projected_pts"`
}

type BetDisplay struct {
	Description  string  `json:"description"`
	Probability  float64 `json:"probability"`
	Status       string  `json:"status"`
	CurrentPts   float64 `json:"current_pts"`
	ProjectedPts float64 `json:"projected_pts"`
}

type GameDisplay struct {
	Matchup     string  `json:"matchup"`
	AwayScore   int     `json:"away_score"`
	HomeScore   int     `json:"home_score"`
	Status      string  `json:"status"`
	StatusClass string  `json:"status_class"`
	Spread      string  `json:"spread"`
	OverUnder   float64 `json:"over_under"`
}

// Simulate handles GET /simulate. Query params: n_sims (clamped to the
// configured range) and seed (optional; a seeded run is reproducible and
// bypasses the cache).
func (h *SimulationHandler) Simulate(c *gin.Context) {
	nSims := h.defaultSims
	if raw := c.Query("n_sims"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.SendValidationError(c, "n_sims must be an integer", raw)
			return
		}
		nSims = parsed
	}
	if nSims < h.minSims {
		nSims = h.minSims
	}
	if nSims > h.maxSims {
		nSims = h.maxSims
	}

	seeded := false
	var seed uint64
	if raw := c.Query("seed"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.SendValidationError(c, "seed must be a non-negative integer", raw)
			return
		}
		seed = parsed
		seeded = true
	}

	cacheKey := services.DisplayCacheKey(nSims)
	if !seeded {
		var cached DisplayData
		if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	if !seeded {
		seed = uint64(time.Now().UnixNano())
	}

	snapshot := h.pool.Snapshot()
	engine := simulator.NewEngine(seed, h.teamScoreStd, h.logger)
	result, err := engine.Run(snapshot, nSims)
	if err != nil {
		h.logger.WithError(err).Error("Simulation failed")
		utils.SendInternalError(c, "simulation failed")
		return
	}

	display := h.buildDisplayData(snapshot, result)

	if !seeded {
		if err := h.cache.Set(c.Request.Context(), cacheKey, display, 30*time.Second); err != nil {
			h.logger.WithError(err).Warn("Failed to cache simulation result")
		}
	}

	utils.SendSuccess(c, display)
}

// buildDisplayData folds the raw simulation output and current game state
// into the ready-to-render dashboard payload.
func (h *SimulationHandler) buildDisplayData(snapshot simulator.SimContext, result *simulator.Result) DisplayData {
	owners := make([]OwnerDisplay, 0, len(snapshot.Teams))

	for _, team := range snapshot.Teams {
		owner := OwnerDisplay{
			Name:           team.Owner,
			Color:          ownerColor(team.Owner),
			WinProbability: round3(result.WinProbabilities[team.Owner]),
		}

		for _, slot := range team.RosterSlots() {
			display := PlayerDisplay{Slot: slot.Slot}
			if slot.Name == "" {
				owner.Players = append(owner.Players, display)
				continue
			}
			display.Name = slot.Name

			proj, ok := snapshot.Projections[slot.Name]
			if !ok {
				owner.Players = append(owner.Players, display)
				continue
			}
			display.Team = proj.Team
			projected := scoring.ProjectedPoints(proj)

			current := 0.0
			if game := playerGame(snapshot.Games, proj.Team); game != nil {
				current = projected * (1 - game.FractionRemaining())
				owner.MinutesRemaining += game.TimeRemainingSeconds / 60
			}

			display.CurrentPts = round1(current)
			display.ProjectedPts = round1(projected)
			owner.PlayerCurrentTotal += current
			owner.PlayerProjectedTotal += projected
			owner.Players = append(owner.Players, display)
		}

		betCurrentTotal := 0.0
		betProjectedTotal := 0.0
		betOutcomes := result.BetProbabilities[team.Owner]
		for i, bet := range team.Bets {
			outcome := betOutcomes[fmt.Sprintf("bet%d", i)]
			display := BetDisplay{
				Description:  betDescription(bet),
				Probability:  round3(outcome.Probability),
				Status:       "pending",
				ProjectedPts: round1(outcome.ExpectedPoints),
			}

			if game, ok := snapshot.Games[bet.GameID]; ok && (game.IsFinal() || game.Quarter > 0) {
				display.Status = betStatus(bet, game)
				if game.IsFinal() {
					pts, err := scoring.BetPoints(bet, models.GameResult{
						AwayScore: float64(game.AwayScore),
						HomeScore: float64(game.HomeScore),
					})
					if err == nil {
						display.CurrentPts = round1(pts)
						betCurrentTotal += pts
					}
				}
			}

			owner.Bets = append(owner.Bets, display)
			betProjectedTotal += outcome.ExpectedPoints
		}

		owner.CurrentPts = round1(owner.PlayerCurrentTotal + betCurrentTotal)
		owner.ProjectedPts = round1(owner.PlayerProjectedTotal + betProjectedTotal)
		owner.PlayerCurrentTotal = round1(owner.PlayerCurrentTotal)
		owner.PlayerProjectedTotal = round1(owner.PlayerProjectedTotal)
		owners = append(owners, owner)
	}

	// Highest win probability first
	for i := 1; i < len(owners); i++ {
		for j := i; j > 0 && owners[j].WinProbability > owners[j-1].WinProbability; j-- {
			owners[j], owners[j-1] = owners[j-1], owners[j]
		}
	}

	return DisplayData{
		Owners:       owners,
		Games:        buildGameDisplays(snapshot.Games),
		NSimulations: result.NSimulations,
		Warnings:     result.Warnings,
	}
}

func buildGameDisplays(games map[string]*models.NFLGame) []GameDisplay {
	displays := make([]GameDisplay, 0, len(games))
	for gameID, game := range games {
		var status, statusClass string
		switch {
		case game.IsFinal():
			status, statusClass = "Final", "final"
		case game.Quarter == 0:
			status, statusClass = "Pre", "pre"
		default:
			// Quarter clock: total remaining minus the untouched quarters
			// after this one, so a fresh Q2 reads 15:00, not 0:00.
			quarterSeconds := game.TimeRemainingSeconds - (4-game.Quarter)*900
			if quarterSeconds < 0 {
				quarterSeconds = 0
			}
			status = fmt.Sprintf("Q%d %d:%02d", game.Quarter, quarterSeconds/60, quarterSeconds%60)
			statusClass = "live"
		}

		spread := "PK"
		if game.Spread != 0 {
			sign := ""
			if game.Spread > 0 {
				sign = "+"
			}
			spread = fmt.Sprintf("%s%g", sign, game.Spread)
		}

		displays = append(displays, GameDisplay{
			Matchup:     gameID,
			AwayScore:   game.AwayScore,
			HomeScore:   game.HomeScore,
			Status:      status,
			StatusClass: statusClass,
			Spread:      spread,
			OverUnder:   game.OverUnder,
		})
	}

	for i := 1; i < len(displays); i++ {
		for j := i; j > 0 && displays[j].Matchup < displays[j-1].Matchup; j-- {
			displays[j], displays[j-1] = displays[j-1], displays[j]
		}
	}
	return displays
}

// betDescription renders the bet with its teased line, the number that
// actually decides it.
func betDescription(bet models.Bet) string {
	gameShort := fmt.Sprintf("%s@%s", mustParseGameSide(bet.GameID, true), mustParseGameSide(bet.GameID, false))
	adjusted := bet.AdjustedLine()
	switch bet.Type {
	case models.BetOver:
		return fmt.Sprintf("%s: o%g", gameShort, adjusted)
	case models.BetUnder:
		return fmt.Sprintf("%s: u%g", gameShort, adjusted)
	default:
		sign := ""
		if adjusted >= 0 {
			sign = "+"
		}
		return fmt.Sprintf("%s: %s %s%g", gameShort, bet.Team, sign, adjusted)
	}
}

// betStatus reports how a bet stands against the current score.
func betStatus(bet models.Bet, game *models.NFLGame) string {
	total := float64(game.TotalScore())
	margin := float64(game.HomeScore - game.AwayScore)
	adjusted := bet.AdjustedLine()

	var edge float64
	switch bet.Type {
	case models.BetOver:
		edge = total - adjusted
	case models.BetUnder:
		edge = adjusted - total
	default:
		away, _, err := models.ParseGameID(bet.GameID)
		if err != nil {
			return "pending"
		}
		if bet.Team == away {
			edge = -margin + adjusted
		} else {
			edge = margin + adjusted
		}
	}

	var status string
	switch {
	case edge > 0:
		status = "winning"
	case edge == 0:
		status = "push"
	default:
		status = "losing"
	}

	if game.IsFinal() {
		switch status {
		case "winning":
			return "won"
		case "losing":
			return "lost"
		}
	}
	return status
}

func playerGame(games map[string]*models.NFLGame, team string) *models.NFLGame {
	var found *models.NFLGame
	for _, game := range games {
		if game.AwayTeam == team || game.HomeTeam == team {
			if found == nil || game.GameID < found.GameID {
				found = game
			}
		}
	}
	return found
}

func mustParseGameSide(gameID string, away bool) string {
	a, h, err := models.ParseGameID(gameID)
	if err != nil {
		return gameID
	}
	if away {
		return a
	}
	return h
}

func ownerColor(owner string) string {
	if color, ok := ownerColors[owner]; ok {
		return color
	}
	return defaultOwnerColor
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
