package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ianmccall/wildcard-sim/internal/models"
	"github.com/ianmccall/wildcard-sim/internal/providers"
	"github.com/ianmccall/wildcard-sim/internal/scoring"
	"github.com/ianmccall/wildcard-sim/internal/services"
	"github.com/ianmccall/wildcard-sim/pkg/utils"
)

// GamesHandler serves pool state: game states, rosters, and manual overrides.
type GamesHandler struct {
	pool   *services.PoolService
	espn   *providers.ESPNClient
	logger *logrus.Logger
}

func NewGamesHandler(pool *services.PoolService, espn *providers.ESPNClient, logger *logrus.Logger) *GamesHandler {
	return &GamesHandler{
		pool:   pool,
		espn:   espn,
		logger: logger,
	}
}

type gameStateResponse struct {
	AwayTeam          string  `json:"away_team"`
	HomeTeam          string  `json:"home_team"`
	AwayScore         int     `json:"away_score"`
	HomeScore         int     `json:"home_score"`
	Spread            float64 `json:"spread"`
	OverUnder         float64 `json:"over_under"`
	Quarter           int     `json:"quarter"`
	TimeRemaining     int     `json:"time_remaining"`
	IsFinal           bool    `json:"is_final"`
	FractionRemaining float64 `json:"fraction_remaining"`
}

type teamResponse struct {
	Owner string        `json:"owner"`
	QB    string        `json:"qb,omitempty"`
	RB    string        `json:"rb,omitempty"`
	WR    string        `json:"wr,omitempty"`
	TE    string        `json:"te,omitempty"`
	Flex  string        `json:"flex,omitempty"`
	Bets  []betResponse `json:"bets"`
}

type betResponse struct {
	GameID       string  `json:"game_id"`
	Type         string  `json:"type"`
	Line         float64 `json:"line"`
	Team         string  `json:"team,omitempty"`
	AdjustedLine float64 `json:"adjusted_line"`
	DraftRound   int     `json:"draft_round"`
}

// Scoreboard handles GET /scoreboard: the tracked games plus all rosters.
func (h *GamesHandler) Scoreboard(c *gin.Context) {
	games := h.pool.Games()
	gamesOut := make(map[string]gameStateResponse, len(games))
	for id, game := range games {
		gamesOut[id] = gameStateResponse{
			AwayTeam:          game.AwayTeam,
			HomeTeam:          game.HomeTeam,
			AwayScore:         game.AwayScore,
			HomeScore:         game.HomeScore,
			Spread:            game.Spread,
			OverUnder:         game.OverUnder,
			Quarter:           game.Quarter,
			TimeRemaining:     game.TimeRemainingSeconds,
			IsFinal:           game.IsFinal(),
			FractionRemaining: game.FractionRemaining(),
		}
	}

	teams := h.pool.Teams()
	teamsOut := make([]teamResponse, 0, len(teams))
	for _, team := range teams {
		out := teamResponse{
			Owner: team.Owner,
			QB:    team.QB,
			RB:    team.RB,
			WR:    team.WR,
			TE:    team.TE,
			Flex:  team.Flex,
			Bets:  make([]betResponse, 0, len(team.Bets)),
		}
		for _, bet := range team.Bets {
			out.Bets = append(out.Bets, betResponse{
				GameID:       bet.GameID,
				Type:         string(bet.Type),
				Line:         bet.Line,
				Team:         bet.Team,
				AdjustedLine: bet.AdjustedLine(),
				DraftRound:   bet.DraftRound,
			})
		}
		teamsOut = append(teamsOut, out)
	}
	sort.Slice(teamsOut, func(i, j int) bool { return teamsOut[i].Owner < teamsOut[j].Owner })

	utils.SendSuccess(c, gin.H{
		"games": gamesOut,
		"teams": teamsOut,
	})
}

type projectionResponse struct {
	Team            string  `json:"team"`
	Position        string  `json:"position"`
	ProjectedPoints float64 `json:"projected_points"`
}

// Projections handles GET /projections: full-game projected points for every
// rostered player that has a projection.
func (h *GamesHandler) Projections(c *gin.Context) {
	snapshot := h.pool.Snapshot()
	out := make(map[string]projectionResponse)
	for name := range h.pool.RosteredPlayers() {
		proj, ok := snapshot.Projections[name]
		if !ok {
			continue
		}
		out[name] = projectionResponse{
			Team:            proj.Team,
			Position:        string(proj.Position),
			ProjectedPoints: scoring.ProjectedPoints(proj),
		}
	}
	utils.SendSuccess(c, gin.H{"projections": out})
}

// Refresh handles POST /refresh: pulls the live scoreboard from ESPN and
// folds it into the pool state immediately.
func (h *GamesHandler) Refresh(c *gin.Context) {
	live, err := h.espn.Scoreboard(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Manual refresh failed")
		utils.SendInternalError(c, "failed to fetch live scoreboard")
		return
	}

	updated := h.pool.ApplyLiveGames(live)
	utils.SendSuccess(c, gin.H{
		"games_updated": updated,
	})
}

type updateGameRequest struct {
	GameID        string   `json:"game_id" binding:"required"`
	AwayScore     *int     `json:"away_score"`
	HomeScore     *int     `json:"home_score"`
	Quarter       *int     `json:"quarter"`
	TimeRemaining *int     `json:"time_remaining"`
	Spread        *float64 `json:"spread"`
	OverUnder     *float64 `json:"over_under"`
}

// UpdateGame handles POST /games/update: a manual override for when the live
// feed is down or for what-if exploration. Only the provided fields change.
func (h *GamesHandler) UpdateGame(c *gin.Context) {
	var req updateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body", err.Error())
		return
	}

	applied := h.pool.UpdateGame(req.GameID, func(game *models.NFLGame) {
		if req.AwayScore != nil {
			game.AwayScore = *req.AwayScore
		}
		if req.HomeScore != nil {
			game.HomeScore = *req.HomeScore
		}
		if req.Quarter != nil {
			game.Quarter = *req.Quarter
		}
		if req.TimeRemaining != nil {
			game.TimeRemainingSeconds = *req.TimeRemaining
		}
		if req.Spread != nil {
			game.Spread = *req.Spread
		}
		if req.OverUnder != nil {
			game.OverUnder = *req.OverUnder
		}
	})
	if !applied {
		utils.SendNotFound(c, "game not found")
		return
	}

	games := h.pool.Games()
	game := games[req.GameID]
	utils.SendSuccess(c, gin.H{
		"game_id":        req.GameID,
		"away_score":     game.AwayScore,
		"home_score":     game.HomeScore,
		"quarter":        game.Quarter,
		"time_remaining": game.TimeRemainingSeconds,
		"is_final":       game.IsFinal(),
	})
}
