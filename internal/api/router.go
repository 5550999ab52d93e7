// Package api wires the HTTP routes to their handlers.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ianmccall/wildcard-sim/internal/api/handlers"
	"github.com/ianmccall/wildcard-sim/internal/api/middleware"
	"github.com/ianmccall/wildcard-sim/internal/providers"
	"github.com/ianmccall/wildcard-sim/internal/services"
	"github.com/ianmccall/wildcard-sim/pkg/config"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(
	group *gin.RouterGroup,
	pool *services.PoolService,
	cache *services.CacheService,
	espn *providers.ESPNClient,
	hub *services.WebSocketHub,
	cfg *config.Config,
	logger *logrus.Logger,
) {
	simulationHandler := handlers.NewSimulationHandler(
		pool, cache, logger,
		cfg.DefaultSimulations, cfg.MinSimulations, cfg.MaxSimulations,
		cfg.TeamScoreStd,
	)
	gamesHandler := handlers.NewGamesHandler(pool, espn, logger)
	healthHandler := handlers.NewHealthHandler(cache, hub)

	group.GET("/simulate", middleware.RateLimit(2, 5), simulationHandler.Simulate)
	group.GET("/scoreboard", gamesHandler.Scoreboard)
	group.GET("/projections", gamesHandler.Projections)
	group.POST("/refresh", gamesHandler.Refresh)
	group.POST("/games/update", gamesHandler.UpdateGame)
	group.GET("/health", healthHandler.Health)
}
