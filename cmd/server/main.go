package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ianmccall/wildcard-sim/internal/api"
	"github.com/ianmccall/wildcard-sim/internal/api/handlers"
	"github.com/ianmccall/wildcard-sim/internal/api/middleware"
	"github.com/ianmccall/wildcard-sim/internal/loader"
	"github.com/ianmccall/wildcard-sim/internal/providers"
	"github.com/ianmccall/wildcard-sim/internal/services"
	"github.com/ianmccall/wildcard-sim/pkg/config"
	"github.com/ianmccall/wildcard-sim/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis; the server runs without it, just uncached
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warnf("Redis unavailable, caching disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	cacheService := services.NewCacheService(redisClient)

	// Load pool inputs
	projections, err := loader.LoadAllProjections(cfg.SkillProjectionsPath, cfg.QBProjectionsPath)
	if err != nil {
		log.Fatalf("Failed to load projections: %v", err)
	}
	log.Infof("Loaded %d player projections", len(projections))

	draftRounds, err := loader.ParseDraftRounds(cfg.DraftPath)
	if err != nil {
		log.Warnf("Draft sheet unavailable, bets default to the last round: %v", err)
	}

	teams, err := loader.ParseScoreboard(cfg.ScoreboardPath, draftRounds)
	if err != nil {
		log.Fatalf("Failed to parse scoreboard: %v", err)
	}
	log.Infof("Loaded %d fantasy teams", len(teams))

	games := loader.DefaultGames()
	pool := services.NewPoolService(teams, games, projections)
	for _, warning := range pool.Validate() {
		log.Warn(warning)
	}

	// Initialize live data pipeline
	espnClient := providers.NewESPNClient(
		cfg.ESPNTimeout,
		cfg.ESPNRateLimit,
		uint32(cfg.CircuitBreakerThreshold),
		log,
	)

	webSocketHub := services.NewWebSocketHub()
	go webSocketHub.Run()

	liveUpdater := services.NewLiveUpdaterService(
		pool, espnClient, cacheService, webSocketHub, log,
		cfg.LiveRefreshInterval, cfg.DefaultSimulations, cfg.TeamScoreStd,
	)
	if err := liveUpdater.Start(!cfg.SkipInitialFetch); err != nil {
		log.Errorf("Failed to start live updater: %v", err)
	}
	defer liveUpdater.Stop()

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, pool, cacheService, espnClient, webSocketHub, cfg, log)

	wsHandler := handlers.NewWebSocketHandler(webSocketHub)
	router.GET("/ws", wsHandler.HandleWebSocket)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}
	log.Info("Server stopped")
}
