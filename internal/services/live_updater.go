package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ianmccall/wildcard-sim/internal/models"
	"github.com/ianmccall/wildcard-sim/internal/providers"
	"github.com/ianmccall/wildcard-sim/internal/simulator"
)

// LiveUpdaterService polls ESPN on a schedule, folds live scores and box
// scores into the pool state, reruns the simulation, and pushes the fresh
// standings to websocket clients.
type LiveUpdaterService struct {
	pool         *PoolService
	espn         *providers.ESPNClient
	cache        *CacheService
	hub          *WebSocketHub
	logger       *logrus.Logger
	cron         *cron.Cron
	interval     time.Duration
	nSims        int
	teamScoreStd float64
	mu           sync.Mutex
	isRunning    bool
}

func NewLiveUpdaterService(
	pool *PoolService,
	espn *providers.ESPNClient,
	cache *CacheService,
	hub *WebSocketHub,
	logger *logrus.Logger,
	interval time.Duration,
	nSims int,
	teamScoreStd float64,
) *LiveUpdaterService {
	return &LiveUpdaterService{
		pool:         pool,
		espn:         espn,
		cache:        cache,
		hub:          hub,
		logger:       logger,
		cron:         cron.New(),
		interval:     interval,
		nSims:        nSims,
		teamScoreStd: teamScoreStd,
	}
}

// Start schedules the refresh loop. When initialFetch is set the first
// refresh runs immediately in the background.
func (s *LiveUpdaterService) Start(initialFetch bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("live updater is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	if _, err := s.cron.AddFunc(schedule, s.refresh); err != nil {
		return fmt.Errorf("failed to schedule live updater: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	if initialFetch {
		go s.refresh()
	}

	s.logger.WithField("interval", s.interval.String()).Info("Live updater started")
	return nil
}

// Stop halts the refresh loop and waits for an in-flight refresh to finish.
func (s *LiveUpdaterService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Live updater stopped")
}

// refresh is one full cycle: scoreboard, box scores, simulation, broadcast.
func (s *LiveUpdaterService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	live, err := s.espn.Scoreboard(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Live refresh: scoreboard fetch failed")
		return
	}

	updated := s.pool.ApplyLiveGames(live)
	s.logger.WithField("games_updated", len(updated)).Debug("Applied live scoreboard")

	if err := s.cache.Set(ctx, ScoreboardCacheKey(), live, 2*s.interval); err != nil {
		s.logger.WithError(err).Warn("Live refresh: scoreboard cache write failed")
	}

	s.refreshPlayerStats(ctx, updated)

	result, err := s.runSimulation()
	if err != nil {
		s.logger.WithError(err).Error("Live refresh: simulation failed")
		return
	}

	if err := s.cache.Set(ctx, SimulationCacheKey(s.nSims), result, 2*s.interval); err != nil {
		s.logger.WithError(err).Warn("Live refresh: simulation cache write failed")
	}

	if err := s.hub.Broadcast("simulation_update", result); err != nil {
		s.logger.WithError(err).Warn("Live refresh: broadcast failed")
	}
}

// refreshPlayerStats pulls box scores for games that are underway and stores
// the rostered players' accumulated lines.
func (s *LiveUpdaterService) refreshPlayerStats(ctx context.Context, gameIDs []string) {
	rostered := s.pool.RosteredPlayers()
	games := s.pool.Games()

	for _, gameID := range gameIDs {
		game, ok := games[gameID]
		if !ok || game.Quarter == 0 {
			continue
		}
		eventID, ok := s.pool.EventID(gameID)
		if !ok {
			continue
		}

		stats, err := s.espn.PlayerStats(ctx, eventID)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", gameID).Warn("Live refresh: boxscore fetch failed")
			continue
		}

		relevant := make(map[string]models.PlayerStats)
		for name, line := range stats {
			if rostered[name] {
				relevant[name] = line
			}
		}
		s.pool.SetCurrentStats(relevant)
	}
}

// runSimulation runs a time-seeded simulation on the current snapshot. Live
// runs want fresh randomness; reproducible runs come through the API with an
// explicit seed.
func (s *LiveUpdaterService) runSimulation() (*simulator.Result, error) {
	engine := simulator.NewEngine(uint64(time.Now().UnixNano()), s.teamScoreStd, s.logger)
	return engine.Run(s.pool.Snapshot(), s.nSims)
}
