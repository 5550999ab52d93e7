package services

import (
	"fmt"
	"sync"

	"github.com/ianmccall/wildcard-sim/internal/models"
	"github.com/ianmccall/wildcard-sim/internal/providers"
	"github.com/ianmccall/wildcard-sim/internal/simulator"
)

// PoolService holds the pool's mutable state: rosters, betting lines, live
// game state, and accumulated player stats. Reads take a consistent snapshot
// so a simulation never sees a half-applied live update.
type PoolService struct {
	mu           sync.RWMutex
	teams        []models.FantasyTeam
	games        map[string]*models.NFLGame
	projections  map[string]models.PlayerProjection
	currentStats map[string]models.PlayerStats
	eventIDs     map[string]string // game ID -> ESPN event ID
}

func NewPoolService(
	teams []models.FantasyTeam,
	games map[string]*models.NFLGame,
	projections map[string]models.PlayerProjection,
) *PoolService {
	return &PoolService{
		teams:        teams,
		games:        games,
		projections:  projections,
		currentStats: make(map[string]models.PlayerStats),
		eventIDs:     make(map[string]string),
	}
}

// Snapshot returns an immutable copy of the current state, ready to hand to
// the simulation engine.
func (s *PoolService) Snapshot() simulator.SimContext {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make(map[string]*models.NFLGame, len(s.games))
	for id, game := range s.games {
		copied := *game
		games[id] = &copied
	}
	stats := make(map[string]models.PlayerStats, len(s.currentStats))
	for name, line := range s.currentStats {
		stats[name] = line
	}

	return simulator.SimContext{
		Teams:        s.teams,
		Games:        games,
		Projections:  s.projections,
		CurrentStats: stats,
	}
}

// Teams returns the fantasy rosters.
func (s *PoolService) Teams() []models.FantasyTeam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams
}

// Games returns a copy of the current game states.
func (s *PoolService) Games() map[string]models.NFLGame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make(map[string]models.NFLGame, len(s.games))
	for id, game := range s.games {
		games[id] = *game
	}
	return games
}

// ApplyLiveGames merges live scoreboard data into the tracked games. Betting
// lines are preserved; only scores, clock, and quarter change. Games ESPN
// reports that the pool is not tracking are ignored. Returns the IDs of the
// games that were updated.
func (s *PoolService) ApplyLiveGames(live []providers.LiveGame) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []string
	for _, lg := range live {
		game, ok := s.games[lg.GameID()]
		if !ok {
			continue
		}
		game.AwayScore = lg.AwayScore
		game.HomeScore = lg.HomeScore
		game.TimeRemainingSeconds = lg.TimeRemainingSeconds
		game.Quarter = lg.Quarter()
		s.eventIDs[lg.GameID()] = lg.EventID
		updated = append(updated, lg.GameID())
	}
	return updated
}

// UpdateGame applies fn to the named game under the write lock. Reports
// whether the game exists.
func (s *PoolService) UpdateGame(gameID string, fn func(*models.NFLGame)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return false
	}
	fn(game)
	return true
}

// EventID returns the ESPN event ID last seen for a game.
func (s *PoolService) EventID(gameID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.eventIDs[gameID]
	return id, ok
}

// SetCurrentStats replaces the accumulated stat lines for the named players.
func (s *PoolService) SetCurrentStats(stats map[string]models.PlayerStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, line := range stats {
		s.currentStats[name] = line
	}
}

// RosteredPlayers returns the set of player names on any roster.
func (s *PoolService) RosteredPlayers() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make(map[string]bool)
	for _, team := range s.teams {
		for _, name := range team.PlayerNames() {
			players[name] = true
		}
	}
	return players
}

// Validate checks referential integrity between rosters, games, and
// projections. Dangling references degrade a simulation rather than break it,
// so everything comes back as warnings.
func (s *PoolService) Validate() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var warnings []string
	for _, team := range s.teams {
		for _, name := range team.PlayerNames() {
			if _, ok := s.projections[name]; !ok {
				warnings = append(warnings, fmt.Sprintf("no projection for player %q (owner %s)", name, team.Owner))
			}
		}
		for _, bet := range team.Bets {
			if _, ok := s.games[bet.GameID]; !ok {
				warnings = append(warnings, fmt.Sprintf("bet %q (owner %s) references unknown game", bet.String(), team.Owner))
			}
		}
	}
	return warnings
}
