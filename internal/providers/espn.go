// Package providers contains clients for upstream data sources.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ianmccall/wildcard-sim/internal/models"
)

const (
	espnScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
	espnSummaryURL    = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/summary"
)

// ESPN disagrees with the scoreboard sheet on a few abbreviations.
var espnTeamMap = map[string]string{
	"JAC": "JAX",
	"WSH": "WAS",
	"LA":  "LAR",
}

// NormalizeESPNTeam maps an ESPN team abbreviation onto the pool's form.
func NormalizeESPNTeam(team string) string {
	if canonical, ok := espnTeamMap[team]; ok {
		return canonical
	}
	return team
}

// LiveGame is a game's current state as reported by ESPN.
type LiveGame struct {
	EventID              string `json:"event_id"`
	AwayTeam             string `json:"away_team"`
	HomeTeam             string `json:"home_team"`
	AwayScore            int    `json:"away_score"`
	HomeScore            int    `json:"home_score"`
	State                string `json:"state"` // pre, in, post
	Period               int    `json:"period"`
	Clock                string `json:"clock"`
	TimeRemainingSeconds int    `json:"time_remaining_seconds"`
}

// GameID returns the game's "AWAY @ HOME" identifier in pool form.
func (g LiveGame) GameID() string {
	return fmt.Sprintf("%s @ %s", NormalizeESPNTeam(g.AwayTeam), NormalizeESPNTeam(g.HomeTeam))
}

// Quarter converts ESPN period/state into the pool's quarter convention.
func (g LiveGame) Quarter() int {
	switch g.State {
	case "post":
		return models.QuarterFinal
	case "in":
		return g.Period
	default:
		return models.QuarterNotStarted
	}
}

// ESPNClient fetches live scoreboard and box-score data from ESPN's public
// API. Requests go through a rate limiter and a circuit breaker so a flaky
// upstream cannot stall the refresh loop.
type ESPNClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Entry
}

// NewESPNClient creates a new ESPN API client. timeout bounds each request,
// rps bounds request rate, and the breaker opens after failureThreshold
// consecutive failures.
func NewESPNClient(timeout time.Duration, rps int, failureThreshold uint32, logger *logrus.Logger) *ESPNClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "espn-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &ESPNClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		breaker:    breaker,
		logger:     logger.WithField("component", "espn"),
	}
}

type espnScoreboardResponse struct {
	Events []struct {
		ID           string `json:"id"`
		Competitions []struct {
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
				Team     struct {
					Abbreviation string `json:"abbreviation"`
				} `json:"team"`
			} `json:"competitors"`
			Status struct {
				DisplayClock string `json:"displayClock"`
				Period       int    `json:"period"`
				Type         struct {
					State string `json:"state"`
				} `json:"type"`
			} `json:"status"`
		} `json:"competitions"`
	} `json:"events"`
}

// Scoreboard fetches the current NFL scoreboard.
func (c *ESPNClient) Scoreboard(ctx context.Context) ([]LiveGame, error) {
	var resp espnScoreboardResponse
	if err := c.getJSON(ctx, espnScoreboardURL, &resp); err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	var games []LiveGame
	for _, event := range resp.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]

		game := LiveGame{
			EventID: event.ID,
			State:   comp.Status.Type.State,
			Period:  comp.Status.Period,
			Clock:   comp.Status.DisplayClock,
		}
		for _, competitor := range comp.Competitors {
			score, _ := strconv.Atoi(competitor.Score)
			switch competitor.HomeAway {
			case "home":
				game.HomeTeam = competitor.Team.Abbreviation
				game.HomeScore = score
			case "away":
				game.AwayTeam = competitor.Team.Abbreviation
				game.AwayScore = score
			}
		}
		if game.AwayTeam == "" || game.HomeTeam == "" {
			c.logger.WithField("event_id", event.ID).Warn("Skipping event with missing competitors")
			continue
		}
		game.TimeRemainingSeconds = clockSeconds(game.Period, game.Clock, game.State)
		games = append(games, game)
	}

	c.logger.WithField("games", len(games)).Debug("Fetched scoreboard")
	return games, nil
}

type espnSummaryResponse struct {
	Boxscore struct {
		Players []struct {
			Statistics []struct {
				Name     string   `json:"name"`
				Labels   []string `json:"labels"`
				Athletes []struct {
					Athlete struct {
						DisplayName string `json:"displayName"`
					} `json:"athlete"`
					Stats []string `json:"stats"`
				} `json:"athletes"`
			} `json:"statistics"`
		} `json:"players"`
	} `json:"boxscore"`
}

// PlayerStats fetches the box score for one event and returns accumulated
// stat lines keyed by player display name.
func (c *ESPNClient) PlayerStats(ctx context.Context, eventID string) (map[string]models.PlayerStats, error) {
	u := espnSummaryURL + "?event=" + url.QueryEscape(eventID)
	var resp espnSummaryResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetching boxscore for event %s: %w", eventID, err)
	}

	stats := make(map[string]models.PlayerStats)
	for _, team := range resp.Boxscore.Players {
		for _, group := range team.Statistics {
			labels := make(map[string]int, len(group.Labels))
			for i, label := range group.Labels {
				labels[label] = i
			}
			for _, athlete := range group.Athletes {
				name := athlete.Athlete.DisplayName
				if name == "" {
					continue
				}
				line := stats[name]
				applyStatGroup(&line, group.Name, labels, athlete.Stats)
				stats[name] = line
			}
		}
	}
	return stats, nil
}

// applyStatGroup copies one boxscore category into a stat line. Labels vary
// slightly between games, so every field is looked up by name.
func applyStatGroup(line *models.PlayerStats, group string, labels map[string]int, values []string) {
	get := func(label string) (string, bool) {
		i, ok := labels[label]
		if !ok || i >= len(values) {
			return "", false
		}
		return values[i], true
	}

	switch group {
	case "passing":
		if v, ok := get("YDS"); ok {
			line.PassYds = statFloat(v)
		}
		if v, ok := get("TD"); ok {
			line.PassTDs = statInt(v)
		}
		if v, ok := get("INT"); ok {
			line.Ints = statInt(v)
		}
	case "rushing":
		if v, ok := get("YDS"); ok {
			line.RushYds = statFloat(v)
		}
		if v, ok := get("TD"); ok {
			line.RushTDs = statInt(v)
		}
	case "receiving":
		if v, ok := get("REC"); ok {
			line.Rec = statInt(v)
		}
		if v, ok := get("YDS"); ok {
			line.RecYds = statFloat(v)
		}
		if v, ok := get("TD"); ok {
			line.RecTDs = statInt(v)
		}
	case "fumbles":
		if v, ok := get("LOST"); ok {
			line.FumblesLost = statInt(v)
		}
	}
}

func (c *ESPNClient) getJSON(ctx context.Context, url string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		var decoded json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
		return decoded, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body.(json.RawMessage), out)
}

// clockSeconds converts ESPN's period + display clock into total seconds
// remaining in regulation.
func clockSeconds(period int, clock, state string) int {
	switch state {
	case "post":
		return 0
	case "pre":
		return models.GameSeconds
	}

	clockRemaining := 0
	parts := strings.Split(clock, ":")
	if len(parts) == 2 {
		minutes, errM := strconv.Atoi(parts[0])
		seconds, errS := strconv.Atoi(parts[1])
		if errM == nil && errS == nil {
			clockRemaining = minutes*60 + seconds
		}
	}

	quartersLeft := 4 - period
	if quartersLeft < 0 {
		quartersLeft = 0
	}
	return quartersLeft*900 + clockRemaining
}

func statFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func statInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}
