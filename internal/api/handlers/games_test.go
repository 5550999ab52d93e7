package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianmccall/wildcard-sim/internal/services"
)

func newGamesHandler(pool *services.PoolService) *GamesHandler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewGamesHandler(pool, nil, log)
}

func gamesRequest(t *testing.T, handler *GamesHandler, method, path string, body []byte) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	router := gin.New()
	router.GET("/scoreboard", handler.Scoreboard)
	router.GET("/projections", handler.Projections)
	router.POST("/games/update", handler.UpdateGame)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	router.ServeHTTP(w, req)

	var envelope struct {
		Success bool                       `json:"success"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		require.True(t, envelope.Success)
	}
	return w, envelope.Data
}

func TestScoreboardEndpoint(t *testing.T) {
	w, data := gamesRequest(t, newGamesHandler(finalPool()), http.MethodGet, "/scoreboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var games map[string]gameStateResponse
	require.NoError(t, json.Unmarshal(data["games"], &games))
	require.Contains(t, games, "SF @ PHI")
	assert.True(t, games["SF @ PHI"].IsFinal)
	assert.Equal(t, 24, games["SF @ PHI"].AwayScore)

	var teams []teamResponse
	require.NoError(t, json.Unmarshal(data["teams"], &teams))
	require.Len(t, teams, 2)
	assert.Equal(t, "Ian", teams[0].Owner)
	require.Len(t, teams[0].Bets, 1)
	assert.InDelta(t, 39.5, teams[0].Bets[0].AdjustedLine, 1e-9)
}

func TestProjectionsEndpoint(t *testing.T) {
	w, data := gamesRequest(t, newGamesHandler(finalPool()), http.MethodGet, "/projections", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var projections map[string]projectionResponse
	require.NoError(t, json.Unmarshal(data["projections"], &projections))
	require.Contains(t, projections, "George Kittle")

	kittle := projections["George Kittle"]
	assert.Equal(t, "TE", kittle.Position)
	// 0.5*4 + 55/10 + 0.4*6 = 9.9
	assert.InDelta(t, 9.9, kittle.ProjectedPoints, 1e-9)
}

func TestUpdateGameEndpoint(t *testing.T) {
	handler := newGamesHandler(finalPool())

	body, _ := json.Marshal(map[string]interface{}{
		"game_id":    "SF @ PHI",
		"away_score": 31,
	})
	w, data := gamesRequest(t, handler, http.MethodPost, "/games/update", body)
	require.Equal(t, http.StatusOK, w.Code)

	var awayScore int
	require.NoError(t, json.Unmarshal(data["away_score"], &awayScore))
	assert.Equal(t, 31, awayScore)

	body, _ = json.Marshal(map[string]interface{}{"game_id": "GB @ CHI"})
	w, _ = gamesRequest(t, handler, http.MethodPost, "/games/update", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
