package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ianmccall/wildcard-sim/internal/services"
)

// HealthHandler reports service liveness and dependency status.
type HealthHandler struct {
	cache *services.CacheService
	hub   *services.WebSocketHub
}

func NewHealthHandler(cache *services.CacheService, hub *services.WebSocketHub) *HealthHandler {
	return &HealthHandler{
		cache: cache,
		hub:   hub,
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"time":          time.Now().UTC(),
		"cache_enabled": h.cache.Enabled(),
		"ws_clients":    h.hub.ClientCount(),
	})
}
