package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ianmccall/wildcard-sim/pkg/utils"
)

// RateLimit bounds requests per client IP. Simulation runs are CPU-heavy, so
// the simulate route is limited more tightly than the rest of the API.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[ip] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			utils.SendError(c, http.StatusTooManyRequests,
				utils.NewAppError(utils.ErrCodeValidation, "rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}
