package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-print/inkwell/internal/infrastructure/ratelimit"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

// RateLimitMiddleware throttles per client IP. A nil limiter lets every
// request through.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, logger: logger}
}

// Throttle counts requests under scope. Redis errors fail open.
func (m *RateLimitMiddleware) Throttle(scope string, limits ratelimit.Limits) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil || limits.IsZero() {
			c.Next()
			return
		}

		allowed, err := m.limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP(), limits)
		if err != nil {
			m.logger.Warnw("rate limiter unavailable, allowing request", "scope", scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			m.logger.Infow("request throttled", "scope", scope, "ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
