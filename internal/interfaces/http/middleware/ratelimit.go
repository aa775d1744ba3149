package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perkloop/perkloop/internal/infrastructure/ratelimit"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
	}
}

// LimitByIP throttles requests per client IP under the given scope, so
// login attempts and general API traffic have separate counters.
func (m *RateLimitMiddleware) LimitByIP(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, err := m.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open: an unavailable limiter store must not block all traffic.
			m.logger.Warnw("rate limiter unavailable", "error", err, "scope", scope)
			c.Next()
			return
		}

		if !allowed {
			m.logger.Warnw("rate limit exceeded", "scope", scope, "client_ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
