package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter builds an in-memory per-IP limiter from a rate format
// string such as "300-M" (300 requests per minute). A malformed rate
// yields a nil limiter, which RateLimit treats as disabled.
func NewRateLimiter(rate string) *limiter.Limiter {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		slog.Warn("Invalid rate limit format, rate limiting disabled", slog.String("rate", rate), slog.String("error", err.Error()))
		return nil
	}
	return limiter.New(memory.NewStore(), parsed)
}

// RateLimit creates a Gin middleware that rate limits requests per client
// IP using the provided limiter instance.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiterInstance == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		context, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		if context.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", context.Limit), slog.Int64("remaining_requests", context.Remaining))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
