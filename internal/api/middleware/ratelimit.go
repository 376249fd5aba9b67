package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/blendpos/pos-backend/internal/api/metrics"
)

// LoginRateLimiter rejects login attempts from one client IP beyond max per
// fixed window, backed by Redis so the limit holds across replicas.
// Key format: ratelimit:login:<ip>
type LoginRateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
	logger zerolog.Logger
}

func NewLoginRateLimiter(client *redis.Client, max int64, window time.Duration, logger zerolog.Logger) *LoginRateLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginRateLimiter{client: client, max: max, window: window, logger: logger}
}

// Middleware counts the attempt and rejects with 429 once the window budget
// is spent. Redis being unreachable fails open: login availability beats
// limiter strictness.
func (l *LoginRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:login:%s", c.RealIP())

			count, err := l.client.Incr(ctx, key).Result()
			if err != nil {
				l.logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if count == 1 {
				_ = l.client.Expire(ctx, key, l.window).Err()
			}
			if count > l.max {
				metrics.LoginRateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
			}
			return next(c)
		}
	}
}
