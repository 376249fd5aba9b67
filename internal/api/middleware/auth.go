package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blendpos/pos-backend/internal/api/metrics"
	"github.com/blendpos/pos-backend/internal/core/domain"
	"github.com/blendpos/pos-backend/internal/core/ports"
)

// ClaimsKey is the echo context key under which Auth stores the validated
// claims for downstream middleware and handlers.
const ClaimsKey = "claims"

// Every authentication failure surfaces this one message: malformed, badly
// signed and expired tokens must be indistinguishable to the client.
const msgUnauthenticated = "missing or invalid token"

// Auth extracts the bearer token, validates it through the token service and
// injects the claims into the request context. Failures are logged with their
// real cause but answered uniformly with 401.
func Auth(tokens ports.TokenService, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthDenialsTotal.WithLabelValues(string(domain.DenyUnauthenticated)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthenticated)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthDenialsTotal.WithLabelValues(string(domain.DenyUnauthenticated)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthenticated)
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				logger.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				metrics.AuthDenialsTotal.WithLabelValues(string(domain.DenyUnauthenticated)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthenticated)
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
