package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/blendpos/pos-backend/internal/api/metrics"
	"github.com/blendpos/pos-backend/internal/core/domain"
)

// Guard enforces the declared policy for a protected route. It expects Auth
// to have run first; the :id path parameter, when present, is the target of
// the ownership check.
//
// A request with no valid identity gets 401; an identified caller failing
// both the role axis and the ownership axis gets 403.
func Guard(policy domain.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(domain.Claims)
			if !ok {
				metrics.AuthDenialsTotal.WithLabelValues(string(domain.DenyUnauthenticated)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthenticated)
			}

			var targetID int64
			hasTarget := false
			if raw := c.Param("id"); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				// An unparsable id cannot match anyone's own record; the
				// handler will reject it as malformed input if the roles
				// allow the caller through.
				if err == nil {
					targetID = id
					hasTarget = true
				}
			}

			if decision := policy.Evaluate(claims, targetID, hasTarget); !decision.Allowed {
				metrics.AuthDenialsTotal.WithLabelValues(string(decision.Reason)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "insufficient privileges")
			}
			return next(c)
		}
	}
}
