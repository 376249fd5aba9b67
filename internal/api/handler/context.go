package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blendpos/pos-backend/internal/api/middleware"
	"github.com/blendpos/pos-backend/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. Presence
// proves the middleware ran; a protected handler reached without it is a
// wiring bug and answers 401 rather than proceeding anonymously.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(domain.Claims)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
