package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blendpos/pos-backend/internal/core/domain"
	"github.com/blendpos/pos-backend/internal/core/service"
)

func signTestToken(t *testing.T, secret string, user *domain.User, ttl time.Duration) string {
	t.Helper()
	token, err := service.NewJWTTokenService(secret).Issue(user, ttl)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signTestToken(t, "secret", &domain.User{ID: 7, Email: "ana@x.com", Role: domain.RoleUsuario}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(service.NewJWTTokenService("secret"), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		claims, ok := c.Get(ClaimsKey).(domain.Claims)
		if !ok {
			t.Fatalf("claims not set")
		}
		if claims.UserID != 7 || claims.Email != "ana@x.com" || claims.Role != domain.RoleUsuario {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// Missing header, wrong scheme, garbage, bad signature and expiry must all
// produce the same 401 body so that clients cannot probe validation internals.
func TestAuthMiddleware_FailuresIndistinguishable(t *testing.T) {
	expired := signTestToken(t, "secret", &domain.User{ID: 7, Email: "ana@x.com", Role: domain.RoleUsuario}, -time.Minute)
	forged := signTestToken(t, "other-secret", &domain.User{ID: 7, Email: "ana@x.com", Role: domain.RoleUsuario}, time.Hour)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"not a token", "Bearer not-a-token"},
		{"bad signature", "Bearer " + forged},
		{"expired", "Bearer " + expired},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := Auth(service.NewJWTTokenService("secret"), zerolog.Nop())
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json body: %v", err)
			}
			bodies = append(bodies, rec.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Fatalf("failure responses differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}
