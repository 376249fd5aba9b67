package ports

import (
	"time"

	"github.com/blendpos/pos-backend/internal/core/domain"
)

// PasswordHasher performs one-way hashing of credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext re-hashes to digest. It runs in
	// roughly constant time regardless of the outcome.
	Verify(plaintext, digest string) bool
}

// TokenService issues and validates signed bearer tokens. Validate is a pure
// function of (token, current time, secret) — it never touches storage, so
// authorization checks add no I/O.
type TokenService interface {
	Issue(user *domain.User, ttl time.Duration) (string, error)
	Validate(token string) (domain.Claims, error)
}
