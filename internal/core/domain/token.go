package domain

import (
	"errors"
	"time"
)

var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")

// Claims is the identity snapshot embedded in a bearer token at issuance.
// It is immutable after issue: later role changes or deactivation do not
// reach a token until it expires and a new one is minted.
type Claims struct {
	UserID    int64
	Email     string
	Role      string
	ExpiresAt time.Time
}
