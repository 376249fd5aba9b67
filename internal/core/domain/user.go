package domain

import (
	"errors"
	"time"
)

// Role names recognised by the access policies. The catalog itself lives in
// storage so roles can be added without a deploy; these constants exist only
// because route policies and the seed reference them.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleUsuario    = "usuario"
)

// DefaultRoleID is assigned when a registration omits the role.
const DefaultRoleID = 2

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRoleUnknown = errors.New("unknown role")

// User is an identity record in the directory. PasswordHash never leaves the
// process: the json tag keeps it out of every response body.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       int64     `json:"role_id"`
	Role         string    `json:"role,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role is read-mostly reference data from the role catalog.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
