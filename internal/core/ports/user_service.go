package ports

import (
	"context"

	"github.com/blendpos/pos-backend/internal/core/domain"
)

// RegisterInput carries a registration request. RoleID 0 means "use the
// default role".
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RoleID   int64
}

// UpdateUserInput is a field patch; nil members are left unchanged. Password
// is plaintext here and is hashed inside the service before it reaches
// storage.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	RoleID   *int64
	Active   *bool
}

// UserService is the user directory: registration, credential login, and
// record CRUD with soft delete.
type UserService interface {
	// Register creates an active user and returns it with a token for
	// immediate authenticated use.
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	// Login authenticates against active users only. A missing email and a
	// wrong password fail identically with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// GetByID returns the record whether or not it is still active.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	// Deactivate soft-deletes: it flips active to false and is idempotent.
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.User, error)
}

// RoleService reads the role catalog.
type RoleService interface {
	List(ctx context.Context) ([]domain.Role, error)
}
