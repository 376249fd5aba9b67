package ports

import (
	"context"

	"github.com/blendpos/pos-backend/internal/core/domain"
)

// UserPatch carries the fields of a partial update. Nil pointers leave the
// stored value untouched. Password arrives already hashed.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	RoleID       *int64
	Active       *bool
}

// UserRepository persists user records. Implementations must enforce email
// uniqueness with a storage-level constraint (returning domain.ErrEmailTaken
// on violation): the service's pre-insert lookup only produces the friendly
// error, the constraint closes the check-then-insert race.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmail matches case-insensitively. activeOnly restricts the
	// lookup to active rows (the login path).
	FindByEmail(ctx context.Context, email string, activeOnly bool) (*domain.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
	// List returns rows ordered by id ascending.
	List(ctx context.Context, includeInactive bool) ([]domain.User, error)
}

// RoleRepository reads the role catalog.
type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
}
