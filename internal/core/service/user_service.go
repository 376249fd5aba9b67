package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/blendpos/pos-backend/internal/core/domain"
	"github.com/blendpos/pos-backend/internal/core/ports"
)

// dummyDigest is compared against when a login email does not resolve to a
// user, so the unknown-email path costs one bcrypt verification just like the
// wrong-password path.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService is the user directory: it owns user records, enforces email
// uniqueness and soft-delete semantics, and mints tokens on successful
// authentication.
type UserService struct {
	users           ports.UserRepository
	roles           ports.RoleRepository
	hasher          ports.PasswordHasher
	tokens          ports.TokenService
	audit           ports.AuditRecorder
	tokenTTL        time.Duration
	includeInactive bool
	logger          zerolog.Logger
}

type UserServiceOptions struct {
	// TokenTTL bounds issued tokens; defaults to 24h.
	TokenTTL time.Duration
	// ListIncludeInactive controls whether List returns deactivated rows.
	ListIncludeInactive bool
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	audit ports.AuditRecorder,
	opts UserServiceOptions,
	logger zerolog.Logger,
) *UserService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &UserService{
		users:           users,
		roles:           roles,
		hasher:          hasher,
		tokens:          tokens,
		audit:           audit,
		tokenTTL:        opts.TokenTTL,
		includeInactive: opts.ListIncludeInactive,
		logger:          logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	email := normalizeEmail(input.Email)

	roleID := input.RoleID
	if roleID == 0 {
		roleID = domain.DefaultRoleID
	}
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, "", err
	}

	// Friendly pre-check only; the unique index on email is what actually
	// closes the concurrent-register race.
	if _, err := s.users.FindByEmail(ctx, email, false); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if err != domain.ErrUserNotFound {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	created, err := s.users.Insert(ctx, &domain.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       roleID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, "", err
	}
	created.Role = role.Name

	token, err := s.tokens.Issue(created, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.record(ports.AuditEventInput{Action: domain.AuditRegister, Email: created.Email, UserID: created.ID, Success: true})
	s.logger.Info().Int64("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, token, nil
}

// Login authenticates against active users only. Unknown email, inactive
// account and wrong password all return domain.ErrInvalidCredentials — the
// directory never reveals whether the email exists.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email, true)
	if err == domain.ErrUserNotFound {
		s.hasher.Verify(password, dummyDigest)
		s.record(ports.AuditEventInput{Action: domain.AuditLogin, Email: email, Detail: "unknown or inactive account"})
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.record(ports.AuditEventInput{Action: domain.AuditLogin, Email: email, UserID: user.ID, Detail: "password mismatch"})
		return nil, "", domain.ErrInvalidCredentials
	}

	// Role claim reflects the catalog at login time, not at registration.
	if err := s.resolveRole(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.record(ports.AuditEventInput{Action: domain.AuditLogin, Email: email, UserID: user.ID, Success: true})
	return user, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRole(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	patch := ports.UserPatch{
		Name:   input.Name,
		RoleID: input.RoleID,
		Active: input.Active,
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		patch.Email = &email
	}
	if input.RoleID != nil {
		if _, err := s.roles.FindByID(ctx, *input.RoleID); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRole(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Deactivate soft-deletes: the row stays, active flips to false. Calling it
// on an already-inactive user succeeds and leaves the same terminal state.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	inactive := false
	user, err := s.users.Update(ctx, id, ports.UserPatch{Active: &inactive})
	if err != nil {
		return err
	}
	s.record(ports.AuditEventInput{Action: domain.AuditDeactivate, Email: user.Email, UserID: user.ID, Success: true})
	s.logger.Info().Int64("user_id", id).Msg("user deactivated")
	return nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx, s.includeInactive)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	for i := range users {
		users[i].Role = names[users[i].RoleID]
	}
	return users, nil
}

func (s *UserService) resolveRole(ctx context.Context, user *domain.User) error {
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err == domain.ErrRoleUnknown {
		// Orphaned role reference; surface the user anyway.
		user.Role = ""
		return nil
	}
	if err != nil {
		return err
	}
	user.Role = role.Name
	return nil
}

func (s *UserService) record(event ports.AuditEventInput) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
