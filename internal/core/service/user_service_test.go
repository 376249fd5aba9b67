package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/blendpos/pos-backend/internal/core/domain"
	"github.com/blendpos/pos-backend/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string, activeOnly bool) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && (!activeOnly || u.Active) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.RoleID != nil {
		u.RoleID = *patch.RoleID
	}
	if patch.Active != nil {
		u.Active = *patch.Active
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if includeInactive || u.Active {
			out = append(out, *cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubRoleRepo struct{}

func (stubRoleRepo) FindByID(_ context.Context, id int64) (*domain.Role, error) {
	switch id {
	case 1:
		return &domain.Role{ID: 1, Name: domain.RoleAdmin}, nil
	case 2:
		return &domain.Role{ID: 2, Name: domain.RoleUsuario}, nil
	case 3:
		return &domain.Role{ID: 3, Name: domain.RoleSupervisor}, nil
	}
	return nil, domain.ErrRoleUnknown
}

func (stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	return []domain.Role{
		{ID: 1, Name: domain.RoleAdmin},
		{ID: 2, Name: domain.RoleUsuario},
		{ID: 3, Name: domain.RoleSupervisor},
	}, nil
}

type recordedAudit struct {
	events []ports.AuditEventInput
}

func (r *recordedAudit) Record(event ports.AuditEventInput) {
	r.events = append(r.events, event)
}

func newTestUserService(opts UserServiceOptions) (*UserService, *stubUserRepo, *recordedAudit) {
	repo := newStubUserRepo()
	audit := &recordedAudit{}
	svc := NewUserService(
		repo,
		stubRoleRepo{},
		NewBcryptHasher(4),
		NewJWTTokenService("secret"),
		audit,
		opts,
		zerolog.Nop(),
	)
	return svc, repo, audit
}

func TestUserService_Register_Success(t *testing.T) {
	svc, _, audit := newTestUserService(UserServiceOptions{})

	user, token, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Ana",
		Email:    "Ana@X.com",
		Password: "s3cret",
		RoleID:   2,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 || !user.Active {
		t.Fatalf("expected an active user with an id, got %+v", user)
	}
	if user.Email != "ana@x.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatalf("password stored badly: %q", user.PasswordHash)
	}
	if user.Role != domain.RoleUsuario {
		t.Fatalf("role name not resolved: %q", user.Role)
	}
	if token == "" {
		t.Fatalf("expected a token for immediate use")
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditRegister || !audit.events[0].Success {
		t.Fatalf("unexpected audit trail: %+v", audit.events)
	}
}

func TestUserService_Register_DefaultRole(t *testing.T) {
	svc, _, _ := newTestUserService(UserServiceOptions{})

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Beto",
		Email:    "beto@x.com",
		Password: "pw1234",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.RoleID != domain.DefaultRoleID || user.Role != domain.RoleUsuario {
		t.Fatalf("expected default role, got %d (%s)", user.RoleID, user.Role)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService(UserServiceOptions{})

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "a", Email: "dup@x.com", Password: "pw1234", RoleID: 2}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// Same address, different case: uniqueness is case-insensitive.
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "b", Email: "DUP@X.com", Password: "pw1234", RoleID: 2}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Register_UnknownRole(t *testing.T) {
	svc, _, _ := newTestUserService(UserServiceOptions{})

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "a", Email: "x@x.com", Password: "pw1234", RoleID: 42}); err != domain.ErrRoleUnknown {
		t.Fatalf("expected ErrRoleUnknown, got %v", err)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	svc, _, _ := newTestUserService(UserServiceOptions{})

	registered, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "s3cret", RoleID: 1})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "Ana@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := NewJWTTokenService("secret").Validate(token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != domain.RoleAdmin || claims.Email != "ana@x.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestUserService_Login_FailuresIdentical(t *testing.T) {
	svc, _, _ := newTestUserService(UserServiceOptions{})

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "s3cret", RoleID: 2}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPassword := svc.Login(context.Background(), "ana@x.com", "wrong")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "anything")

	if wrongPassword != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if unknownEmail != wrongPassword {
		t.Fatalf("failure kinds differ: %v vs %v", wrongPassword, unknownEmail)
	}
}

func TestUserService_Login_InactiveUserRejected(t *testing.T) {
	svc, _, _ := newTestUserService(UserServiceOptions{})

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "s3cret", RoleID: 2})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ana@x.com", "s3cret"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestUserService_GetByID_ReturnsInactive(t *testing.T) {
	svc, _, _ := newTestUserService(UserServiceOptions{})

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "s3cret", RoleID: 2})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	got, err := svc.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Active {
		t.Fatalf("expected inactive record")
	}

	if _, err := svc.GetByID(context.Background(), 999); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	svc, repo, _ := newTestUserService(UserServiceOptions{})

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "oldpass", RoleID: 2})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	newName := "Ana María"
	newPassword := "newpass"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{
		Name:     &newName,
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Ana María" {
		t.Fatalf("name not patched: %q", updated.Name)
	}

	stored := repo.users[user.ID]
	hasher := NewBcryptHasher(4)
	if stored.PasswordHash == "newpass" {
		t.Fatalf("plaintext reached storage")
	}
	if !hasher.Verify("newpass", stored.PasswordHash) {
		t.Fatalf("new password does not verify")
	}
	if hasher.Verify("oldpass", stored.PasswordHash) {
		t.Fatalf("old password still verifies")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _, _ := newTestUserService(UserServiceOptions{})

	name := "ghost"
	if _, err := svc.Update(context.Background(), 404, ports.UpdateUserInput{Name: &name}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Deactivate_Idempotent(t *testing.T) {
	svc, repo, _ := newTestUserService(UserServiceOptions{})

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "s3cret", RoleID: 2})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("first deactivate failed: %v", err)
	}
	if err := svc.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("second deactivate failed: %v", err)
	}
	if repo.users[user.ID].Active {
		t.Fatalf("user still active after deactivation")
	}
	if err := svc.Deactivate(context.Background(), 999); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_OrderingAndInactiveToggle(t *testing.T) {
	for _, includeInactive := range []bool{true, false} {
		svc, _, _ := newTestUserService(UserServiceOptions{ListIncludeInactive: includeInactive})

		first, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "a", Email: "a@x.com", Password: "pw1234", RoleID: 1})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "b", Email: "b@x.com", Password: "pw1234", RoleID: 2}); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if err := svc.Deactivate(context.Background(), first.ID); err != nil {
			t.Fatalf("deactivate failed: %v", err)
		}

		users, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}

		if includeInactive {
			if len(users) != 2 {
				t.Fatalf("expected 2 users, got %d", len(users))
			}
			if users[0].ID > users[1].ID {
				t.Fatalf("list not ordered by id: %+v", users)
			}
			if users[0].Role != domain.RoleAdmin {
				t.Fatalf("role names not resolved in listing: %+v", users[0])
			}
		} else {
			if len(users) != 1 || users[0].Email != "b@x.com" {
				t.Fatalf("expected only the active user, got %+v", users)
			}
		}
	}
}
