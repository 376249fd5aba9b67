package handler

import "github.com/blendpos/pos-backend/internal/core/domain"

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	RoleID   int64  `json:"role_id" validate:"omitempty,gt=0"`
}

// updateUserRequest is a field patch: absent members leave the stored value
// untouched, which is why everything is a pointer.
type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	RoleID   *int64  `json:"role_id" validate:"omitempty,gt=0"`
	Active   *bool   `json:"active"`
}

// --- Response types ---

// envelope is the uniform success wrapper; errors use the matching
// {"success":false,"message":...} shape rendered by the central error handler.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// tokenResponse is the login payload.
type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// registeredResponse is the register payload: the created record plus a
// freshly issued token for immediate authenticated use.
type registeredResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
