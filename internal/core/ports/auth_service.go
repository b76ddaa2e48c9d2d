package ports

import (
	"context"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

// Credentials are the raw sign-in form fields.
type Credentials struct {
	Email    string `form:"email"    json:"email"    validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
}

// Session is the outcome of a successful sign-in.
type Session struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	// Authorize returns the matching user, or nil without error when the
	// credentials are declined.
	Authorize(ctx context.Context, creds Credentials) (*domain.User, error)
	// SignIn wraps Authorize and classifies failures as *domain.AuthError.
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
}
