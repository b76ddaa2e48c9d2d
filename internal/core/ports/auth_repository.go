package ports

import (
	"context"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

// CredentialStore looks up users for sign-in. It returns
// domain.ErrUserNotFound when no user has the given email.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
