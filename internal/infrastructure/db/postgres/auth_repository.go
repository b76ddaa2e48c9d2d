package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

type userRecord struct {
	ID       string `gorm:"column:id"`
	Name     string `gorm:"column:name"`
	Email    string `gorm:"column:email"`
	Password string `gorm:"column:password"`
}

// UserRepository implements ports.CredentialStore on Postgres.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by exact email. It returns
// domain.ErrUserNotFound when no row matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var recs []userRecord
	err := withConn(ctx, r.db, "find user", func(conn *gorm.DB) error {
		return conn.Raw(
			`SELECT id, name, email, password FROM users WHERE email = ? LIMIT 1`, email,
		).Scan(&recs).Error
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrUserNotFound
	}
	rec := recs[0]
	return &domain.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.Password,
	}, nil
}
