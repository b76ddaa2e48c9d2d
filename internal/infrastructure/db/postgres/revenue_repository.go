package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

// RevenueRepository reads the externally populated revenue table.
type RevenueRepository struct {
	db *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) *RevenueRepository {
	return &RevenueRepository{db: db}
}

func (r *RevenueRepository) List(ctx context.Context) ([]domain.Revenue, error) {
	var out []domain.Revenue
	err := withConn(ctx, r.db, "list revenue", func(conn *gorm.DB) error {
		return conn.Raw(`SELECT month, revenue FROM revenue`).Scan(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
