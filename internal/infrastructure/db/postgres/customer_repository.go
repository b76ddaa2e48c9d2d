package postgres

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

type customerSummaryRecord struct {
	ID            string `gorm:"column:id"`
	Name          string `gorm:"column:name"`
	Email         string `gorm:"column:email"`
	ImageURL      string `gorm:"column:image_url"`
	TotalInvoices int64  `gorm:"column:total_invoices"`
	TotalPending  int64  `gorm:"column:total_pending"`
	TotalPaid     int64  `gorm:"column:total_paid"`
}

// CustomerRepository implements ports.CustomerRepository on Postgres.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// ListAll returns every customer's id and name ordered by name.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]domain.CustomerField, error) {
	var fields []domain.CustomerField
	err := withConn(ctx, r.db, "list customers", func(conn *gorm.DB) error {
		return conn.Raw(`SELECT id, name FROM customers ORDER BY name ASC`).Scan(&fields).Error
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// ListFilteredWithTotals matches query against name or email and sums the
// invoice amounts of each customer. Customers without invoices report zeros.
func (r *CustomerRepository) ListFilteredWithTotals(ctx context.Context, query string) ([]domain.CustomerSummary, error) {
	var recs []customerSummaryRecord
	err := withConn(ctx, r.db, "filter customers", func(conn *gorm.DB) error {
		return conn.Raw(`
			SELECT customers.id, customers.name, customers.email, customers.image_url,
			       COUNT(invoices.id) AS total_invoices,
			       COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			       COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
			FROM customers
			LEFT JOIN invoices ON customers.id = invoices.customer_id
			WHERE customers.name ILIKE @pattern OR customers.email ILIKE @pattern
			GROUP BY customers.id, customers.name, customers.email, customers.image_url
			ORDER BY customers.name ASC`,
			sql.Named("pattern", likePattern(query)),
		).Scan(&recs).Error
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.CustomerSummary, len(recs))
	for i, rec := range recs {
		out[i] = domain.CustomerSummary(rec)
	}
	return out, nil
}
