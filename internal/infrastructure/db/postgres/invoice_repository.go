package postgres

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

// invoiceFilter is shared by ListFiltered and CountFilteredPages so both
// always agree on which rows match.
const invoiceFilter = `
	customers.name ILIKE @pattern OR
	customers.email ILIKE @pattern OR
	invoices.amount::text ILIKE @pattern OR
	invoices.date::text ILIKE @pattern OR
	invoices.status ILIKE @pattern`

type invoiceRecord struct {
	ID         string    `gorm:"column:id"`
	CustomerID string    `gorm:"column:customer_id"`
	Amount     int64     `gorm:"column:amount"`
	Status     string    `gorm:"column:status"`
	Date       time.Time `gorm:"column:date"`
	Name       string    `gorm:"column:name"`
	Email      string    `gorm:"column:email"`
	ImageURL   string    `gorm:"column:image_url"`
}

func (r invoiceRecord) toRow() domain.InvoiceRow {
	return domain.InvoiceRow{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Amount:     r.Amount,
		Status:     domain.InvoiceStatus(r.Status),
		Date:       r.Date,
		Name:       r.Name,
		Email:      r.Email,
		ImageURL:   r.ImageURL,
	}
}

type cardTotalsRecord struct {
	InvoiceCount  int64 `gorm:"column:invoice_count"`
	CustomerCount int64 `gorm:"column:customer_count"`
	TotalPaid     int64 `gorm:"column:total_paid"`
	TotalPending  int64 `gorm:"column:total_pending"`
}

// InvoiceRepository implements ports.InvoiceRepository on Postgres.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a new invoice row in a single statement.
func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return withConn(ctx, r.db, "create invoice", func(conn *gorm.DB) error {
		return conn.Exec(
			`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
			inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date,
		).Error
	})
}

// Update overwrites customer, amount and status. Zero affected rows is not
// an error.
func (r *InvoiceRepository) Update(ctx context.Context, id string, c domain.InvoiceChanges) error {
	if !validID(id) {
		return nil
	}
	return withConn(ctx, r.db, "update invoice", func(conn *gorm.DB) error {
		return conn.Exec(
			`UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?`,
			c.CustomerID, c.Amount, string(c.Status), id,
		).Error
	})
}

// Delete hard-deletes the invoice. Zero affected rows is not an error.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	return withConn(ctx, r.db, "delete invoice", func(conn *gorm.DB) error {
		return conn.Exec(`DELETE FROM invoices WHERE id = ?`, id).Error
	})
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if !validID(id) {
		return nil, domain.ErrInvoiceNotFound
	}

	var recs []invoiceRecord
	err := withConn(ctx, r.db, "find invoice", func(conn *gorm.DB) error {
		return conn.Raw(
			`SELECT id, customer_id, amount, status, date FROM invoices WHERE id = ?`, id,
		).Scan(&recs).Error
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrInvoiceNotFound
	}

	rec := recs[0]
	return &domain.Invoice{
		ID:         rec.ID,
		CustomerID: rec.CustomerID,
		Amount:     rec.Amount,
		Status:     domain.InvoiceStatus(rec.Status),
		Date:       rec.Date,
	}, nil
}

func (r *InvoiceRepository) ListFiltered(ctx context.Context, query string, page int) ([]domain.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * domain.InvoicesPerPage

	var recs []invoiceRecord
	err := withConn(ctx, r.db, "list invoices", func(conn *gorm.DB) error {
		return conn.Raw(`
			SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.date, invoices.status,
			       customers.name, customers.email, customers.image_url
			FROM invoices
			JOIN customers ON invoices.customer_id = customers.id
			WHERE`+invoiceFilter+`
			ORDER BY invoices.date DESC
			LIMIT @limit OFFSET @offset`,
			sql.Named("pattern", likePattern(query)),
			sql.Named("limit", domain.InvoicesPerPage),
			sql.Named("offset", offset),
		).Scan(&recs).Error
	})
	if err != nil {
		return nil, err
	}
	return toRows(recs), nil
}

func (r *InvoiceRepository) CountFilteredPages(ctx context.Context, query string) (int, error) {
	var count int64
	err := withConn(ctx, r.db, "count invoices", func(conn *gorm.DB) error {
		return conn.Raw(`
			SELECT COUNT(*)
			FROM invoices
			JOIN customers ON invoices.customer_id = customers.id
			WHERE`+invoiceFilter,
			sql.Named("pattern", likePattern(query)),
		).Scan(&count).Error
	})
	if err != nil {
		return 0, err
	}
	return domain.TotalPages(count), nil
}

// CardTotals reads all four figures in one statement so they share a
// snapshot.
func (r *InvoiceRepository) CardTotals(ctx context.Context) (*domain.CardTotals, error) {
	var rec cardTotalsRecord
	err := withConn(ctx, r.db, "card totals", func(conn *gorm.DB) error {
		return conn.Raw(`
			SELECT
				(SELECT COUNT(*) FROM invoices) AS invoice_count,
				(SELECT COUNT(*) FROM customers) AS customer_count,
				(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'paid') AS total_paid,
				(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'pending') AS total_pending`,
		).Scan(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &domain.CardTotals{
		InvoiceCount:  rec.InvoiceCount,
		CustomerCount: rec.CustomerCount,
		TotalPaid:     rec.TotalPaid,
		TotalPending:  rec.TotalPending,
	}, nil
}

func (r *InvoiceRepository) Latest(ctx context.Context, limit int) ([]domain.InvoiceRow, error) {
	var recs []invoiceRecord
	err := withConn(ctx, r.db, "latest invoices", func(conn *gorm.DB) error {
		return conn.Raw(`
			SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.date, invoices.status,
			       customers.name, customers.email, customers.image_url
			FROM invoices
			JOIN customers ON invoices.customer_id = customers.id
			ORDER BY invoices.date DESC
			LIMIT ?`, limit,
		).Scan(&recs).Error
	})
	if err != nil {
		return nil, err
	}
	return toRows(recs), nil
}

func toRows(recs []invoiceRecord) []domain.InvoiceRow {
	rows := make([]domain.InvoiceRow, len(recs))
	for i, rec := range recs {
		rows[i] = rec.toRow()
	}
	return rows
}
