package ports

import (
	"context"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

// InvoiceRepository defines persistence operations for invoices. Every
// failure is reported as *domain.PersistenceError.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	// Update overwrites customer, amount and status. Missing ids are a no-op.
	Update(ctx context.Context, id string, changes domain.InvoiceChanges) error
	// Delete removes the invoice. Missing ids are a no-op.
	Delete(ctx context.Context, id string) error
	// FindByID returns domain.ErrInvoiceNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	// ListFiltered returns one page (1-based) of invoices whose customer
	// name/email, amount, date or status contains query, newest first.
	ListFiltered(ctx context.Context, query string, page int) ([]domain.InvoiceRow, error)
	// CountFilteredPages uses the same predicate as ListFiltered.
	CountFilteredPages(ctx context.Context, query string) (int, error)
	CardTotals(ctx context.Context) (*domain.CardTotals, error)
	Latest(ctx context.Context, limit int) ([]domain.InvoiceRow, error)
}

// CustomerRepository defines read operations over customers.
type CustomerRepository interface {
	ListAll(ctx context.Context) ([]domain.CustomerField, error)
	ListFilteredWithTotals(ctx context.Context, query string) ([]domain.CustomerSummary, error)
}

// RevenueRepository reads the monthly revenue table.
type RevenueRepository interface {
	List(ctx context.Context) ([]domain.Revenue, error)
}
