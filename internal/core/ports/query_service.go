package ports

import (
	"context"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

// LatestInvoice is an overview row with a pre-formatted amount.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// CardData holds the dashboard headline cards.
type CardData struct {
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	NumberOfCustomers    int64  `json:"number_of_customers"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}

// InvoiceTableRow is one row of the invoices listing. Amount stays in cents.
type InvoiceTableRow struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// InvoiceFormView is an invoice prepared for an edit form (amount in dollars).
type InvoiceFormView struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// CustomerTableRow is a customer with formatted invoice totals.
type CustomerTableRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// QueryService serves the read side of the dashboard. Failures are returned
// as *domain.PublicError, except domain.ErrInvoiceNotFound.
type QueryService interface {
	Revenue(ctx context.Context) ([]domain.Revenue, error)
	LatestInvoices(ctx context.Context) ([]LatestInvoice, error)
	CardData(ctx context.Context) (*CardData, error)
	FilteredInvoices(ctx context.Context, query string, page int) ([]InvoiceTableRow, error)
	InvoicePages(ctx context.Context, query string) (int, error)
	InvoiceByID(ctx context.Context, id string) (*InvoiceFormView, error)
	Customers(ctx context.Context) ([]domain.CustomerField, error)
	FilteredCustomers(ctx context.Context, query string) ([]CustomerTableRow, error)
}
