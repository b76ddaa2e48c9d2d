package ports

import (
	"context"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

// InvoiceForm carries the untyped form fields of an invoice mutation.
type InvoiceForm struct {
	CustomerID string
	Amount     string
	Status     string
}

// InvoiceFields is a validated invoice form. Amount is in cents.
type InvoiceFields struct {
	CustomerID string
	Amount     int64
	Status     domain.InvoiceStatus
}

// ActionResult is what a mutation hands back to its caller. A non-empty
// RedirectTo means success and the caller must navigate there; otherwise
// Errors and Message describe the failure. The zero value means success
// without navigation.
type ActionResult struct {
	Errors     map[string][]string `json:"errors,omitempty"`
	Message    string              `json:"message,omitempty"`
	RedirectTo string              `json:"-"`
}

// Failed reports whether the mutation did not go through.
func (r ActionResult) Failed() bool {
	return r.Message != "" || len(r.Errors) > 0
}

// InvoiceService orchestrates invoice mutations.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, form InvoiceForm) ActionResult
	UpdateInvoice(ctx context.Context, id string, form InvoiceForm) ActionResult
	DeleteInvoice(ctx context.Context, id string) ActionResult
}
