package domain

import (
	"errors"
	"time"
)

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

// InvoicesPerPage is the fixed page size of the invoices listing.
const InvoicesPerPage = 6

// LatestInvoicesLimit is how many invoices the dashboard overview shows.
const LatestInvoicesLimit = 5

var ErrInvoiceNotFound = errors.New("invoice not found")

// Valid reports whether s is one of the persisted statuses.
func (s InvoiceStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Invoice is a single billable record owned by a customer.
// Amount is always held in cents.
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       time.Time     `json:"date"`
}

// InvoiceChanges are the only fields an update may touch. The creation date
// is deliberately absent.
type InvoiceChanges struct {
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
}

// InvoiceRow is an invoice joined with the display fields of its customer.
type InvoiceRow struct {
	ID         string
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
	Date       time.Time
	Name       string
	Email      string
	ImageURL   string
}

// CardTotals are the dashboard headline figures. Sums are in cents.
type CardTotals struct {
	InvoiceCount  int64
	CustomerCount int64
	TotalPaid     int64
	TotalPending  int64
}

// TotalPages returns how many pages of InvoicesPerPage rows are needed for n rows.
func TotalPages(n int64) int {
	if n <= 0 {
		return 0
	}
	return int((n + InvoicesPerPage - 1) / InvoicesPerPage)
}
