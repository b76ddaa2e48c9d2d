package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

var discardLogger = zerolog.Nop()

var errStoreDown = errors.New("connection refused")

// ---------------------------------------------------------------------------
// In-memory invoice repository
// ---------------------------------------------------------------------------

type stubInvoiceRepo struct {
	invoices  map[string]*domain.Invoice
	customers map[string]domain.Customer
	err       error // if set, every call returns it wrapped as PersistenceError
	calls     int
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{
		invoices: make(map[string]*domain.Invoice),
		customers: map[string]domain.Customer{
			"cust-1": {ID: "cust-1", Name: "Delba de Oliveira", Email: "delba@oliveira.com"},
			"cust-2": {ID: "cust-2", Name: "Lee Robinson", Email: "lee@robinson.com"},
		},
	}
}

func (r *stubInvoiceRepo) fail(op string) error {
	r.calls++
	if r.err != nil {
		return &domain.PersistenceError{Op: op, Err: r.err}
	}
	return nil
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	if err := r.fail("create invoice"); err != nil {
		return err
	}
	clone := *inv
	r.invoices[inv.ID] = &clone
	return nil
}

func (r *stubInvoiceRepo) Update(_ context.Context, id string, c domain.InvoiceChanges) error {
	if err := r.fail("update invoice"); err != nil {
		return err
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil
	}
	inv.CustomerID, inv.Amount, inv.Status = c.CustomerID, c.Amount, c.Status
	return nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, id string) error {
	if err := r.fail("delete invoice"); err != nil {
		return err
	}
	delete(r.invoices, id)
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id string) (*domain.Invoice, error) {
	if err := r.fail("find invoice"); err != nil {
		return nil, err
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	clone := *inv
	return &clone, nil
}

// rows applies the same OR predicate as the SQL repository, newest first.
func (r *stubInvoiceRepo) rows(query string) []domain.InvoiceRow {
	q := strings.ToLower(query)
	var out []domain.InvoiceRow
	for _, inv := range r.invoices {
		c := r.customers[inv.CustomerID]
		fields := []string{c.Name, c.Email, strconv.FormatInt(inv.Amount, 10), inv.Date.Format("2006-01-02"), string(inv.Status)}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, domain.InvoiceRow{
					ID: inv.ID, CustomerID: inv.CustomerID, Amount: inv.Amount, Status: inv.Status,
					Date: inv.Date, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL,
				})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *stubInvoiceRepo) ListFiltered(_ context.Context, query string, page int) ([]domain.InvoiceRow, error) {
	if err := r.fail("list invoices"); err != nil {
		return nil, err
	}
	rows := r.rows(query)
	start := (page - 1) * domain.InvoicesPerPage
	if start >= len(rows) {
		return []domain.InvoiceRow{}, nil
	}
	end := min(start+domain.InvoicesPerPage, len(rows))
	return rows[start:end], nil
}

func (r *stubInvoiceRepo) CountFilteredPages(_ context.Context, query string) (int, error) {
	if err := r.fail("count invoices"); err != nil {
		return 0, err
	}
	return domain.TotalPages(int64(len(r.rows(query)))), nil
}

func (r *stubInvoiceRepo) CardTotals(_ context.Context) (*domain.CardTotals, error) {
	if err := r.fail("card totals"); err != nil {
		return nil, err
	}
	t := &domain.CardTotals{InvoiceCount: int64(len(r.invoices)), CustomerCount: int64(len(r.customers))}
	for _, inv := range r.invoices {
		switch inv.Status {
		case domain.StatusPaid:
			t.TotalPaid += inv.Amount
		case domain.StatusPending:
			t.TotalPending += inv.Amount
		}
	}
	return t, nil
}

func (r *stubInvoiceRepo) Latest(ctx context.Context, limit int) ([]domain.InvoiceRow, error) {
	if err := r.fail("latest invoices"); err != nil {
		return nil, err
	}
	rows := r.rows("")
	return rows[:min(limit, len(rows))], nil
}

// ---------------------------------------------------------------------------
// Customer / revenue repositories
// ---------------------------------------------------------------------------

type stubCustomerRepo struct {
	fields    []domain.CustomerField
	summaries []domain.CustomerSummary
	err       error
}

func (r *stubCustomerRepo) ListAll(context.Context) ([]domain.CustomerField, error) {
	if r.err != nil {
		return nil, &domain.PersistenceError{Op: "list customers", Err: r.err}
	}
	return r.fields, nil
}

func (r *stubCustomerRepo) ListFilteredWithTotals(_ context.Context, _ string) ([]domain.CustomerSummary, error) {
	if r.err != nil {
		return nil, &domain.PersistenceError{Op: "list customer totals", Err: r.err}
	}
	return r.summaries, nil
}

type stubRevenueRepo struct {
	rows []domain.Revenue
	err  error
}

func (r *stubRevenueRepo) List(context.Context) ([]domain.Revenue, error) {
	if r.err != nil {
		return nil, &domain.PersistenceError{Op: "list revenue", Err: r.err}
	}
	return r.rows, nil
}

// ---------------------------------------------------------------------------
// View cache
// ---------------------------------------------------------------------------

type stubViewCache struct {
	entries     map[string][]byte
	revalidated []string
	loadErr     error
	revalErr    error
}

func newStubViewCache() *stubViewCache {
	return &stubViewCache{entries: make(map[string][]byte)}
}

func (c *stubViewCache) Load(_ context.Context, path, variant string, dest any) (bool, error) {
	if c.loadErr != nil {
		return false, c.loadErr
	}
	b, ok := c.entries[path+"|"+variant]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *stubViewCache) Store(_ context.Context, path, variant string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[path+"|"+variant] = b
	return nil
}

func (c *stubViewCache) Revalidate(_ context.Context, path string) error {
	c.revalidated = append(c.revalidated, path)
	if c.revalErr != nil {
		return c.revalErr
	}
	for k := range c.entries {
		if strings.HasPrefix(k, path+"|") {
			delete(c.entries, k)
		}
	}
	return nil
}
