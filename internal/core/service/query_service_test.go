package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

func seedInvoices(repo *stubInvoiceRepo, n int) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("inv-%02d", i)
		status := domain.StatusPending
		if i%2 == 0 {
			status = domain.StatusPaid
		}
		repo.invoices[id] = &domain.Invoice{
			ID:         id,
			CustomerID: "cust-1",
			Amount:     int64(1000 * (i + 1)),
			Status:     status,
			Date:       base.AddDate(0, 0, i),
		}
	}
}

func newTestQueryService(repo *stubInvoiceRepo, cache *stubViewCache) *QueryService {
	customers := &stubCustomerRepo{
		fields: []domain.CustomerField{{ID: "cust-1", Name: "Delba de Oliveira"}},
		summaries: []domain.CustomerSummary{
			{ID: "cust-1", Name: "Delba de Oliveira", TotalInvoices: 2, TotalPending: 123456, TotalPaid: 0},
		},
	}
	revenue := &stubRevenueRepo{rows: []domain.Revenue{{Month: "Jan", Revenue: 2000}}}
	return NewQueryService(repo, customers, revenue, cache, discardLogger)
}

func TestQueryService_CardData_Formats(t *testing.T) {
	repo := newStubInvoiceRepo()
	repo.invoices["a"] = &domain.Invoice{ID: "a", CustomerID: "cust-1", Amount: 123456, Status: domain.StatusPaid}
	repo.invoices["b"] = &domain.Invoice{ID: "b", CustomerID: "cust-2", Amount: 4250, Status: domain.StatusPending}
	svc := newTestQueryService(repo, newStubViewCache())

	cards, err := svc.CardData(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cards.NumberOfInvoices != 2 || cards.NumberOfCustomers != 2 {
		t.Errorf("unexpected counts: %+v", cards)
	}
	if cards.TotalPaidInvoices != "$1,234.56" || cards.TotalPendingInvoices != "$42.50" {
		t.Errorf("unexpected totals: %+v", cards)
	}
}

func TestQueryService_CardData_ZeroWhenEmpty(t *testing.T) {
	svc := newTestQueryService(newStubInvoiceRepo(), newStubViewCache())

	cards, err := svc.CardData(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cards.TotalPaidInvoices != "$0.00" || cards.TotalPendingInvoices != "$0.00" {
		t.Errorf("expected zero totals, got %+v", cards)
	}
}

func TestQueryService_FilteredInvoices_Paginates(t *testing.T) {
	repo := newStubInvoiceRepo()
	seedInvoices(repo, 8)
	svc := newTestQueryService(repo, newStubViewCache())

	first, err := svc.FilteredInvoices(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != domain.InvoicesPerPage {
		t.Fatalf("expected %d rows, got %d", domain.InvoicesPerPage, len(first))
	}
	if first[0].ID != "inv-07" || first[0].Date != "2025-01-08" {
		t.Errorf("expected newest first, got %+v", first[0])
	}

	second, _ := svc.FilteredInvoices(context.Background(), "", 2)
	if len(second) != 2 {
		t.Errorf("expected 2 rows on page 2, got %d", len(second))
	}

	clamped, _ := svc.FilteredInvoices(context.Background(), "", 0)
	if len(clamped) != domain.InvoicesPerPage || clamped[0].ID != first[0].ID {
		t.Errorf("page 0 should behave like page 1")
	}
}

func TestQueryService_InvoicePages(t *testing.T) {
	repo := newStubInvoiceRepo()
	seedInvoices(repo, 13)
	svc := newTestQueryService(repo, newStubViewCache())

	cases := map[string]int{"": 3, "paid": 2, "DELBA": 3, "nobody": 0}
	for q, want := range cases {
		got, err := svc.InvoicePages(context.Background(), q)
		if err != nil {
			t.Fatalf("query %q: %v", q, err)
		}
		if got != want {
			t.Errorf("query %q: got %d pages, want %d", q, got, want)
		}
	}
}

func TestQueryService_ServesFromCacheUntilRevalidated(t *testing.T) {
	repo := newStubInvoiceRepo()
	seedInvoices(repo, 2)
	cache := newStubViewCache()
	svc := newTestQueryService(repo, cache)

	if _, err := svc.LatestInvoices(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := repo.calls

	latest, err := svc.LatestInvoices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls != calls {
		t.Errorf("second read should hit the cache")
	}
	if len(latest) != 2 || latest[0].Amount != "$20.00" {
		t.Errorf("unexpected cached rows: %+v", latest)
	}

	_ = cache.Revalidate(context.Background(), ports.PathDashboard)
	if _, err := svc.LatestInvoices(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.calls == calls {
		t.Errorf("read after revalidation should reach the store")
	}
}

func TestQueryService_CacheErrorFallsBackToStore(t *testing.T) {
	repo := newStubInvoiceRepo()
	seedInvoices(repo, 1)
	cache := newStubViewCache()
	cache.loadErr = errors.New("redis down")
	svc := newTestQueryService(repo, cache)

	rows, err := svc.LatestInvoices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
}

func TestQueryService_PersistenceErrorsAreHidden(t *testing.T) {
	repo := newStubInvoiceRepo()
	repo.err = errStoreDown
	svc := NewQueryService(repo, &stubCustomerRepo{err: errStoreDown}, &stubRevenueRepo{err: errStoreDown}, newStubViewCache(), discardLogger)
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
		want string
	}{
		{"revenue", func() error { _, err := svc.Revenue(ctx); return err }, "Failed to fetch revenue data."},
		{"latest", func() error { _, err := svc.LatestInvoices(ctx); return err }, "Failed to fetch the latest invoices."},
		{"cards", func() error { _, err := svc.CardData(ctx); return err }, "Failed to fetch card data."},
		{"invoices", func() error { _, err := svc.FilteredInvoices(ctx, "", 1); return err }, "Failed to fetch invoices."},
		{"pages", func() error { _, err := svc.InvoicePages(ctx, ""); return err }, "Failed to fetch total number of invoices."},
		{"invoice", func() error { _, err := svc.InvoiceByID(ctx, "x"); return err }, "Failed to fetch invoice."},
		{"customers", func() error { _, err := svc.Customers(ctx); return err }, "Failed to fetch all customers."},
		{"customer table", func() error { _, err := svc.FilteredCustomers(ctx, ""); return err }, "Failed to fetch customer table."},
	}

	for _, c := range checks {
		err := c.call()
		var pe *domain.PublicError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected PublicError, got %v", c.name, err)
			continue
		}
		if pe.Error() != c.want {
			t.Errorf("%s: got %q, want %q", c.name, pe.Error(), c.want)
		}
		var persistErr *domain.PersistenceError
		if !errors.As(err, &persistErr) {
			t.Errorf("%s: cause should remain reachable for logging", c.name)
		}
	}
}

func TestQueryService_InvoiceByID_NotFound(t *testing.T) {
	svc := newTestQueryService(newStubInvoiceRepo(), newStubViewCache())

	if _, err := svc.InvoiceByID(context.Background(), "missing"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestQueryService_FilteredCustomers_Formats(t *testing.T) {
	svc := newTestQueryService(newStubInvoiceRepo(), newStubViewCache())

	rows, err := svc.FilteredCustomers(context.Background(), "delba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].TotalPending != "$1,234.56" || rows[0].TotalPaid != "$0.00" || rows[0].TotalInvoices != 2 {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestQueryService_RevenueAndCustomers(t *testing.T) {
	svc := newTestQueryService(newStubInvoiceRepo(), newStubViewCache())

	rev, err := svc.Revenue(context.Background())
	if err != nil || len(rev) != 1 || rev[0].Month != "Jan" {
		t.Fatalf("unexpected revenue %v, %v", rev, err)
	}
	opts, err := svc.Customers(context.Background())
	if err != nil || len(opts) != 1 || opts[0].ID != "cust-1" {
		t.Fatalf("unexpected customers %v, %v", opts, err)
	}
}
