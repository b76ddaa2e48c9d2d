package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

// QueryService serves dashboard reads: it reshapes repository rows into
// display values and caches them per view path.
type QueryService struct {
	invoices  ports.InvoiceRepository
	customers ports.CustomerRepository
	revenue   ports.RevenueRepository
	cache     ports.ViewCache
	logger    zerolog.Logger
}

func NewQueryService(
	invoices ports.InvoiceRepository,
	customers ports.CustomerRepository,
	revenue ports.RevenueRepository,
	cache ports.ViewCache,
	logger zerolog.Logger,
) *QueryService {
	return &QueryService{
		invoices:  invoices,
		customers: customers,
		revenue:   revenue,
		cache:     cache,
		logger:    logger,
	}
}

func (s *QueryService) Revenue(ctx context.Context) ([]domain.Revenue, error) {
	return cached(ctx, s, ports.PathDashboard, "revenue", func(ctx context.Context) ([]domain.Revenue, error) {
		rows, err := s.revenue.List(ctx)
		if err != nil {
			return nil, s.fail("Failed to fetch revenue data.", err)
		}
		return rows, nil
	})
}

func (s *QueryService) LatestInvoices(ctx context.Context) ([]ports.LatestInvoice, error) {
	return cached(ctx, s, ports.PathDashboard, "latest", func(ctx context.Context) ([]ports.LatestInvoice, error) {
		rows, err := s.invoices.Latest(ctx, domain.LatestInvoicesLimit)
		if err != nil {
			return nil, s.fail("Failed to fetch the latest invoices.", err)
		}
		out := make([]ports.LatestInvoice, len(rows))
		for i, r := range rows {
			out[i] = ports.LatestInvoice{
				ID:       r.ID,
				Name:     r.Name,
				Email:    r.Email,
				ImageURL: r.ImageURL,
				Amount:   domain.FormatCurrency(r.Amount),
			}
		}
		return out, nil
	})
}

func (s *QueryService) CardData(ctx context.Context) (*ports.CardData, error) {
	return cached(ctx, s, ports.PathDashboard, "cards", func(ctx context.Context) (*ports.CardData, error) {
		totals, err := s.invoices.CardTotals(ctx)
		if err != nil {
			return nil, s.fail("Failed to fetch card data.", err)
		}
		return &ports.CardData{
			NumberOfInvoices:     totals.InvoiceCount,
			NumberOfCustomers:    totals.CustomerCount,
			TotalPaidInvoices:    domain.FormatCurrency(totals.TotalPaid),
			TotalPendingInvoices: domain.FormatCurrency(totals.TotalPending),
		}, nil
	})
}

func (s *QueryService) FilteredInvoices(ctx context.Context, query string, page int) ([]ports.InvoiceTableRow, error) {
	if page < 1 {
		page = 1
	}
	variant := fmt.Sprintf("list?query=%s&page=%d", url.QueryEscape(query), page)
	return cached(ctx, s, ports.PathInvoices, variant, func(ctx context.Context) ([]ports.InvoiceTableRow, error) {
		rows, err := s.invoices.ListFiltered(ctx, query, page)
		if err != nil {
			return nil, s.fail("Failed to fetch invoices.", err)
		}
		out := make([]ports.InvoiceTableRow, len(rows))
		for i, r := range rows {
			out[i] = ports.InvoiceTableRow{
				ID:       r.ID,
				Amount:   r.Amount,
				Date:     r.Date.Format("2006-01-02"),
				Status:   string(r.Status),
				Name:     r.Name,
				Email:    r.Email,
				ImageURL: r.ImageURL,
			}
		}
		return out, nil
	})
}

func (s *QueryService) InvoicePages(ctx context.Context, query string) (int, error) {
	variant := "pages?query=" + url.QueryEscape(query)
	return cached(ctx, s, ports.PathInvoices, variant, func(ctx context.Context) (int, error) {
		pages, err := s.invoices.CountFilteredPages(ctx, query)
		if err != nil {
			return 0, s.fail("Failed to fetch total number of invoices.", err)
		}
		return pages, nil
	})
}

// InvoiceByID is read straight from the store: edit forms must not show a
// stale amount.
func (s *QueryService) InvoiceByID(ctx context.Context, id string) (*ports.InvoiceFormView, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, err
		}
		return nil, s.fail("Failed to fetch invoice.", err)
	}
	return &ports.InvoiceFormView{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     domain.CentsToDollars(inv.Amount),
		Status:     string(inv.Status),
	}, nil
}

func (s *QueryService) Customers(ctx context.Context) ([]domain.CustomerField, error) {
	return cached(ctx, s, ports.PathCustomers, "options", func(ctx context.Context) ([]domain.CustomerField, error) {
		rows, err := s.customers.ListAll(ctx)
		if err != nil {
			return nil, s.fail("Failed to fetch all customers.", err)
		}
		return rows, nil
	})
}

func (s *QueryService) FilteredCustomers(ctx context.Context, query string) ([]ports.CustomerTableRow, error) {
	variant := "table?query=" + url.QueryEscape(query)
	return cached(ctx, s, ports.PathCustomers, variant, func(ctx context.Context) ([]ports.CustomerTableRow, error) {
		rows, err := s.customers.ListFilteredWithTotals(ctx, query)
		if err != nil {
			return nil, s.fail("Failed to fetch customer table.", err)
		}
		out := make([]ports.CustomerTableRow, len(rows))
		for i, r := range rows {
			out[i] = ports.CustomerTableRow{
				ID:            r.ID,
				Name:          r.Name,
				Email:         r.Email,
				ImageURL:      r.ImageURL,
				TotalInvoices: r.TotalInvoices,
				TotalPending:  domain.FormatCurrency(r.TotalPending),
				TotalPaid:     domain.FormatCurrency(r.TotalPaid),
			}
		}
		return out, nil
	})
}

// fail logs the store error and hides it behind msg.
func (s *QueryService) fail(msg string, err error) error {
	s.logger.Error().Err(err).Msg(msg)
	return domain.NewPublicError(msg, err)
}

// cached serves path/variant from the view cache, falling back to fetch on a
// miss or a cache error. Only successful results are stored.
func cached[T any](ctx context.Context, s *QueryService, path, variant string, fetch func(context.Context) (T, error)) (T, error) {
	var out T
	hit, err := s.cache.Load(ctx, path, variant, &out)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Str("variant", variant).Msg("view cache load failed")
	} else if hit {
		return out, nil
	}

	out, err = fetch(ctx)
	if err != nil {
		return out, err
	}
	if err := s.cache.Store(ctx, path, variant, out); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Str("variant", variant).Msg("view cache store failed")
	}
	return out, nil
}
