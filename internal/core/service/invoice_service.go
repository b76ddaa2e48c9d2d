package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

const (
	msgCreateFailed = "Database Error: Failed to Create Invoice."
	msgUpdateFailed = "Database Error: Failed to Update Invoice."
	msgDeleteFailed = "Database Error: Failed to Delete Invoice."
)

// invoiceViews lists every cached view that is derived from invoice rows.
var invoiceViews = []string{ports.PathInvoices, ports.PathDashboard, ports.PathCustomers}

// InvoiceService sequences validate → persist → revalidate → navigate for
// each invoice mutation.
type InvoiceService struct {
	repo   ports.InvoiceRepository
	cache  ports.ViewCache
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewInvoiceService(repo ports.InvoiceRepository, cache ports.ViewCache, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// CreateInvoice validates the form, stores a new invoice dated now and
// asks the caller to navigate to the invoices listing.
func (s *InvoiceService) CreateInvoice(ctx context.Context, form ports.InvoiceForm) ports.ActionResult {
	fields, failure := ValidateInvoiceForm(form, msgCreateMissingFields)
	if failure != nil {
		return ports.ActionResult{Errors: failure.Errors, Message: failure.Message}
	}

	inv := &domain.Invoice{
		ID:         s.newID(),
		CustomerID: fields.CustomerID,
		Amount:     fields.Amount,
		Status:     fields.Status,
		Date:       s.now().UTC(),
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		s.logger.Error().Err(err).Str("customer_id", inv.CustomerID).Msg("failed to create invoice")
		return ports.ActionResult{Message: msgCreateFailed}
	}

	s.logger.Info().Str("invoice_id", inv.ID).Int64("amount", inv.Amount).Str("status", string(inv.Status)).Msg("invoice created")
	s.revalidate(ctx)
	return ports.ActionResult{RedirectTo: ports.PathInvoices}
}

// UpdateInvoice overwrites customer, amount and status of invoice id. The
// creation date is never touched.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form ports.InvoiceForm) ports.ActionResult {
	fields, failure := ValidateInvoiceForm(form, msgUpdateMissingFields)
	if failure != nil {
		return ports.ActionResult{Errors: failure.Errors, Message: failure.Message}
	}

	changes := domain.InvoiceChanges{
		CustomerID: fields.CustomerID,
		Amount:     fields.Amount,
		Status:     fields.Status,
	}
	if err := s.repo.Update(ctx, id, changes); err != nil {
		s.logger.Error().Err(err).Str("invoice_id", id).Msg("failed to update invoice")
		return ports.ActionResult{Message: msgUpdateFailed}
	}

	s.logger.Info().Str("invoice_id", id).Int64("amount", changes.Amount).Str("status", string(changes.Status)).Msg("invoice updated")
	s.revalidate(ctx)
	return ports.ActionResult{RedirectTo: ports.PathInvoices}
}

// DeleteInvoice removes invoice id. The caller stays on its current view,
// so a successful delete returns the zero ActionResult.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) ports.ActionResult {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("invoice_id", id).Msg("failed to delete invoice")
		return ports.ActionResult{Message: msgDeleteFailed}
	}

	s.logger.Info().Str("invoice_id", id).Msg("invoice deleted")
	s.revalidate(ctx)
	return ports.ActionResult{}
}

// revalidate drops cached views after a committed write. Failures only
// leave stale entries until their TTL, so they are logged and ignored.
func (s *InvoiceService) revalidate(ctx context.Context) {
	for _, path := range invoiceViews {
		if err := s.cache.Revalidate(ctx, path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("view revalidation failed")
		}
	}
}
