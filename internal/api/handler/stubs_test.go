package handler

import (
	"context"

	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

type stubInvoiceService struct {
	result   ports.ActionResult
	lastID   string
	lastForm ports.InvoiceForm
	calls    int
}

func (s *stubInvoiceService) CreateInvoice(_ context.Context, form ports.InvoiceForm) ports.ActionResult {
	s.calls++
	s.lastForm = form
	return s.result
}

func (s *stubInvoiceService) UpdateInvoice(_ context.Context, id string, form ports.InvoiceForm) ports.ActionResult {
	s.calls++
	s.lastID, s.lastForm = id, form
	return s.result
}

func (s *stubInvoiceService) DeleteInvoice(_ context.Context, id string) ports.ActionResult {
	s.calls++
	s.lastID = id
	return s.result
}

// stubQueryService answers every read from its fields; err fails them all.
type stubQueryService struct {
	err       error
	rows      []ports.InvoiceTableRow
	pages     int
	view      *ports.InvoiceFormView
	customers []ports.CustomerTableRow
	options   []domain.CustomerField
	cards     *ports.CardData
	latest    []ports.LatestInvoice
	revenue   []domain.Revenue

	lastQuery string
	lastPage  int
}

func (s *stubQueryService) Revenue(context.Context) ([]domain.Revenue, error) {
	return s.revenue, s.err
}

func (s *stubQueryService) LatestInvoices(context.Context) ([]ports.LatestInvoice, error) {
	return s.latest, s.err
}

func (s *stubQueryService) CardData(context.Context) (*ports.CardData, error) {
	return s.cards, s.err
}

func (s *stubQueryService) FilteredInvoices(_ context.Context, query string, page int) ([]ports.InvoiceTableRow, error) {
	s.lastQuery, s.lastPage = query, page
	return s.rows, s.err
}

func (s *stubQueryService) InvoicePages(_ context.Context, query string) (int, error) {
	s.lastQuery = query
	return s.pages, s.err
}

func (s *stubQueryService) InvoiceByID(context.Context, string) (*ports.InvoiceFormView, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.view == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return s.view, nil
}

func (s *stubQueryService) Customers(context.Context) ([]domain.CustomerField, error) {
	return s.options, s.err
}

func (s *stubQueryService) FilteredCustomers(_ context.Context, query string) ([]ports.CustomerTableRow, error) {
	s.lastQuery = query
	return s.customers, s.err
}
