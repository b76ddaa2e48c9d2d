package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

func TestDashboardHandler_Cards(t *testing.T) {
	e := echo.New()
	queries := &stubQueryService{cards: &ports.CardData{
		NumberOfInvoices:     15,
		NumberOfCustomers:    6,
		TotalPaidInvoices:    "$1,200.00",
		TotalPendingInvoices: "$450.00",
	}}
	handler := NewDashboardHandler(queries)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard/cards", nil), rec)

	if err := handler.Cards(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got ports.CardData
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got != *queries.cards {
		t.Fatalf("unexpected cards: %+v", got)
	}
}

func TestDashboardHandler_PropagatesPublicError(t *testing.T) {
	e := echo.New()
	failure := domain.NewPublicError("Failed to fetch revenue data.", errors.New("timeout"))
	handler := NewDashboardHandler(&stubQueryService{err: failure})

	for name, fn := range map[string]echo.HandlerFunc{
		"revenue": handler.Revenue,
		"cards":   handler.Cards,
		"latest":  handler.LatestInvoices,
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)
		if err := fn(c); !errors.Is(err, failure) {
			t.Fatalf("%s: expected public error, got %v", name, err)
		}
	}
}

func TestCustomerHandler(t *testing.T) {
	e := newTestEcho()
	queries := &stubQueryService{
		customers: []ports.CustomerTableRow{{ID: "c1", Name: "Amy Burns", TotalPending: "$0.00", TotalPaid: "$0.00"}},
		options:   []domain.CustomerField{{ID: "c1", Name: "Amy Burns"}},
	}
	handler := NewCustomerHandler(queries)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard/customers?query=amy", nil), rec)
	if err := handler.List(c); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if queries.lastQuery != "amy" || rec.Code != http.StatusOK {
		t.Fatalf("unexpected list call: query=%q code=%d", queries.lastQuery, rec.Code)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard/customers/options", nil), rec)
	if err := handler.Options(c); err != nil {
		t.Fatalf("options error: %v", err)
	}
	var opts []domain.CustomerField
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil || len(opts) != 1 {
		t.Fatalf("unexpected options: %s", rec.Body.String())
	}
}
