package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acmedash/billing-admin/internal/core/ports"
)

// DashboardHandler serves the overview widgets.
type DashboardHandler struct {
	queries ports.QueryService
}

func NewDashboardHandler(queries ports.QueryService) *DashboardHandler {
	return &DashboardHandler{queries: queries}
}

// Revenue handles GET /dashboard/revenue.
//
// @Summary      Monthly revenue
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Revenue
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/revenue [get]
func (h *DashboardHandler) Revenue(c echo.Context) error {
	rows, err := h.queries.Revenue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Cards handles GET /dashboard/cards.
//
// @Summary      Headline totals
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.CardData
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/cards [get]
func (h *DashboardHandler) Cards(c echo.Context) error {
	cards, err := h.queries.CardData(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cards)
}

// LatestInvoices handles GET /dashboard/latest-invoices.
//
// @Summary      Five most recent invoices
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.LatestInvoice
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/latest-invoices [get]
func (h *DashboardHandler) LatestInvoices(c echo.Context) error {
	rows, err := h.queries.LatestInvoices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}
