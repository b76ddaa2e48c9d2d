package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acmedash/billing-admin/internal/core/ports"
)

type CustomerHandler struct {
	queries ports.QueryService
}

func NewCustomerHandler(queries ports.QueryService) *CustomerHandler {
	return &CustomerHandler{queries: queries}
}

// List handles GET /dashboard/customers.
//
// @Summary      Customers with invoice totals
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Search term on name or email"
// @Success      200    {array}   ports.CustomerTableRow
// @Failure      500    {object}  errorResponse
// @Router       /dashboard/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	var q searchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	rows, err := h.queries.FilteredCustomers(c.Request().Context(), q.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Options handles GET /dashboard/customers/options.
//
// @Summary      Customer id/name pairs for selection
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CustomerField
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/customers/options [get]
func (h *CustomerHandler) Options(c echo.Context) error {
	fields, err := h.queries.Customers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fields)
}
