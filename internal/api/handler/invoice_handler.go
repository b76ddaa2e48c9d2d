package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acmedash/billing-admin/internal/api/metrics"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

// InvoiceHandler handles HTTP requests for invoice reads and mutations.
type InvoiceHandler struct {
	invoices ports.InvoiceService
	queries  ports.QueryService
	logger   zerolog.Logger
}

func NewInvoiceHandler(invoices ports.InvoiceService, queries ports.QueryService, logger zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, queries: queries, logger: logger}
}

// List handles GET /dashboard/invoices.
//
// @Summary      List invoices matching a search term
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Search term"
// @Param        page   query     int     false  "1-based page number"
// @Success      200    {array}   ports.InvoiceTableRow
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /dashboard/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	var q listInvoicesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	if q.Page == 0 {
		q.Page = 1
	}

	rows, err := h.queries.FilteredInvoices(c.Request().Context(), q.Query, q.Page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Pages handles GET /dashboard/invoices/pages.
//
// @Summary      Count result pages for a search term
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Search term"
// @Success      200    {object}  pagesResponse
// @Failure      500    {object}  errorResponse
// @Router       /dashboard/invoices/pages [get]
func (h *InvoiceHandler) Pages(c echo.Context) error {
	var q searchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	pages, err := h.queries.InvoicePages(c.Request().Context(), q.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagesResponse{TotalPages: pages})
}

// Get handles GET /dashboard/invoices/:id.
//
// @Summary      Get an invoice for editing
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  ports.InvoiceFormView
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	view, err := h.queries.InvoiceByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create handles POST /dashboard/invoices.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        customerId  formData  string  true  "Customer ID"
// @Param        amount      formData  string  true  "Amount in dollars"
// @Param        status      formData  string  true  "pending or paid"
// @Success      303
// @Failure      422  {object}  actionResponse
// @Failure      500  {object}  actionResponse
// @Router       /dashboard/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req invoiceFormRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	res := h.invoices.CreateInvoice(c.Request().Context(), toInvoiceForm(req))
	metrics.ObserveMutation("create", res)
	h.logMutation("create", "", userID, res)
	return writeActionResult(c, res)
}

// Update handles PUT /dashboard/invoices/:id.
//
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true  "Invoice ID"
// @Param        customerId  formData  string  true  "Customer ID"
// @Param        amount      formData  string  true  "Amount in dollars"
// @Param        status      formData  string  true  "pending or paid"
// @Success      303
// @Failure      422  {object}  actionResponse
// @Failure      500  {object}  actionResponse
// @Router       /dashboard/invoices/{id} [put]
func (h *InvoiceHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req invoiceFormRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	id := c.Param("id")
	res := h.invoices.UpdateInvoice(c.Request().Context(), id, toInvoiceForm(req))
	metrics.ObserveMutation("update", res)
	h.logMutation("update", id, userID, res)
	return writeActionResult(c, res)
}

// Delete handles DELETE /dashboard/invoices/:id.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Invoice ID"
// @Success      204
// @Failure      500  {object}  actionResponse
// @Router       /dashboard/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	res := h.invoices.DeleteInvoice(c.Request().Context(), id)
	metrics.ObserveMutation("delete", res)
	h.logMutation("delete", id, userID, res)
	return writeActionResult(c, res)
}

func (h *InvoiceHandler) logMutation(op, id, userID string, res ports.ActionResult) {
	evt := h.logger.Info()
	if res.Failed() {
		evt = h.logger.Warn().Str("result", res.Message)
	}
	evt.Str("op", op).Str("invoice_id", id).Str("user_id", userID).Msg("invoice mutation")
}
