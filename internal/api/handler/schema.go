package handler

import "github.com/acmedash/billing-admin/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// invoiceFormRequest mirrors the invoice form. Amount is kept as text so
// coercion and its failure message stay in the validation layer.
type invoiceFormRequest struct {
	CustomerID string `form:"customerId" json:"customerId"`
	Amount     string `form:"amount"     json:"amount"`
	Status     string `form:"status"     json:"status"`
}

type listInvoicesQuery struct {
	Query string `query:"query" validate:"max=200"`
	Page  int    `query:"page"  validate:"omitempty,min=1"`
}

type searchQuery struct {
	Query string `query:"query" validate:"max=200"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type pagesResponse struct {
	TotalPages int `json:"total_pages"`
}

// actionResponse is the body of a failed invoice mutation.
type actionResponse struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message"`
}
