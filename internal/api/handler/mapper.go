package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acmedash/billing-admin/internal/core/ports"
)

func toInvoiceForm(req invoiceFormRequest) ports.InvoiceForm {
	return ports.InvoiceForm{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Status:     req.Status,
	}
}

// writeActionResult turns a mutation result into a response:
//   - RedirectTo set → 303 See Other with Location.
//   - field errors → 422 with the errors and summary message.
//   - message only → 500 with the message.
//   - zero value → 204.
func writeActionResult(c echo.Context, res ports.ActionResult) error {
	switch {
	case res.RedirectTo != "":
		return c.Redirect(http.StatusSeeOther, res.RedirectTo)
	case len(res.Errors) > 0:
		return c.JSON(http.StatusUnprocessableEntity, actionResponse{Errors: res.Errors, Message: res.Message})
	case res.Message != "":
		return c.JSON(http.StatusInternalServerError, actionResponse{Message: res.Message})
	default:
		return c.NoContent(http.StatusNoContent)
	}
}
