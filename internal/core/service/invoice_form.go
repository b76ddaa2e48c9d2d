package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

const (
	msgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	msgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
)

// formValidator is shared by every form in this package; validator caches
// struct metadata and is safe for concurrent use.
var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form name so errors line up with the inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// invoiceSchema is the typed shape an invoice form must coerce into.
type invoiceSchema struct {
	CustomerID string `form:"customerId" validate:"required"`
	Amount     int64  `form:"amount"     validate:"gt=0"`
	Status     string `form:"status"     validate:"oneof=pending paid"`
}

var invoiceFieldMessages = map[string]string{
	"customerId": "Please select a customer.",
	"amount":     "Please enter an amount greater than $0.",
	"status":     "Please select an invoice status.",
}

// ValidateInvoiceForm coerces raw form input into typed invoice fields.
// A rejected form is reported through the returned failure, never panics,
// and carries summary as its message.
func ValidateInvoiceForm(form ports.InvoiceForm, summary string) (ports.InvoiceFields, *domain.ValidationFailure) {
	schema := invoiceSchema{
		CustomerID: form.CustomerID,
		Amount:     coerceAmount(form.Amount),
		Status:     form.Status,
	}

	err := formValidator.Struct(schema)
	if err == nil {
		return ports.InvoiceFields{
			CustomerID: schema.CustomerID,
			Amount:     schema.Amount,
			Status:     domain.InvoiceStatus(schema.Status),
		}, nil
	}

	failure := &domain.ValidationFailure{Message: summary}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			msg, ok := invoiceFieldMessages[fe.Field()]
			if !ok {
				msg = fe.Error()
			}
			failure.Add(fe.Field(), msg)
		}
	}
	return ports.InvoiceFields{}, failure
}

// coerceAmount turns form text in dollars into cents. Anything that is not a
// decimal number, or whose cents fall outside [1, domain.MaxAmountCents],
// becomes 0 so it fails the positive-amount rule.
func coerceAmount(raw string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	cents, ok := domain.DollarsToCents(d)
	if !ok {
		return 0
	}
	return cents
}
