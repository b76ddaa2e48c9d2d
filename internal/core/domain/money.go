package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// MaxAmountCents is the largest amount the invoices.amount INT column holds.
const MaxAmountCents int64 = math.MaxInt32

var (
	minCents = decimal.NewFromInt(1)
	maxCents = decimal.NewFromInt(MaxAmountCents)
)

// DollarsToCents converts a dollar amount to integer cents, rounding half
// away from zero. ok is false when the cents fall outside [1, MaxAmountCents].
func DollarsToCents(dollars decimal.Decimal) (cents int64, ok bool) {
	c := dollars.Shift(2).Round(0)
	if c.LessThan(minCents) || c.GreaterThan(maxCents) {
		return 0, false
	}
	return c.IntPart(), true
}

// CentsToDollars converts stored cents back to dollars for form values.
func CentsToDollars(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// FormatCurrency renders cents as en-US dollars, e.g. 123456 → "$1,234.56".
func FormatCurrency(cents int64) string {
	d := decimal.New(cents, -2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.IntPart()
	frac := d.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, usd.Sprintf("%d", whole), frac)
}
