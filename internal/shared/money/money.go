// Package money resolves currency minor units and formats amounts for people.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	JPY = "JPY"
	USD = "USD"
)

// MinorUnitScale returns the number of decimal places of the currency's minor unit
// (0 for JPY, 2 for USD).
func MinorUnitScale(code string) (int32, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 0, fmt.Errorf("unknown currency %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale), nil
}

// Quantize rounds half-up to the currency's minor unit.
func Quantize(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	scale, err := MinorUnitScale(code)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Round(scale), nil
}

// CeilToMinorUnit rounds up to the currency's minor unit.
func CeilToMinorUnit(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	scale, err := MinorUnitScale(code)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.RoundCeil(scale), nil
}

// Format renders an amount with the currency symbol and locale grouping, e.g. "¥652,679".
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.String() + " " + code
	}
	scale, _ := currency.Standard.Rounding(unit)

	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit)) +
		p.Sprint(number.Decimal(amount.InexactFloat64(), number.Scale(scale)))
}
