// Package yield holds the deposit and cadence arithmetic behind every quote:
// how much principal must be deposited so that yield alone pays for one
// purchase every N days, and the inverse. All functions are pure and reject
// non-positive inputs instead of substituting defaults.
package yield

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// DaysPerYear is the simple-interest year used by every formula.
const DaysPerYear = 365

var (
	daysPerYear = decimal.NewFromInt(DaysPerYear)
	hundred     = decimal.NewFromInt(100)
	one         = decimal.NewFromInt(1)
	maxCadence  = decimal.NewFromInt(math.MaxInt32)
)

// DepositForCadence returns price × 365 / ((apyPercent/100) × cadenceDays)
// at full precision.
func DepositForCadence(price decimal.Decimal, cadenceDays int, apyPercent decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, errNonPositive("price")
	}
	if cadenceDays < 1 {
		return decimal.Zero, errCadenceTooShort(cadenceDays)
	}
	if !apyPercent.IsPositive() {
		return decimal.Zero, errNonPositive("apy")
	}

	// price × 365 × 100 / (apy × days) keeps the numerator exact.
	numerator := price.Mul(daysPerYear).Mul(hundred)
	denominator := apyPercent.Mul(decimal.NewFromInt(int64(cadenceDays)))
	return numerator.Div(denominator), nil
}

// ExactCadenceForDeposit returns price × 365 / (deposit × apyPercent/100) unrounded.
func ExactCadenceForDeposit(deposit, price, apyPercent decimal.Decimal) (decimal.Decimal, error) {
	if !deposit.IsPositive() {
		return decimal.Zero, errNonPositive("deposit")
	}
	if !price.IsPositive() {
		return decimal.Zero, errNonPositive("price")
	}
	if !apyPercent.IsPositive() {
		return decimal.Zero, errNonPositive("apy")
	}

	numerator := price.Mul(daysPerYear).Mul(hundred)
	denominator := deposit.Mul(apyPercent)
	return numerator.Div(denominator), nil
}

// CadenceForDeposit is the inverse of DepositForCadence, rounded to the
// nearest whole day and never below one. A cadence that does not fit in an
// int32 day count is rejected.
func CadenceForDeposit(deposit, price, apyPercent decimal.Decimal) (int, error) {
	exact, err := ExactCadenceForDeposit(deposit, price, apyPercent)
	if err != nil {
		return 0, err
	}
	days := exact.Round(0)
	if days.GreaterThan(maxCadence) {
		return 0, errCadenceTooLong(days)
	}
	if days.LessThan(one) {
		return 1, nil
	}
	return int(days.IntPart()), nil
}

// AnnualYield returns the yearly yield on principal at apyPercent.
func AnnualYield(principal, apyPercent decimal.Decimal) decimal.Decimal {
	return principal.Mul(apyPercent).Div(hundred)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
