package yield

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDepositForCadence_WorkedExample(t *testing.T) {
	// 500 × 365 / (0.04 × 7)
	deposit, err := DepositForCadence(d("500"), 7, d("4"))
	require.NoError(t, err)

	assert.Equal(t, "651785.71", deposit.StringFixed(2))
}

func TestDepositForCadence_ProductCatalogScale(t *testing.T) {
	// A yogurt every day at 4% needs price × 365 / 0.04.
	deposit, err := DepositForCadence(d("180"), 1, d("4"))
	require.NoError(t, err)
	assert.True(t, deposit.Equal(d("1642500")), deposit.String())
}

func TestDepositForCadence_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		price string
		days  int
		apy   string
	}{
		{"zero price", "0", 7, "4"},
		{"negative price", "-1", 7, "4"},
		{"zero cadence", "500", 0, "4"},
		{"negative cadence", "500", -3, "4"},
		{"zero apy", "500", 7, "0"},
		{"negative apy", "500", 7, "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DepositForCadence(d(tt.price), tt.days, d(tt.apy))
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestDepositForCadence_MoreFrequentCostsMore(t *testing.T) {
	prices := []string{"180", "500", "2795"}
	apys := []string{"0.5", "3.2", "12"}

	for _, price := range prices {
		for _, apy := range apys {
			prev, err := DepositForCadence(d(price), 1, d(apy))
			require.NoError(t, err)
			for days := 2; days <= 120; days++ {
				next, err := DepositForCadence(d(price), days, d(apy))
				require.NoError(t, err)
				assert.True(t, prev.GreaterThan(next), "price=%s apy=%s days=%d", price, apy, days)
				prev = next
			}
		}
	}
}

func TestCadenceForDeposit_RoundTrip(t *testing.T) {
	prices := []string{"180", "248", "343", "580", "1280", "2795", "99.99"}
	apys := []string{"0.75", "4", "7.35", "15"}

	for _, price := range prices {
		for _, apy := range apys {
			for days := 1; days <= 400; days += 7 {
				deposit, err := DepositForCadence(d(price), days, d(apy))
				require.NoError(t, err)

				got, err := CadenceForDeposit(deposit, d(price), d(apy))
				require.NoError(t, err)
				assert.Equal(t, days, got, "price=%s apy=%s", price, apy)
			}
		}
	}
}

func TestCadenceForDeposit_RoundTripSurvivesDisplayCeiling(t *testing.T) {
	deposit, err := DepositForCadence(d("500"), 7, d("4"))
	require.NoError(t, err)

	got, err := CadenceForDeposit(deposit.Ceil(), d("500"), d("4"))
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestCadenceForDeposit_NearestAndFloorOfOne(t *testing.T) {
	// 500 × 365 / (1,000,000 × 0.04) = 4.5625 → 5
	days, err := CadenceForDeposit(d("1000000"), d("500"), d("4"))
	require.NoError(t, err)
	assert.Equal(t, 5, days)

	// A huge deposit still yields at least one day.
	days, err = CadenceForDeposit(d("1000000000"), d("180"), d("4"))
	require.NoError(t, err)
	assert.Equal(t, 1, days)
}

func TestCadenceForDeposit_RejectsInvalidInput(t *testing.T) {
	_, err := CadenceForDeposit(d("0"), d("500"), d("4"))
	assert.True(t, errors.IsValidationError(err))

	_, err = CadenceForDeposit(d("1000"), d("0"), d("4"))
	assert.True(t, errors.IsValidationError(err))

	_, err = CadenceForDeposit(d("1000"), d("500"), d("0"))
	assert.True(t, errors.IsValidationError(err))
}

func TestCadenceForDeposit_RejectsOutOfRangeCadence(t *testing.T) {
	days, err := CadenceForDeposit(d("0.000001"), d("1000000000000000"), d("0.0001"))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Zero(t, days)

	// 1 × 365 × 100 / (0.01 × 1) = 3,650,000 days is large but representable.
	days, err = CadenceForDeposit(d("0.01"), d("1"), d("1"))
	require.NoError(t, err)
	assert.Equal(t, 3650000, days)
}

func TestAnnualYield(t *testing.T) {
	assert.True(t, AnnualYield(d("1000000"), d("4")).Equal(d("40000")))
}
