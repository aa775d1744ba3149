package profile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

var now = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile("user-1", "  Hanako@Example.COM ", now)
	require.NoError(t, err)

	assert.Equal(t, "hanako@example.com", p.Email())
	assert.True(t, p.Balances().JPYDeposit.IsZero())
	assert.False(t, p.BankAccount().IsComplete())

	_, err = NewProfile("", "x@y.z", now)
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateBankAccount(t *testing.T) {
	p, err := NewProfile("user-1", "a@b.c", now)
	require.NoError(t, err)

	err = p.UpdateBankAccount(BankAccount{
		HolderName:    " YAMADA HANAKO ",
		BankName:      "Mizuho",
		Branch:        "Shibuya",
		AccountNumber: "1234567",
		AccountType:   "futsu",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "YAMADA HANAKO", p.BankAccount().HolderName)
	assert.True(t, p.BankAccount().IsComplete())

	err = p.UpdateBankAccount(BankAccount{AccountNumber: "12ab"}, now)
	assert.True(t, errors.IsValidationError(err))
}

func TestSetBalancesAndDivergence(t *testing.T) {
	p, err := NewProfile("user-1", "a@b.c", now)
	require.NoError(t, err)

	err = p.SetBalances(Balances{JPYDeposit: decimal.NewFromInt(-1)}, now)
	assert.True(t, errors.IsValidationError(err))

	require.NoError(t, p.SetBalances(Balances{
		WithdrawalPrincipalUSD: decimal.NewFromInt(3000),
		JPYDeposit:             decimal.NewFromInt(500000),
		TotalReturnsUSD:        decimal.NewFromInt(12),
	}, now))

	div := p.CompareWithInvestments(decimal.NewFromInt(450000))
	assert.True(t, div.HasDrift())
	assert.True(t, div.DifferenceJPY.Equal(decimal.NewFromInt(50000)))

	assert.False(t, p.CompareWithInvestments(decimal.NewFromInt(500000)).HasDrift())
}
