package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/application/market"
	"github.com/perkloop/perkloop/internal/domain/yield"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

func launchBonus(t *testing.T) yield.FeePolicy {
	p, err := yield.PolicyByVersion(yield.PolicyLaunchBonus)
	require.NoError(t, err)
	return p
}

func tiered(t *testing.T) yield.FeePolicy {
	p, err := yield.PolicyByVersion(yield.PolicyTiered1Plus20)
	require.NoError(t, err)
	return p
}

func TestAPYProvider_Current(t *testing.T) {
	provider := NewAPYProvider(tiered(t), marketWithAPY("6"))

	q, err := provider.Current()
	require.NoError(t, err)
	assert.True(t, q.Gross.Equal(d("6")))
	assert.True(t, q.Fee.Equal(d("2")))
	assert.True(t, q.User.Equal(d("4")))
}

func TestAPYProvider_ZeroNetIsUnavailable(t *testing.T) {
	provider := NewAPYProvider(tiered(t), marketWithAPY("0.8"))

	_, err := provider.UserAPY()
	assert.True(t, errors.IsUpstreamUnavailableError(err))
}

func TestQuoteDepositUseCase_Product(t *testing.T) {
	uc := NewQuoteDepositUseCase(testCatalog(), NewAPYProvider(launchBonus(t), marketWithAPY("4")), "JPY", logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), QuoteDepositQuery{ProductID: "yogurt", CadenceDays: 1})
	require.NoError(t, err)

	assert.Equal(t, "Yogurt", result.ProductName)
	assert.True(t, result.DepositAmount.Equal(d("1642500")))
	assert.True(t, result.DisplayDeposit.Equal(d("1642500")))
	assert.Equal(t, "JPY", result.Currency)
	assert.True(t, result.AnnualYield.Equal(d("65700")))
}

func TestQuoteDepositUseCase_DisplayRoundsUp(t *testing.T) {
	uc := NewQuoteDepositUseCase(testCatalog(), NewAPYProvider(launchBonus(t), marketWithAPY("4")), "JPY", logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), QuoteDepositQuery{Price: d("500"), CadenceDays: 7})
	require.NoError(t, err)

	assert.Equal(t, "651785.71", result.DepositAmount.StringFixed(2))
	assert.True(t, result.DisplayDeposit.Equal(d("651786")))
	assert.Empty(t, result.ProductID)
}

func TestQuoteDepositUseCase_Errors(t *testing.T) {
	tests := []struct {
		name   string
		market *mockMarket
		query  QuoteDepositQuery
		check  func(error) bool
	}{
		{"unknown product", marketWithAPY("4"), QuoteDepositQuery{ProductID: "caviar", CadenceDays: 7}, errors.IsNotFoundError},
		{"no product and no price", marketWithAPY("4"), QuoteDepositQuery{CadenceDays: 7}, errors.IsValidationError},
		{"negative price", marketWithAPY("4"), QuoteDepositQuery{Price: d("-5"), CadenceDays: 7}, errors.IsValidationError},
		{"zero cadence", marketWithAPY("4"), QuoteDepositQuery{ProductID: "beer"}, errors.IsValidationError},
		{"feed never fetched", &mockMarket{}, QuoteDepositQuery{ProductID: "beer", CadenceDays: 7}, errors.IsUpstreamUnavailableError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewQuoteDepositUseCase(testCatalog(), NewAPYProvider(launchBonus(t), tt.market), "JPY", logger.NewNopLogger())
			_, err := uc.Execute(context.Background(), tt.query)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestQuoteCadenceUseCase(t *testing.T) {
	uc := NewQuoteCadenceUseCase(testCatalog(), NewAPYProvider(launchBonus(t), marketWithAPY("4")))

	result, err := uc.Execute(context.Background(), QuoteCadenceQuery{Price: d("500"), Deposit: d("651786")})
	require.NoError(t, err)
	assert.Equal(t, 7, result.CadenceDays)

	_, err = uc.Execute(context.Background(), QuoteCadenceQuery{ProductID: "beer", Deposit: decimal.Zero})
	assert.True(t, errors.IsValidationError(err))
}

func TestGetRatesUseCase(t *testing.T) {
	fetched := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	m := marketWithAPY("6")
	m.ExchangeRateFunc = func() (decimal.Decimal, error) { return d("149.5"), nil }
	m.SnapshotFunc = func(feed market.Feed) market.Snapshot {
		if feed == market.FeedAPY {
			return market.Snapshot{Value: d("6"), FetchedAt: fetched}
		}
		return market.Snapshot{Value: d("149.5"), FetchedAt: fetched, Stale: true, LastError: "timeout"}
	}

	uc := NewGetRatesUseCase(NewAPYProvider(tiered(t), m), m, logger.NewNopLogger())
	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.UserAPY)
	assert.True(t, result.UserAPY.Equal(d("4")))
	assert.Equal(t, yield.PolicyTiered1Plus20, result.FeePolicyVersion)
	require.NotNil(t, result.USDJPY)
	assert.False(t, result.APYFeed.Stale)
	assert.True(t, result.ExchangeRateFeed.Stale)
	assert.Equal(t, "timeout", result.ExchangeRateFeed.LastError)
}

func TestGetRatesUseCase_NoValuesYet(t *testing.T) {
	m := &mockMarket{}
	uc := NewGetRatesUseCase(NewAPYProvider(tiered(t), m), m, logger.NewNopLogger())

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result.GrossAPY)
	assert.Nil(t, result.USDJPY)
	assert.True(t, result.APYFeed.Stale)
}

func TestListProductsUseCase(t *testing.T) {
	uc := NewListProductsUseCase(testCatalog())
	products, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "¥180", products[0].FormattedPrice)
}
