package usecases

import (
	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/market"
	"github.com/perkloop/perkloop/internal/domain/catalog"
	"github.com/perkloop/perkloop/internal/shared/errors"
)

type mockMarket struct {
	GrossAPYFunc     func() (decimal.Decimal, error)
	ExchangeRateFunc func() (decimal.Decimal, error)
	SnapshotFunc     func(feed market.Feed) market.Snapshot
}

func (m *mockMarket) GrossAPY() (decimal.Decimal, error) {
	if m.GrossAPYFunc != nil {
		return m.GrossAPYFunc()
	}
	return decimal.Zero, errors.NewUpstreamUnavailableError("gross_apy is unavailable")
}

func (m *mockMarket) ExchangeRate() (decimal.Decimal, error) {
	if m.ExchangeRateFunc != nil {
		return m.ExchangeRateFunc()
	}
	return decimal.Zero, errors.NewUpstreamUnavailableError("usd_jpy is unavailable")
}

func (m *mockMarket) Snapshot(feed market.Feed) market.Snapshot {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(feed)
	}
	return market.Snapshot{}
}

func marketWithAPY(gross string) *mockMarket {
	return &mockMarket{
		GrossAPYFunc: func() (decimal.Decimal, error) {
			return decimal.RequireFromString(gross), nil
		},
	}
}

type staticCatalog []catalog.Product

func (c staticCatalog) List() []catalog.Product {
	return c
}

func (c staticCatalog) Get(id string) (catalog.Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func testCatalog() staticCatalog {
	return staticCatalog{
		{ID: "yogurt", Name: "Yogurt", Icon: "🥛", Price: decimal.NewFromInt(180), Currency: "JPY"},
		{ID: "beer", Name: "Beer", Icon: "🍺", Price: decimal.NewFromInt(1280), Currency: "JPY"},
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
