package usecases

import (
	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/market"
)

// MarketReader is the read side of the market rate service.
type MarketReader interface {
	GrossAPY() (decimal.Decimal, error)
	ExchangeRate() (decimal.Decimal, error)
	Snapshot(feed market.Feed) market.Snapshot
}
