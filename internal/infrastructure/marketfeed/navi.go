package marketfeed

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/market"
	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

const (
	DefaultAPYURL    = "https://open-api.naviprotocol.io/api/navi/pools"
	DefaultAPYSymbol = "USDC"
)

var maxAPY = decimal.NewFromInt(100)

// naviPool is one lending pool. supplyApy is a percentage and arrives
// either as a number or as a string.
type naviPool struct {
	Symbol    string          `json:"symbol"`
	SupplyAPY decimal.Decimal `json:"supplyApy"`
}

type naviEnvelope struct {
	Data []naviPool `json:"data"`
}

// APYFetcher reads the supply APY of one pool from the NAVI pools API.
type APYFetcher struct {
	feed   *jsonFeed
	symbol string
}

var _ market.RateFetcher = (*APYFetcher)(nil)

func NewAPYFetcher(cfg config.FeedConfig, breaker BreakerSettings, log logger.Interface) *APYFetcher {
	if cfg.URL == "" {
		cfg.URL = DefaultAPYURL
	}
	symbol := cfg.Symbol
	if symbol == "" {
		symbol = DefaultAPYSymbol
	}
	return &APYFetcher{
		feed:   newJSONFeed("navi", cfg, breaker, log),
		symbol: symbol,
	}
}

func (f *APYFetcher) Name() string {
	return f.feed.name
}

func (f *APYFetcher) Fetch(ctx context.Context) (decimal.Decimal, error) {
	return f.feed.fetch(ctx, func(body []byte) (decimal.Decimal, error) {
		return parseNaviPools(body, f.symbol)
	})
}

func parseNaviPools(body []byte, symbol string) (decimal.Decimal, error) {
	var pools []naviPool
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope naviEnvelope
		if err := decodeJSON(trimmed, &envelope); err != nil {
			return decimal.Zero, err
		}
		pools = envelope.Data
	} else if err := decodeJSON(body, &pools); err != nil {
		return decimal.Zero, err
	}

	for _, pool := range pools {
		if !strings.EqualFold(pool.Symbol, symbol) {
			continue
		}
		if err := checkRange("supply_apy", pool.SupplyAPY, decimal.Zero, maxAPY); err != nil {
			return decimal.Zero, err
		}
		return pool.SupplyAPY, nil
	}
	return decimal.Zero, fmt.Errorf("%s pool not found", symbol)
}
