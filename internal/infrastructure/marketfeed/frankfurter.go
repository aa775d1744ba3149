package marketfeed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/market"
	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

const DefaultExchangeRateURL = "https://api.frankfurter.app/latest?from=USD&to=JPY"

var (
	minUSDJPY = decimal.NewFromInt(50)
	maxUSDJPY = decimal.NewFromInt(500)
)

type frankfurterResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// ExchangeRateFetcher reads USD→JPY from the Frankfurter API.
type ExchangeRateFetcher struct {
	feed *jsonFeed
}

var _ market.RateFetcher = (*ExchangeRateFetcher)(nil)

func NewExchangeRateFetcher(cfg config.FeedConfig, breaker BreakerSettings, log logger.Interface) *ExchangeRateFetcher {
	if cfg.URL == "" {
		cfg.URL = DefaultExchangeRateURL
	}
	return &ExchangeRateFetcher{feed: newJSONFeed("frankfurter", cfg, breaker, log)}
}

func (f *ExchangeRateFetcher) Name() string {
	return f.feed.name
}

func (f *ExchangeRateFetcher) Fetch(ctx context.Context) (decimal.Decimal, error) {
	return f.feed.fetch(ctx, parseFrankfurter)
}

func parseFrankfurter(body []byte) (decimal.Decimal, error) {
	var data frankfurterResponse
	if err := decodeJSON(body, &data); err != nil {
		return decimal.Zero, err
	}
	rate, ok := data.Rates["JPY"]
	if !ok {
		return decimal.Zero, fmt.Errorf("response has no JPY rate")
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid rate from API: %s", rate)
	}
	if err := checkRange("usd_jpy", rate, minUSDJPY, maxUSDJPY); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}
