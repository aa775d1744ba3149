// Package marketfeed reads the USD/JPY rate and the stablecoin pool APY
// from their public HTTP feeds.
package marketfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils/logutil"
)

const (
	defaultTimeout         = 10 * time.Second
	defaultBreakerFailures = 5
	defaultBreakerOpen     = 2 * time.Minute
	// Maximum response body size accepted from a feed (1MB)
	maxFeedResponseSize = 1 << 20
	maxLoggedBody       = 256
)

// BreakerSettings controls when a feed stops being called after repeated failures.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	// OnStateChange, when set, is told the new state of a feed's breaker.
	OnStateChange func(feed string, state string)
}

// BreakerSettingsFrom reads the breaker knobs from config, filling defaults.
func BreakerSettingsFrom(cfg config.FeedsConfig) BreakerSettings {
	s := BreakerSettings{
		ConsecutiveFailures: defaultBreakerFailures,
		OpenTimeout:         defaultBreakerOpen,
	}
	if cfg.BreakerFailures > 0 {
		s.ConsecutiveFailures = uint32(cfg.BreakerFailures)
	}
	if cfg.BreakerOpenSeconds > 0 {
		s.OpenTimeout = time.Duration(cfg.BreakerOpenSeconds) * time.Second
	}
	return s
}

// jsonFeed performs GET requests through a circuit breaker and hands the
// decoded value to a parser.
type jsonFeed struct {
	name       string
	url        string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[decimal.Decimal]
	logger     logger.Interface
}

func newJSONFeed(name string, cfg config.FeedConfig, breaker BreakerSettings, log logger.Interface) *jsonFeed {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	feedLog := log.With("feed", name)

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breaker.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			feedLog.Warnw("feed circuit breaker state changed", "from", from.String(), "to", to.String())
			if breaker.OnStateChange != nil {
				breaker.OnStateChange(name, to.String())
			}
		},
	}

	return &jsonFeed{
		name:       name,
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker[decimal.Decimal](settings),
		logger:     feedLog,
	}
}

// fetch calls the feed and runs parse on the response body. An open breaker
// fails immediately with gobreaker.ErrOpenState.
func (f *jsonFeed) fetch(ctx context.Context, parse func(body []byte) (decimal.Decimal, error)) (decimal.Decimal, error) {
	return f.breaker.Execute(func() (decimal.Decimal, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to call %s: %w", f.name, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return decimal.Zero, fmt.Errorf("%s returned status %d", f.name, resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedResponseSize))
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to read %s response: %w", f.name, err)
		}

		value, err := parse(body)
		if err != nil {
			f.logger.Warnw("unparseable feed response",
				"error", err,
				"body", logutil.TruncateForLog(string(body), maxLoggedBody))
			return decimal.Zero, err
		}
		f.logger.Debugw("fetched feed value", "value", value.String())
		return value, nil
	})
}

func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func checkRange(name string, value, min, max decimal.Decimal) error {
	if value.LessThan(min) || value.GreaterThan(max) {
		return fmt.Errorf("%s value %s outside reasonable range [%s, %s]", name, value, min, max)
	}
	return nil
}
