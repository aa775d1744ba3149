// Package market keeps the last-known-good values of the external rate feeds.
package market

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Feed names one external rate source.
type Feed string

const (
	// FeedExchangeRate is the USD→JPY rate.
	FeedExchangeRate Feed = "usd_jpy"
	// FeedAPY is the gross supply APY of the stablecoin pool, in percent.
	FeedAPY Feed = "gross_apy"
)

// RateFetcher reads one value from an upstream feed.
type RateFetcher interface {
	Fetch(ctx context.Context) (decimal.Decimal, error)
	Name() string
}

// SnapshotStore persists snapshots across restarts.
// Load returns nil, nil when nothing has been saved for the feed.
type SnapshotStore interface {
	Save(ctx context.Context, feed Feed, s Snapshot) error
	Load(ctx context.Context, feed Feed) (*Snapshot, error)
}

// RefreshObserver is told about every refresh attempt.
type RefreshObserver interface {
	ObserveRefresh(feed string, ok bool, value float64)
}

// Snapshot is the last-known-good value of a feed and the outcome of the
// most recent refresh attempt.
type Snapshot struct {
	Value         decimal.Decimal `json:"value"`
	FetchedAt     time.Time       `json:"fetched_at"`
	LastAttemptAt time.Time       `json:"last_attempt_at"`
	Stale         bool            `json:"stale"`
	LastError     string          `json:"last_error,omitempty"`
}

// HasValue reports whether the feed has ever produced a value.
func (s Snapshot) HasValue() bool {
	return !s.FetchedAt.IsZero()
}
