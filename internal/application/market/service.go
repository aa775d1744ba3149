package market

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// Service polls the rate feeds and serves their last-known-good values.
// A failed refresh keeps the previous value and marks it stale.
type Service struct {
	fetchers map[Feed]RateFetcher
	store    SnapshotStore
	observer RefreshObserver
	maxAge   time.Duration
	logger   logger.Interface
	clock    func() time.Time

	mu        sync.RWMutex
	snapshots map[Feed]Snapshot
}

// NewService creates a Service. store and observer may be nil. A value older
// than maxAge is reported stale even if the last refresh succeeded.
func NewService(
	exchangeRate RateFetcher,
	apy RateFetcher,
	store SnapshotStore,
	observer RefreshObserver,
	maxAge time.Duration,
	log logger.Interface,
) *Service {
	return &Service{
		fetchers: map[Feed]RateFetcher{
			FeedExchangeRate: exchangeRate,
			FeedAPY:          apy,
		},
		store:     store,
		observer:  observer,
		maxAge:    maxAge,
		logger:    log,
		clock:     biztime.NowUTC,
		snapshots: make(map[Feed]Snapshot, 2),
	}
}

// Restore loads persisted snapshots so a restart does not blank the rates.
// Errors are logged; a missing snapshot is not an error.
func (s *Service) Restore(ctx context.Context) {
	if s.store == nil {
		return
	}
	for feed := range s.fetchers {
		snap, err := s.store.Load(ctx, feed)
		if err != nil {
			s.logger.Warnw("failed to restore rate snapshot", "feed", feed, "error", err)
			continue
		}
		if snap == nil || !snap.HasValue() {
			continue
		}
		s.mu.Lock()
		if current, ok := s.snapshots[feed]; !ok || current.FetchedAt.Before(snap.FetchedAt) {
			s.snapshots[feed] = *snap
		}
		s.mu.Unlock()
		s.logger.Infow("restored rate snapshot", "feed", feed, "value", snap.Value.String(), "fetched_at", snap.FetchedAt)
	}
}

// RefreshExchangeRate polls the USD→JPY feed.
func (s *Service) RefreshExchangeRate(ctx context.Context) error {
	return s.Refresh(ctx, FeedExchangeRate)
}

// RefreshAPY polls the pool APY feed.
func (s *Service) RefreshAPY(ctx context.Context) error {
	return s.Refresh(ctx, FeedAPY)
}

// Refresh fetches one feed. On failure the previous value is kept, the
// snapshot is flagged stale and an UpstreamUnavailable error is returned.
func (s *Service) Refresh(ctx context.Context, feed Feed) error {
	fetcher, ok := s.fetchers[feed]
	if !ok || fetcher == nil {
		return errors.NewInternalError("unknown rate feed", string(feed))
	}

	now := s.clock()
	value, fetchErr := fetcher.Fetch(ctx)
	if fetchErr == nil && !value.IsPositive() {
		fetchErr = errors.NewUpstreamUnavailableError("feed returned a non-positive value", value.String())
	}

	s.mu.Lock()
	snap := s.snapshots[feed]
	snap.LastAttemptAt = now
	if fetchErr != nil {
		snap.Stale = true
		snap.LastError = fetchErr.Error()
	} else {
		snap.Value = value
		snap.FetchedAt = now
		snap.Stale = false
		snap.LastError = ""
	}
	s.snapshots[feed] = snap
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.ObserveRefresh(string(feed), fetchErr == nil, snap.Value.InexactFloat64())
	}

	if fetchErr != nil {
		s.logger.Warnw("rate refresh failed, keeping last known value",
			"feed", feed,
			"source", fetcher.Name(),
			"error", fetchErr,
			"last_value", snap.Value.String(),
			"has_value", snap.HasValue(),
		)
	} else {
		s.logger.Debugw("rate refreshed", "feed", feed, "source", fetcher.Name(), "value", value.String())
	}

	if s.store != nil {
		if err := s.store.Save(ctx, feed, snap); err != nil {
			s.logger.Warnw("failed to persist rate snapshot", "feed", feed, "error", err)
		}
	}

	if fetchErr != nil {
		return errors.NewUpstreamUnavailableError("failed to refresh "+string(feed), fetchErr.Error())
	}
	return nil
}

// Snapshot returns the current view of a feed with staleness evaluated now.
func (s *Service) Snapshot(feed Feed) Snapshot {
	s.mu.RLock()
	snap := s.snapshots[feed]
	s.mu.RUnlock()

	if snap.HasValue() && s.maxAge > 0 && s.clock().Sub(snap.FetchedAt) > s.maxAge {
		snap.Stale = true
	}
	return snap
}

// ExchangeRate returns the last known USD→JPY rate.
func (s *Service) ExchangeRate() (decimal.Decimal, error) {
	return s.value(FeedExchangeRate)
}

// GrossAPY returns the last known pool APY in percent.
func (s *Service) GrossAPY() (decimal.Decimal, error) {
	return s.value(FeedAPY)
}

func (s *Service) value(feed Feed) (decimal.Decimal, error) {
	snap := s.Snapshot(feed)
	if !snap.HasValue() {
		details := "no value has been fetched yet"
		if snap.LastError != "" {
			details = snap.LastError
		}
		return decimal.Zero, errors.NewUpstreamUnavailableError(string(feed)+" is unavailable", details)
	}
	return snap.Value, nil
}
