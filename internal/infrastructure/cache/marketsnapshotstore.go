package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/perkloop/perkloop/internal/application/market"
)

const (
	marketSnapshotKeyPrefix = "perkloop:market:snapshot:"
	// Snapshots older than this are not worth restoring.
	marketSnapshotTTL = 7 * 24 * time.Hour
)

// MarketSnapshotStore mirrors feed snapshots so a restart does not blank the rates.
type MarketSnapshotStore struct {
	client redis.UniversalClient
}

var _ market.SnapshotStore = (*MarketSnapshotStore)(nil)

func NewMarketSnapshotStore(client redis.UniversalClient) *MarketSnapshotStore {
	return &MarketSnapshotStore{client: client}
}

func (s *MarketSnapshotStore) Save(ctx context.Context, feed market.Feed, snap market.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode market snapshot: %w", err)
	}
	if err := s.client.Set(ctx, marketSnapshotKeyPrefix+string(feed), payload, marketSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save market snapshot: %w", err)
	}
	return nil
}

// Load returns nil, nil when nothing is stored for feed.
func (s *MarketSnapshotStore) Load(ctx context.Context, feed market.Feed) (*market.Snapshot, error) {
	payload, err := s.client.Get(ctx, marketSnapshotKeyPrefix+string(feed)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load market snapshot: %w", err)
	}

	var snap market.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode market snapshot: %w", err)
	}
	return &snap, nil
}
