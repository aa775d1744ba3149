package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/application/market"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestMarketSnapshotStore_RoundTrip(t *testing.T) {
	store := NewMarketSnapshotStore(setupTestRedis(t))
	ctx := context.Background()

	missing, err := store.Load(ctx, market.FeedAPY)
	require.NoError(t, err)
	assert.Nil(t, missing)

	fetched := time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC)
	snap := market.Snapshot{
		Value:         decimal.RequireFromString("149.52"),
		FetchedAt:     fetched,
		LastAttemptAt: fetched.Add(30 * time.Minute),
		Stale:         true,
		LastError:     "status 502",
	}
	require.NoError(t, store.Save(ctx, market.FeedExchangeRate, snap))

	loaded, err := store.Load(ctx, market.FeedExchangeRate)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "149.52", loaded.Value.String())
	assert.True(t, loaded.FetchedAt.Equal(fetched))
	assert.True(t, loaded.Stale)
	assert.Equal(t, "status 502", loaded.LastError)
}
