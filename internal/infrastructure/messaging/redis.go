package messaging

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

const DefaultChannel = "perkloop:investment:lifecycle"

// RedisPublisher publishes events on a Redis Pub/Sub channel. Delivery is
// at most once; subscribers that are not connected miss the event.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	logger  logger.Interface
}

func NewRedisPublisher(client redis.UniversalClient, channel string, log logger.Interface) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  log,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event investment.LifecycleEvent) error {
	data, err := encodeEvent(event)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		p.logger.Errorw("failed to publish lifecycle event",
			"type", event.Type,
			"investment_ids", event.InvestmentIDs,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debugw("lifecycle event published to Redis", "type", event.Type, "channel", p.channel)
	return nil
}

// Close is a no-op; the client is owned by the caller.
func (p *RedisPublisher) Close() error { return nil }
