// Package messaging fans investment lifecycle events out to other systems.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	adminUsecases "github.com/perkloop/perkloop/internal/application/admin/usecases"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

const (
	DriverAMQP  = "amqp"
	DriverRedis = "redis"
)

var (
	_ adminUsecases.EventPublisher = (*NoopPublisher)(nil)
	_ adminUsecases.EventPublisher = (*InstrumentedPublisher)(nil)
)

// Publisher is an EventPublisher that holds a connection.
type Publisher interface {
	adminUsecases.EventPublisher
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct {
	logger logger.Interface
}

func NewNoopPublisher(log logger.Interface) *NoopPublisher {
	return &NoopPublisher{logger: log}
}

func (p *NoopPublisher) Publish(_ context.Context, event investment.LifecycleEvent) error {
	p.logger.Debugw("lifecycle event dropped, messaging disabled", "type", event.Type)
	return nil
}

func (p *NoopPublisher) Close() error { return nil }

// EventObserver is told the outcome of every publish.
type EventObserver interface {
	ObserveLifecycleEvent(eventType string, ok bool)
}

// InstrumentedPublisher reports publish outcomes to an observer.
type InstrumentedPublisher struct {
	next     Publisher
	observer EventObserver
}

func NewInstrumentedPublisher(next Publisher, observer EventObserver) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, observer: observer}
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, event investment.LifecycleEvent) error {
	err := p.next.Publish(ctx, event)
	p.observer.ObserveLifecycleEvent(string(event.Type), err == nil)
	return err
}

func (p *InstrumentedPublisher) Close() error {
	return p.next.Close()
}

// NewPublisher builds the publisher selected by configuration. A disabled
// section yields a NoopPublisher. The redis driver needs a client.
func NewPublisher(cfg config.MessagingConfig, redisClient redis.UniversalClient, log logger.Interface) (Publisher, error) {
	if !cfg.Enabled {
		return NewNoopPublisher(log), nil
	}

	switch strings.ToLower(cfg.Driver) {
	case "", DriverAMQP:
		return NewAMQPPublisher(cfg.URL, cfg.Exchange, log)
	case DriverRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("messaging driver %q requires redis to be enabled", DriverRedis)
		}
		return NewRedisPublisher(redisClient, cfg.Channel, log), nil
	default:
		return nil, fmt.Errorf("unsupported messaging driver: %s", cfg.Driver)
	}
}

func encodeEvent(event investment.LifecycleEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}
