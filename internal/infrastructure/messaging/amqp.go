package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

const (
	DefaultExchange = "perkloop.investments"

	dialAttempts   = 5
	dialRetryDelay = 3 * time.Second
)

// AMQPPublisher publishes to a durable topic exchange. The routing key is
// the event type, so consumers can bind to "investment.*".
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
	logger   logger.Interface

	// amqp channels are not safe for concurrent use.
	mu      sync.Mutex
	channel *amqp.Channel
}

func NewAMQPPublisher(url, exchange string, log logger.Interface) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := dialWithRetry(url, dialAttempts, dialRetryDelay, log)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	log.Infow("amqp publisher ready", "exchange", exchange)
	return &AMQPPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   log,
	}, nil
}

func dialWithRetry(url string, attempts int, delay time.Duration, log logger.Interface) (*amqp.Connection, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if i < attempts-1 {
			log.Warnw("failed to connect to amqp broker, retrying",
				"attempt", i+1,
				"max_attempts", attempts,
				"retry_in", delay.String(),
				"error", err,
			)
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("failed to connect to amqp broker after %d attempts: %w", attempts, lastErr)
}

func (p *AMQPPublisher) Publish(ctx context.Context, event investment.LifecycleEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		msg,
	)
	p.mu.Unlock()

	if err != nil {
		p.logger.Errorw("failed to publish lifecycle event",
			"type", event.Type,
			"investment_ids", event.InvestmentIDs,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debugw("lifecycle event published", "type", event.Type, "exchange", p.exchange)
	return nil
}

func newPublishing(event investment.LifecycleEvent) (amqp.Publishing, error) {
	body, err := encodeEvent(event)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
