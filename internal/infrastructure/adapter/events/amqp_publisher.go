// Package events delivers ledger change events to a message broker
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

const publishTimeout = 5 * time.Second

// channel is the part of *amqp091.Channel the publisher uses
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPConfig holds the broker settings
type AMQPConfig struct {
	URL           string
	Exchange      string
	RoutingPrefix string // prepended to the event type, "ledger" gives "ledger.transaction.created"
}

// AMQPPublisher publishes ledger events as persistent JSON messages on a direct exchange
type AMQPPublisher struct {
	conn          *amqp091.Connection
	channel       channel
	exchange      string
	routingPrefix string
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
	mu            sync.Mutex // amqp channels are not safe for concurrent publishes
}

var _ coreport.EventPublisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher dials the broker and declares the exchange
func NewAMQPPublisher(cfg AMQPConfig, timeProvider coreport.TimeProvider, logger coreport.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info("Connected to message broker", map[string]any{
		"exchange": cfg.Exchange,
	})

	p := newAMQPPublisher(ch, cfg, timeProvider, logger)
	p.conn = conn
	return p, nil
}

func newAMQPPublisher(ch channel, cfg AMQPConfig, timeProvider coreport.TimeProvider, logger coreport.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		channel:       ch,
		exchange:      cfg.Exchange,
		routingPrefix: cfg.RoutingPrefix,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// RoutingKey returns the routing key an event is published with
func (p *AMQPPublisher) RoutingKey(eventType coreport.EventType) string {
	if p.routingPrefix == "" {
		return string(eventType)
	}
	return p.routingPrefix + "." + string(eventType)
}

// Publish sends one event
func (p *AMQPPublisher) Publish(ctx context.Context, event coreport.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		p.RoutingKey(event.Type),
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    p.timeProvider.Now(),
			Type:         string(event.Type),
			Body:         body,
		},
	)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.Debug("Published ledger event", map[string]any{
		"type":     event.Type,
		"user_id":  event.UserID,
		"exchange": p.exchange,
		"records":  len(event.TransactionIDs),
	})
	return nil
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
