// Package events publishes notifications about committed ledger changes.
package events

import (
	"context"
	"fmt"
	"go-budget-api/config"
	"go-budget-api/model"
)

// Publisher delivers domain events to an external broker.
type Publisher interface {
	PublishTransactionPosted(ctx context.Context, event model.TransactionPostedEvent) error
	Close() error
}

// NewPublisher builds the publisher selected by events.driver.
func NewPublisher(cfg config.Config) (Publisher, error) {
	switch cfg.Events.Driver {
	case "":
		return NoopPublisher{}, nil
	case "kafka":
		return NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic), nil
	case "amqp":
		return NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.Topic)
	default:
		return nil, fmt.Errorf("unsupported events driver %q", cfg.Events.Driver)
	}
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransactionPosted(context.Context, model.TransactionPostedEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
