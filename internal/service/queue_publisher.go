// Package service publishes domain events to RabbitMQ. Publishing is
// fire-and-forget: errors are logged and returned so callers can ignore
// them without interrupting the request that triggered the event.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/mbruton/festival-manager/internal/queue"
)

// Publisher is what the handlers see; it lets tests capture events without
// a broker.
type Publisher interface {
	ContractSigned(ctx context.Context, ev queue.ContractSignedEvent) error
}

// AMQPPublisher publishes to RabbitMQ, dialing per publish so a broker
// restart between events never leaves it holding a dead connection.
type AMQPPublisher struct {
	URL string
	Log *zap.Logger
}

func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Log: log}
}

// ContractSigned publishes a persistent contract.signed message to the
// durable queue, declaring it first so publish order with the consumer does
// not matter.
func (p *AMQPPublisher) ContractSigned(ctx context.Context, ev queue.ContractSignedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.ContractQueueName, true, false, false, false, nil); err != nil {
		p.Log.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.Log.Warn("rabbitmq marshal event failed", zap.Error(err))
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",                      // default exchange
		queue.ContractQueueName, // routing key = queue name
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		p.Log.Warn("rabbitmq publish failed", zap.Error(err))
		return err
	}
	return nil
}

// NopPublisher drops events; used when no broker URL is configured.
type NopPublisher struct{}

func (NopPublisher) ContractSigned(context.Context, queue.ContractSignedEvent) error { return nil }
