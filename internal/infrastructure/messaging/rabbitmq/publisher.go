package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fidc/receivables-core/internal/application/dto"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publisher implements dto.Publisher over a RabbitMQ channel.
type publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher dials RabbitMQ and declares the same topology the
// consumer expects.
func NewPublisher(url string) (dto.Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &publisher{conn: conn, channel: channel}, nil
}

func (p *publisher) publish(ctx context.Context, queue string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message for %s: %w", queue, err)
	}

	err = p.channel.PublishWithContext(ctx,
		exchangeName,
		queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message to %s: %w", queue, err)
	}
	return nil
}

// PublishBoletoBatch enqueues a boleto batch for asynchronous rendering.
func (p *publisher) PublishBoletoBatch(ctx context.Context, msg dto.BoletoBatchRequested) error {
	return p.publish(ctx, boletoQueue, msg)
}

// PublishRemittance enqueues a generated remittance file for storage.
func (p *publisher) PublishRemittance(ctx context.Context, msg dto.RemittanceRequested) error {
	return p.publish(ctx, remittanceQueue, msg)
}

// Close tears down the channel and connection.
func (p *publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
