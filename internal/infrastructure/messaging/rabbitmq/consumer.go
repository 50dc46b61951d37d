package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/fidc/receivables-core/internal/application/dto"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName   = "receivables.exchange"
	boletoQueue    = "receivables.boleto_batch"
	remittanceQueue = "receivables.remittance"
)

// consumer implements dto.Consumer over a RabbitMQ channel.
type consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewConsumer dials RabbitMQ and declares the exchange plus both queues
// the worker drains: boleto batch rendering and remittance persistence.
func NewConsumer(url string) (dto.Consumer, error) {
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

	return &consumer{conn: conn, channel: channel}, nil
}

func declareTopology(channel *amqp.Channel) error {
	if err := channel.ExchangeDeclare(exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	for _, q := range []string{boletoQueue, remittanceQueue} {
		if _, err := channel.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", q, err)
		}
		if err := channel.QueueBind(q, q, exchangeName, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", q, err)
		}
	}
	return nil
}

// ConsumeBoletoBatch drains the boleto-batch-rendering queue.
func (c *consumer) ConsumeBoletoBatch(ctx context.Context, handler func(context.Context, dto.BoletoBatchRequested) error) error {
	return consumeLoop(ctx, c.channel, boletoQueue, handler)
}

// ConsumeRemittance drains the remittance-persistence queue.
func (c *consumer) ConsumeRemittance(ctx context.Context, handler func(context.Context, dto.RemittanceRequested) error) error {
	return consumeLoop(ctx, c.channel, remittanceQueue, handler)
}

func consumeLoop[T any](ctx context.Context, channel *amqp.Channel, queue string, handler func(context.Context, T) error) error {
	msgs, err := channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed for %s", queue)
			}

			var msg T
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				log.Printf("failed to unmarshal message from %s: %v", queue, err)
				d.Nack(false, false)
				continue
			}

			if err := handler(ctx, msg); err != nil {
				log.Printf("handler error for message on %s: %v", queue, err)
				d.Nack(false, true)
				continue
			}

			if err := d.Ack(false); err != nil {
				log.Printf("failed to acknowledge message on %s: %v", queue, err)
			}
		}
	}
}

// Close tears down the channel and connection.
func (c *consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
