package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQPSink publishes events as persistent JSON messages on a durable direct exchange.
type AMQPSink struct {
	conn         *amqp091.Connection
	channel      publisher
	exchangeName string
	routingKey   string
}

// NewAMQPSink dials url and declares the exchange, queue and binding.
func NewAMQPSink(url, exchangeName, queueName string) (*AMQPSink, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declare(channel, exchangeName, queueName); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPSink{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		routingKey:   queueName,
	}, nil
}

func declare(channel *amqp091.Channel, exchangeName, queueName string) error {
	if err := channel.ExchangeDeclare(exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	// routing key is the queue name
	if err := channel.QueueBind(queueName, queueName, exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (s *AMQPSink) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = s.channel.PublishWithContext(ctx, s.exchangeName, s.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.At,
		Type:         string(event.Kind),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}
	return nil
}

func (s *AMQPSink) Close() error {
	if closer, ok := s.channel.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
