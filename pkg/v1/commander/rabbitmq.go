package commander

import (
	"context"
	"fmt"
)

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// RabbitMQPublisher is RabbitMQ messages publisher.
type RabbitMQPublisher interface {
	Publish(context.Context, string, []byte) error
}

// RabbitMQSender sends alert commands as RMQ messages to tracker's commands routing key.
type RabbitMQSender struct {
	publisher  RabbitMQPublisher
	routingKey string
}

// NewRabbitMQSender returns new RabbitMQSender publishing commands to routingKey.
func NewRabbitMQSender(publisher RabbitMQPublisher, routingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// Send publishes message to commands routing key.
func (s RabbitMQSender) Send(ctx context.Context, msg []byte) error {
	if err := s.publisher.Publish(ctx, s.routingKey, msg); err != nil {
		return fmt.Errorf("can't publish command to %s: %w", s.routingKey, err)
	}
	return nil
}
