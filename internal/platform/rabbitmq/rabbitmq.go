package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultPrefetch is number of unacknowledged deliveries consumer gets at once.
const DefaultPrefetch = 4

// HandlerFunc is function which handles messages.
type HandlerFunc func(ctx context.Context, message []byte) error

// Option is custom configuration of RabbitMQ.
type Option func(mq *RabbitMQ)

// RabbitMQ consumes and publishes amqp messages.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	prefetch  int
	isRunning chan struct{}
}

// NewRabbitMQ returns new RabbitMQ using new channel of connection.
func NewRabbitMQ(connection *amqp.Connection, exchange string, ops ...Option) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}
	mq := RabbitMQ{
		channel:  channel,
		exchange: exchange,
		prefetch: DefaultPrefetch,
	}

	for _, op := range ops {
		op(&mq)
	}

	if err := channel.Qos(mq.prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("can't set channel prefetch: %w", err)
	}

	return &mq, nil
}

// Declare declares durable topic exchange and queue bound to it with routing keys.
// Declaring existing topology with the same arguments is no-op.
func (mq *RabbitMQ) Declare(queue string, routingKeys ...string) error {
	if err := mq.channel.ExchangeDeclare(mq.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare exchange %s: %w", mq.exchange, err)
	}

	if _, err := mq.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare queue %s: %w", queue, err)
	}

	for _, routingKey := range routingKeys {
		if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
			return fmt.Errorf("can't bind queue %s to %s: %w", queue, routingKey, err)
		}
	}

	return nil
}

// Publish publishes persistent json message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         message,
	}

	return mq.channel.PublishWithContext(
		ctx,
		mq.exchange,
		routingKey,
		false,
		false,
		msg,
	)
}

// Consume consumes messages from queue and passes deliveries to provided handler function.
// It returns channel with errors from handler function and consuming process.
// Messages which handler failed to handle are rejected without requeue.
// Function works asynchronously, it consumes messages in background as long as context is not closed.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.Consume(
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		defer close(consumingErrors)
		mq.consumeMessages(ctx, consumerID.String(), deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	consumerID string,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	// stop deliveries when context is closed, channel is closed by the library afterwards
	stop := context.AfterFunc(ctx, func() {
		_ = mq.channel.Cancel(consumerID, false)
	})
	defer stop()

	for delivery := range deliveries {
		if ctx.Err() != nil {
			// prefetched deliveries go back to the queue
			_ = delivery.Nack(false, true)
			continue
		}

		err := handler(ctx, delivery.Body)
		if err != nil {
			_ = pushError(ctx, fmt.Errorf("message %s: %w", delivery.MessageId, err), consumingErrors)
			if err := mq.nackMessage(ctx, &delivery, consumingErrors); err != nil {
				return
			}
			continue
		}
		if err := mq.ackMessage(ctx, &delivery, consumingErrors); err != nil {
			return
		}
	}
}

func (mq *RabbitMQ) ackMessage(
	ctx context.Context,
	delivery *amqp.Delivery,
	consumingErrors chan error,
) error {
	if err := delivery.Ack(false); err != nil {
		if pushErr := pushError(ctx, fmt.Errorf("can't ack message: %w", err), consumingErrors); pushErr != nil {
			return pushErr
		}
	}
	return nil
}

func (mq *RabbitMQ) nackMessage(
	ctx context.Context,
	delivery *amqp.Delivery,
	consumingErrors chan error,
) error {
	if err := delivery.Nack(false, false); err != nil {
		if pushErr := pushError(ctx, fmt.Errorf("can't nack message: %w", err), consumingErrors); pushErr != nil {
			return pushErr
		}
	}
	return nil
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.isRunning
}

// Close closes RabbitMQ channel.
func (mq *RabbitMQ) Close() error {
	return mq.channel.Close()
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}

// WithPrefetch sets number of unacknowledged deliveries consumer gets at once.
func WithPrefetch(prefetch int) Option {
	return func(mq *RabbitMQ) {
		mq.prefetch = prefetch
	}
}
