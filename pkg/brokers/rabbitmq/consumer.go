package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrBadMessage marks a payload that can never be processed (malformed
// body). Handlers wrap decode failures in it so the worker rejects the
// message without requeue instead of retrying it blindly.
var ErrBadMessage = errors.New("malformed message")

// HandlerFunc performs the side effect for one message body.
type HandlerFunc func(ctx context.Context, body []byte) error

// acknowledger is the slice of amqp.Delivery the worker needs to settle a
// message.
type acknowledger interface {
	Body() []byte
	Redelivered() bool
	Ack() error
	Requeue() error
	Discard() error
}

// Worker consumes a single queue with prefetch 1, acknowledging per the
// handler outcome: success acks, a handler error requeues for redelivery,
// and a bad message (or a second consecutive failure of a redelivered
// message) is rejected without requeue so the broker dead-letters it.
type Worker struct {
	log     *slog.Logger
	client  *Client
	queue   string
	handler HandlerFunc
}

func NewWorker(log *slog.Logger, client *Client, queue string, handler HandlerFunc) *Worker {
	return &Worker{
		log:     log.With(slog.String("queue", queue)),
		client:  client,
		queue:   queue,
		handler: handler,
	}
}

// Queue names the queue this worker consumes.
func (w *Worker) Queue() string {
	return w.queue
}

// Run blocks consuming deliveries until ctx is cancelled or the delivery
// channel closes. In degraded mode it returns immediately.
func (w *Worker) Run(ctx context.Context) error {
	const op = "rabbitmq.consumer.Run"

	if w.client.Degraded() {
		w.log.Warn("broker unavailable, consumer disabled")
		return nil
	}

	ch, err := w.client.ConsumerChannel()
	if err != nil {
		return fmt.Errorf("%s: open channel: %w", op, err)
	}
	defer ch.Close()

	// One unacknowledged message in flight per worker: natural
	// backpressure and in-order processing within the queue.
	if err = ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("%s: set qos: %w", op, err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, w.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: consume: %w", op, err)
	}

	w.log.Info("consumer started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info("consumer stopping")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				w.log.Info("delivery channel closed")
				return nil
			}
			w.handle(ctx, amqpDelivery{d: d})
		}
	}
}

func (w *Worker) handle(ctx context.Context, d acknowledger) {
	err := w.handler(ctx, d.Body())

	switch {
	case err == nil:
		if ackErr := d.Ack(); ackErr != nil {
			w.log.Error("failed to ack", slog.String("error", ackErr.Error()))
		}
	case errors.Is(err, ErrBadMessage):
		w.log.Warn("poison message, rejecting without requeue",
			slog.String("error", err.Error()))
		if nackErr := d.Discard(); nackErr != nil {
			w.log.Error("failed to nack", slog.String("error", nackErr.Error()))
		}
	case d.Redelivered():
		// Second failure of the same message: stop retrying and let the
		// dead-letter exchange take it.
		w.log.Error("redelivered message failed again, routing to dead letter",
			slog.String("error", err.Error()))
		if nackErr := d.Discard(); nackErr != nil {
			w.log.Error("failed to nack", slog.String("error", nackErr.Error()))
		}
	default:
		w.log.Warn("processing failed, requeueing for redelivery",
			slog.String("error", err.Error()))
		if nackErr := d.Requeue(); nackErr != nil {
			w.log.Error("failed to nack", slog.String("error", nackErr.Error()))
		}
	}
}

type amqpDelivery struct {
	d amqp.Delivery
}

func (a amqpDelivery) Body() []byte      { return a.d.Body }
func (a amqpDelivery) Redelivered() bool { return a.d.Redelivered }
func (a amqpDelivery) Ack() error        { return a.d.Ack(false) }
func (a amqpDelivery) Requeue() error    { return a.d.Nack(false, true) }
func (a amqpDelivery) Discard() error    { return a.d.Nack(false, false) }
