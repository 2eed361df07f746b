package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/boekwinkel/order_service/internal/domain/events"
)

type Priority uint8

const (
	PriorityLow    Priority = 1
	PriorityNormal Priority = 5
	PriorityHigh   Priority = 10
)

const (
	envelopeVersion = "1.0"
	sourceTag       = "boekwinkel.order_service"
)

// Publisher serializes events and transmits them with full envelope
// metadata. In degraded mode every publish returns nil without
// transmitting: delivery is best-effort once the broker is gone, and
// callers must not treat that as a hard failure.
type Publisher struct {
	log    *slog.Logger
	client *Client
}

func NewPublisher(log *slog.Logger, client *Client) *Publisher {
	return &Publisher{log: log, client: client}
}

// PublishToExchange publishes event to exchange under routingKey. A
// transmit error while connected is logged and returned; the caller
// decides whether it is critical.
func (p *Publisher) PublishToExchange(ctx context.Context, exchange, routingKey string, event any, priority Priority) error {
	const op = "rabbitmq.publisher.PublishToExchange"

	if p.client.Degraded() {
		p.log.Debug("broker degraded, dropping publish",
			slog.String("exchange", exchange),
			slog.String("routing_key", routingKey))
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: marshal event: %w", op, err)
	}

	now := time.Now().UTC()
	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     now,
		MessageId:     uuid.NewString(),
		CorrelationId: uuid.NewString(),
		Priority:      uint8(priority),
		Headers: amqp.Table{
			"published-at": now.Format(time.RFC3339),
			"version":      envelopeVersion,
			"source":       sourceTag,
		},
		Body: body,
	}

	p.client.mu.Lock()
	err = p.client.ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg)
	p.client.mu.Unlock()

	if err != nil {
		p.log.Error("failed to publish",
			slog.String("exchange", exchange),
			slog.String("routing_key", routingKey),
			slog.String("error", err.Error()))
		return fmt.Errorf("%s: publish to %q/%q: %w", op, exchange, routingKey, err)
	}

	p.log.Info("published",
		slog.String("exchange", exchange),
		slog.String("routing_key", routingKey),
		slog.Int("priority", int(priority)))

	return nil
}

// PublishToQueue publishes directly to a named queue via the default
// exchange (the legacy/simple path).
func (p *Publisher) PublishToQueue(ctx context.Context, queue string, event any) error {
	return p.PublishToExchange(ctx, "", queue, event, PriorityNormal)
}

// PublishOrderEvent routes an order event on the orders topic exchange.
// Freshly created orders are published with high priority.
func (p *Publisher) PublishOrderEvent(ctx context.Context, action events.Action, event events.OrderEvent) error {
	priority := PriorityNormal
	if action == events.ActionCreated {
		priority = PriorityHigh
	}

	return p.PublishToExchange(ctx, OrderExchange, orderRoutingKey(action), event, priority)
}

// PublishEntityEvent routes an entity change on the entities topic
// exchange.
func (p *Publisher) PublishEntityEvent(ctx context.Context, event events.EntityChangeEvent) error {
	return p.PublishToExchange(ctx, EntityExchange, entityRoutingKey(event.EntityType, event.Action), event, PriorityNormal)
}

func orderRoutingKey(action events.Action) string {
	return "order." + strings.ToLower(string(action))
}

func entityRoutingKey(kind events.EntityType, action events.Action) string {
	return fmt.Sprintf("entity.%s.%s", strings.ToLower(string(kind)), strings.ToLower(string(action)))
}
