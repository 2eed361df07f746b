package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/boekwinkel/order_service/internal/domain/events"
	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
)

type crmClient interface {
	CreateOrder(ctx context.Context, event events.OrderEvent) (string, error)
}

// OrderForwarder consumes the salesforce.orders queue and forwards each
// order event to the CRM. A forwarding error is returned as-is so the
// worker requeues the message for redelivery.
type OrderForwarder struct {
	log *slog.Logger
	crm crmClient
}

func NewOrderForwarder(log *slog.Logger, crm crmClient) *OrderForwarder {
	return &OrderForwarder{log: log, crm: crm}
}

func (f *OrderForwarder) Handle(ctx context.Context, body []byte) error {
	var event events.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: decode order event: %v", rabbitmq.ErrBadMessage, err)
	}

	id, err := f.crm.CreateOrder(ctx, event)
	if err != nil {
		return fmt.Errorf("forward order %s to crm: %w", event.OrderNumber, err)
	}

	f.log.Info("order forwarded to crm",
		slog.String("order_number", event.OrderNumber),
		slog.String("salesforce_id", id))

	return nil
}
