package salesforce

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/boekwinkel/order_service/internal/domain/events"
)

// FailureMarker is stored on the order when the CRM leg fails; the caller
// never sees an error from the fan-out, only this sentinel.
const FailureMarker = "ERROR"

const requestLatency = 300 * time.Millisecond

// Client simulates the Salesforce CRM collaborator: it accepts an order
// event and returns the opaque identifier the remote system assigned.
type Client struct {
	log *slog.Logger
}

func NewClient(log *slog.Logger) *Client {
	return &Client{log: log}
}

func (c *Client) CreateOrder(ctx context.Context, event events.OrderEvent) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(requestLatency):
	}

	id := externalID()

	c.log.Info("order created in salesforce",
		slog.String("order_number", event.OrderNumber),
		slog.String("salesforce_id", id))

	return id, nil
}

func externalID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("SF%s", strings.ToUpper(raw[:8]))
}
