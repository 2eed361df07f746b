package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boekwinkel/order_service/internal/domain/events"
	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type stubCRM struct {
	lastEvent events.OrderEvent
	err       error
}

func (s *stubCRM) CreateOrder(ctx context.Context, event events.OrderEvent) (string, error) {
	s.lastEvent = event
	return "SF1A2B3C4D", s.err
}

func TestOrderForwarder_Forwards(t *testing.T) {
	crm := &stubCRM{}
	f := NewOrderForwarder(testLogger(), crm)

	body, err := json.Marshal(events.OrderEvent{
		OrderNumber:   "ORD20240315093000",
		CustomerName:  "Jan Jansen",
		CustomerEmail: "jan@example.com",
		OrderDate:     time.Now(),
		TotalAmount:   49.99,
		Items:         []events.OrderItem{{BookTitle: "C# in Depth", Quantity: 1, UnitPrice: 49.99}},
	})
	require.NoError(t, err)

	require.NoError(t, f.Handle(context.Background(), body))
	require.Equal(t, "ORD20240315093000", crm.lastEvent.OrderNumber)
}

func TestOrderForwarder_MalformedBodyIsBadMessage(t *testing.T) {
	f := NewOrderForwarder(testLogger(), &stubCRM{})

	err := f.Handle(context.Background(), []byte(`not json`))

	require.ErrorIs(t, err, rabbitmq.ErrBadMessage)
}

func TestOrderForwarder_CRMFailureIsRetryable(t *testing.T) {
	f := NewOrderForwarder(testLogger(), &stubCRM{err: errors.New("salesforce timeout")})

	err := f.Handle(context.Background(), []byte(`{"order_number":"ORD20240315093000"}`))

	require.Error(t, err)
	require.NotErrorIs(t, err, rabbitmq.ErrBadMessage)
}

func TestAuditSink(t *testing.T) {
	s := NewAuditSink(testLogger(), "entity-changes")

	require.NoError(t, s.Handle(context.Background(), []byte(`{"entity_type":"Book","action":"Deleted"}`)))
	require.ErrorIs(t, s.Handle(context.Background(), []byte(`garbage`)), rabbitmq.ErrBadMessage)
}
