package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
)

// AuditSink consumes entity-change and deletion queues and records each
// message for audit. Anything that is not valid JSON is a poison message.
type AuditSink struct {
	log  *slog.Logger
	name string
}

func NewAuditSink(log *slog.Logger, name string) *AuditSink {
	return &AuditSink{log: log, name: name}
}

func (s *AuditSink) Handle(_ context.Context, body []byte) error {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: decode audit payload: %v", rabbitmq.ErrBadMessage, err)
	}

	s.log.Info("audit event recorded",
		slog.String("stream", s.name),
		slog.Any("payload", payload))

	return nil
}
