package app

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boekwinkel/order_service/internal/integrations/salesforce"
	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
)

// Every queue the service publishes to, legacy queues included, must have
// a consumer, otherwise it grows without bound.
func TestSetupWorkersCoverAllPublishedQueues(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Port 1 is never listening, so this yields a degraded client without
	// a broker in the loop.
	broker := rabbitmq.Connect(log, rabbitmq.Config{Host: "127.0.0.1", Port: 1, VHost: "/"})
	require.True(t, broker.Degraded())

	workers := setupWorkers(log, broker, salesforce.NewClient(log))

	consumed := make(map[string]bool, len(workers))
	for _, w := range workers {
		consumed[w.Queue()] = true
	}

	for _, queue := range []string{
		rabbitmq.SalesforceOrderQueue,
		rabbitmq.EntityChangeQueue,
		rabbitmq.CustomerDeletedQueue,
		rabbitmq.BookDeletedQueue,
		rabbitmq.LegacySalesforceQueue,
		rabbitmq.LegacyEntityChangesQueue,
	} {
		require.True(t, consumed[queue], "no worker consumes %s", queue)
	}
}
