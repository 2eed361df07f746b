package rabbitmq

import (
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange and queue names are part of the wire contract shared with
// consumers; do not rename without migrating both sides.
const (
	OrderExchange      = "orders.topic"
	EntityExchange     = "entities.topic"
	DeadLetterExchange = "dead-letter.exchange"

	SalesforceOrderQueue = "salesforce.orders"
	SapOrderQueue        = "sap.orders"
	EntityChangeQueue    = "entity.changes"
	DeadLetterQueue      = "dead-letter.queue"
	DeadLetterKey        = "dead-letter"

	// Legacy direct-routed queues kept for the simple publish paths.
	LegacySalesforceQueue    = "salesforce_orders"
	LegacyEntityChangesQueue = "entity_changes"
	CustomerDeletedQueue     = "klant_deleted"
	BookDeletedQueue         = "boek_deleted"
)

const (
	messageTTLMillis = 86400000 // 24h before dead-lettering
	maxPriority      = 10
)

// declarer is the slice of amqp.Channel the topology setup needs.
type declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// SetupTopology declares every exchange, queue and binding the service
// uses. Declarations are idempotent as long as arguments stay identical;
// redeclaring an existing queue with different arguments is a channel-level
// error operators must avoid. In degraded mode this is a no-op.
func (c *Client) SetupTopology() error {
	if c.degraded {
		c.log.Warn("broker unavailable, skipping topology setup")
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := declareTopology(c.ch); err != nil {
		return err
	}

	c.log.Info("broker topology declared",
		slog.String("exchanges", OrderExchange+", "+EntityExchange+", "+DeadLetterExchange))

	return nil
}

func declareTopology(d declarer) error {
	if err := declareDeadLetter(d); err != nil {
		return fmt.Errorf("declare dead-letter topology: %w", err)
	}
	if err := declareOrderTopology(d); err != nil {
		return fmt.Errorf("declare order topology: %w", err)
	}
	if err := declareEntityTopology(d); err != nil {
		return fmt.Errorf("declare entity topology: %w", err)
	}
	if err := declareLegacyQueues(d); err != nil {
		return fmt.Errorf("declare legacy queues: %w", err)
	}

	return nil
}

func declareDeadLetter(d declarer) error {
	if err := d.ExchangeDeclare(DeadLetterExchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := d.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
		return err
	}

	return d.QueueBind(DeadLetterQueue, DeadLetterKey, DeadLetterExchange, false, nil)
}

func declareOrderTopology(d declarer) error {
	if err := d.ExchangeDeclare(OrderExchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DeadLetterExchange,
		"x-dead-letter-routing-key": DeadLetterKey,
		"x-message-ttl":             int32(messageTTLMillis),
		"x-max-priority":            int32(maxPriority),
	}

	if _, err := d.QueueDeclare(SalesforceOrderQueue, true, false, false, false, args); err != nil {
		return err
	}
	if err := d.QueueBind(SalesforceOrderQueue, "order.created", OrderExchange, false, nil); err != nil {
		return err
	}
	if err := d.QueueBind(SalesforceOrderQueue, "order.updated", OrderExchange, false, nil); err != nil {
		return err
	}

	if _, err := d.QueueDeclare(SapOrderQueue, true, false, false, false, args); err != nil {
		return err
	}

	return d.QueueBind(SapOrderQueue, "order.*", OrderExchange, false, nil)
}

func declareEntityTopology(d declarer) error {
	if err := d.ExchangeDeclare(EntityExchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DeadLetterExchange,
		"x-dead-letter-routing-key": DeadLetterKey,
		"x-message-ttl":             int32(messageTTLMillis),
	}

	if _, err := d.QueueDeclare(EntityChangeQueue, true, false, false, false, args); err != nil {
		return err
	}

	for _, key := range []string{"entity.*.created", "entity.*.updated", "entity.*.deleted"} {
		if err := d.QueueBind(EntityChangeQueue, key, EntityExchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

func declareLegacyQueues(d declarer) error {
	for _, queue := range []string{
		LegacySalesforceQueue,
		LegacyEntityChangesQueue,
		CustomerDeletedQueue,
		BookDeletedQueue,
	} {
		if _, err := d.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return err
		}
	}

	return nil
}
