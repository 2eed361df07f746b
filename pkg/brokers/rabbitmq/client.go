package rabbitmq

import (
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	Host  string
	Port  int
	User  string
	Pwd   string
	VHost string
}

func (c Config) url() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d%s", c.User, c.Pwd, c.Host, c.Port, c.VHost)
}

// Client wraps a broker connection plus the channel used for publishing.
// When the broker is unreachable the client stays in degraded mode: every
// publish becomes a no-op and consumers are disabled, so the service keeps
// serving HTTP traffic without the broker.
type Client struct {
	log  *slog.Logger
	conn *amqp.Connection

	// mu guards ch; AMQP channels are not safe for concurrent use.
	mu sync.Mutex
	ch *amqp.Channel

	degraded bool
}

// Connect dials the broker. A connection failure is swallowed on purpose:
// the returned client is degraded rather than the process crashing.
func Connect(log *slog.Logger, cfg Config) *Client {
	conn, err := amqp.Dial(cfg.url())
	if err != nil {
		log.Warn("broker unreachable, running in degraded mode: publishes become no-ops",
			slog.String("host", cfg.Host),
			slog.String("error", err.Error()))
		return &Client{log: log, degraded: true}
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("failed to open broker channel, running in degraded mode",
			slog.String("error", err.Error()))
		_ = conn.Close()
		return &Client{log: log, degraded: true}
	}

	log.Info("broker connected", slog.String("host", cfg.Host))

	return &Client{log: log, conn: conn, ch: ch}
}

func (c *Client) Degraded() bool {
	return c.degraded
}

// ConsumerChannel opens a dedicated channel for a consumer worker. Each
// worker owns its channel; channels are never shared across workers.
func (c *Client) ConsumerChannel() (*amqp.Channel, error) {
	if c.degraded {
		return nil, fmt.Errorf("broker unavailable")
	}
	return c.conn.Channel()
}

func (c *Client) Close() error {
	if c.degraded {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ch.Close(); err != nil {
		c.log.Warn("failed to close broker channel", slog.String("error", err.Error()))
	}

	return c.conn.Close()
}
