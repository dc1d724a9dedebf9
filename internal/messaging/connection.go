package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"food-ordering/internal/config"
	"food-ordering/internal/logger"
)

const (
	OrdersExchange        = "orders_topic"
	NotificationsExchange = "notifications_fanout"
	OrderHistoryQueue     = "order_history_queue"
	NotificationsQueue    = "notifications_queue"
)

// dialTimeout bounds one TCP dial plus AMQP handshake.
const dialTimeout = 30 * time.Second

// Connection wraps RabbitMQ connection with reconnection logic
type Connection struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *logger.Logger
	url     string
	retries int
}

// New creates a new RabbitMQ connection
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Connection, error) {
	conn := &Connection{
		logger:  log,
		url:     cfg.RabbitMQURL(),
		retries: 3,
	}

	if err := conn.connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}

	return conn, nil
}

// connect establishes connection to RabbitMQ with retry logic. It gives up
// as soon as ctx is done, including in the middle of a dial.
func (c *Connection) connect(ctx context.Context) error {
	var err error

	for i := 0; i < c.retries; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err == nil {
				return ctxErr
			}
			return fmt.Errorf("%w (last error: %v)", ctxErr, err)
		}

		err = c.dial(ctx)
		if err == nil {
			return nil
		}

		if i < c.retries-1 {
			waitTime := time.Duration(i+1) * time.Second
			c.logger.Error("rabbitmq_connection_failed",
				fmt.Sprintf("Failed to connect to RabbitMQ, retrying in %v", waitTime),
				"startup", err, nil)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
			case <-time.After(waitTime):
			}
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", c.retries, err)
}

func (c *Connection) dial(ctx context.Context) error {
	timeout := dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return context.DeadlineExceeded
		}
		timeout = min(timeout, left)
	}

	conn, err := amqp091.DialConfig(c.url, amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp091.DefaultDial(timeout),
	})
	if err != nil {
		return err
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	c.conn, c.channel = conn, channel

	if err := c.setupTopology(); err != nil {
		c.logger.Error("rabbitmq_setup_failed", "Failed to set up topology", "startup", err, nil)
		c.close()
		return err
	}
	return nil
}

// setupTopology declares the order event exchanges and their queues.
func (c *Connection) setupTopology() error {
	exchanges := []struct {
		name string
		kind string
	}{
		{OrdersExchange, "topic"},
		{NotificationsExchange, "fanout"},
	}
	for _, ex := range exchanges {
		err := c.channel.ExchangeDeclare(
			ex.name, // name
			ex.kind, // type
			true,    // durable
			false,   // auto-deleted
			false,   // internal
			false,   // no-wait
			nil,     // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare %s exchange: %w", ex.name, err)
		}
	}

	bindings := []struct {
		queue      string
		routingKey string
		exchange   string
	}{
		{OrderHistoryQueue, "orders.*", OrdersExchange},
		{NotificationsQueue, "", NotificationsExchange},
	}
	for _, b := range bindings {
		_, err := c.channel.QueueDeclare(
			b.queue, // name
			true,    // durable
			false,   // delete when unused
			false,   // exclusive
			false,   // no-wait
			nil,     // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", b.queue, err)
		}

		if err := c.channel.QueueBind(b.queue, b.routingKey, b.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s with routing key %q: %w", b.queue, b.routingKey, err)
		}
	}

	return nil
}

// Channel returns the current channel
func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

func (c *Connection) Close() error {
	return c.close()
}

func (c *Connection) close() error {
	channel, conn := c.channel, c.conn
	c.channel, c.conn = nil, nil
	if channel != nil {
		channel.Close()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// IsClosed reports whether publishing needs a reconnect. A channel closed by
// the broker (e.g. after a channel-level exception) counts even while the
// TCP connection is still up.
func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed() ||
		c.channel == nil || c.channel.IsClosed()
}

// Reconnect attempts to reconnect to RabbitMQ within ctx.
func (c *Connection) Reconnect(ctx context.Context) error {
	c.close()
	return c.connect(ctx)
}
