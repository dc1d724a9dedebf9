package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"food-ordering/internal/logger"
	"food-ordering/internal/models"
)

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Publisher sends order events to RabbitMQ. It satisfies orderbook.Notifier.
type Publisher struct {
	conn    *Connection
	channel func() amqpPublisher
	logger  *logger.Logger
	// publishTimeout bounds one publish, reconnecting included.
	publishTimeout time.Duration
}

func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:           conn,
		channel:        func() amqpPublisher { return conn.Channel() },
		logger:         log,
		publishTimeout: 5 * time.Second,
	}
}

// OrderPlaced publishes to the orders topic exchange under orders.placed.
func (p *Publisher) OrderPlaced(ctx context.Context, order models.Order) error {
	msg := models.CreateOrderPlacedMessage(order)
	return p.publishMessage(ctx, OrdersExchange, models.GenerateRoutingKey("placed"), strconv.Itoa(order.ID), msg, true)
}

// StatusChanged publishes to the notifications fanout exchange.
func (p *Publisher) StatusChanged(ctx context.Context, order models.Order, oldStatus models.OrderStatus) error {
	msg := models.CreateStatusUpdateMessage(order.ID, oldStatus, order.Status)
	return p.publishMessage(ctx, NotificationsExchange, "", strconv.Itoa(order.ID), msg, false)
}

func (p *Publisher) publishMessage(ctx context.Context, exchange, routingKey, correlationID string, message any, persistent bool) error {
	timeout := p.publishTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if p.conn != nil && p.conn.IsClosed() {
		if err := p.conn.Reconnect(ctx); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	deliveryMode := amqp091.Transient
	if persistent {
		deliveryMode = amqp091.Persistent
	}

	publishing := amqp091.Publishing{
		ContentType:   "application/json",
		Body:          body,
		DeliveryMode:  deliveryMode,
		CorrelationId: correlationID,
		Timestamp:     time.Now().UTC(),
	}

	err = p.channel().PublishWithContext(
		ctx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		publishing,
	)
	if err != nil {
		return fmt.Errorf("failed to publish message to %s: %w", exchange, err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published message to exchange %s", exchange),
		"", map[string]any{
			"exchange":     exchange,
			"routing_key":  routingKey,
			"message_size": len(body),
		})

	return nil
}

func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
