package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-ordering/internal/logger"
	"food-ordering/internal/models"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func newTestPublisher(ch *fakeChannel) *Publisher {
	return &Publisher{
		channel: func() amqpPublisher { return ch },
		logger:  logger.Discard(),
	}
}

func testOrder() models.Order {
	return models.NewOrder(7, "Burger Barn", []models.MenuItem{
		models.NewMenuItem("Cheeseburger", decimal.RequireFromString("8.99")),
		models.NewMenuItem("Veggie Burger", decimal.RequireFromString("7.99")),
	})
}

func TestOrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	require.NoError(t, p.OrderPlaced(context.Background(), testOrder()))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, OrdersExchange, sent.exchange)
	assert.Equal(t, "orders.placed", sent.key)
	assert.Equal(t, amqp091.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, "7", sent.msg.CorrelationId)

	var body models.OrderPlacedMessage
	require.NoError(t, json.Unmarshal(sent.msg.Body, &body))
	assert.Equal(t, 7, body.OrderID)
	assert.Equal(t, "Burger Barn", body.RestaurantName)
	assert.Equal(t, "16.98", body.TotalAmount.StringFixed(2))
	assert.Equal(t, models.StatusPending, body.Status)
	assert.Len(t, body.Items, 2)
}

func TestStatusChanged(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	order := testOrder()
	order.Status = models.StatusInProgress
	require.NoError(t, p.StatusChanged(context.Background(), order, models.StatusPending))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, NotificationsExchange, sent.exchange)
	assert.Equal(t, "", sent.key)
	assert.Equal(t, amqp091.Transient, sent.msg.DeliveryMode)

	var body models.StatusUpdateMessage
	require.NoError(t, json.Unmarshal(sent.msg.Body, &body))
	assert.Equal(t, models.StatusPending, body.OldStatus)
	assert.Equal(t, models.StatusInProgress, body.NewStatus)
}

func TestPublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newTestPublisher(ch)

	err := p.OrderPlaced(context.Background(), testOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestCloseWithoutConnection(t *testing.T) {
	p := newTestPublisher(&fakeChannel{})
	assert.NoError(t, p.Close())
}

// stalledBroker accepts TCP connections and never answers the AMQP handshake.
func stalledBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var held []net.Conn
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			held = append(held, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range held {
			c.Close()
		}
	})
	return ln.Addr().String()
}

func TestPublishReconnectRespectsTimeout(t *testing.T) {
	conn := &Connection{
		url:     "amqp://guest:guest@" + stalledBroker(t) + "/",
		logger:  logger.Discard(),
		retries: 3,
	}
	p := NewPublisher(conn, logger.Discard())
	p.publishTimeout = 200 * time.Millisecond

	start := time.Now()
	err := p.OrderPlaced(context.Background(), testOrder())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reconnect")
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, conn.IsClosed())
}

func TestReconnectHonoursCancelledContext(t *testing.T) {
	conn := &Connection{
		url:     "amqp://guest:guest@" + stalledBroker(t) + "/",
		logger:  logger.Discard(),
		retries: 3,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, conn.Reconnect(ctx), context.Canceled)
}

func TestIsClosedWithoutChannel(t *testing.T) {
	assert.True(t, (&Connection{}).IsClosed())
}
