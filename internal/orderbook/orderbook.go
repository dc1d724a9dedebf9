// Package orderbook keeps every order placed during the process lifetime.
//
// The book owns the order-ID counter: IDs start at 1, increase by one per
// placed order and are never reused. A rejected placement consumes no ID.
// Orders are append-only; only their status may change afterwards.
//
// Get and UpdateStatus are admin hooks for moving an order through
// Pending, In Progress and Delivered. The console shell never calls them
// and nothing advances a status on its own, so without an external caller
// every order stays Pending.
package orderbook

import (
	"context"
	"errors"
	"fmt"

	"food-ordering/internal/logger"
	"food-ordering/internal/models"
)

var (
	ErrEmptySelection = errors.New("no items selected")
	ErrOrderNotFound  = errors.New("order not found")
)

// Notifier receives order events. Delivery is best effort.
type Notifier interface {
	OrderPlaced(ctx context.Context, order models.Order) error
	StatusChanged(ctx context.Context, order models.Order, oldStatus models.OrderStatus) error
}

type OrderBook struct {
	nextID   int
	orders   []models.Order
	notifier Notifier
	logger   *logger.Logger
}

// New creates an empty book. notifier may be nil.
func New(notifier Notifier, log *logger.Logger) *OrderBook {
	return &OrderBook{
		nextID:   1,
		notifier: notifier,
		logger:   log,
	}
}

// Place records a new Pending order for a non-empty item selection.
func (b *OrderBook) Place(ctx context.Context, restaurantName string, items []models.MenuItem) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptySelection
	}

	order := models.NewOrder(b.nextID, restaurantName, items)
	b.nextID++
	b.orders = append(b.orders, order)

	b.logger.Info("order_placed", fmt.Sprintf("Order %d placed", order.ID), requestID(ctx), map[string]any{
		"order_id":     order.ID,
		"restaurant":   order.RestaurantName,
		"item_count":   len(order.Items),
		"total_amount": order.TotalAmount.StringFixed(2),
	})

	if b.notifier != nil {
		if err := b.notifier.OrderPlaced(ctx, order.Clone()); err != nil {
			b.logger.Error("event_publish_failed", "Failed to publish order placed event", requestID(ctx), err, map[string]any{
				"order_id": order.ID,
			})
		}
	}

	return order.Clone(), nil
}

// Orders returns all orders in insertion order.
func (b *OrderBook) Orders() []models.Order {
	out := make([]models.Order, len(b.orders))
	for i, o := range b.orders {
		out[i] = o.Clone()
	}
	return out
}

func (b *OrderBook) Len() int {
	return len(b.orders)
}

func (b *OrderBook) Get(id int) (models.Order, error) {
	i, err := b.indexOf(id)
	if err != nil {
		return models.Order{}, err
	}
	return b.orders[i].Clone(), nil
}

// UpdateStatus sets the status of an existing order. Any of the three
// statuses may be set from any other; no transition rules are enforced.
func (b *OrderBook) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (models.Order, error) {
	status, err := models.ParseOrderStatus(string(status))
	if err != nil {
		return models.Order{}, err
	}
	i, err := b.indexOf(id)
	if err != nil {
		return models.Order{}, err
	}

	old := b.orders[i].Status
	b.orders[i].Status = status
	order := b.orders[i].Clone()

	b.logger.Info("order_status_updated", fmt.Sprintf("Order %d is now %s", id, status), requestID(ctx), map[string]any{
		"order_id":   id,
		"old_status": string(old),
		"new_status": string(status),
	})

	if b.notifier != nil && old != status {
		if err := b.notifier.StatusChanged(ctx, order.Clone(), old); err != nil {
			b.logger.Error("event_publish_failed", "Failed to publish status update event", requestID(ctx), err, map[string]any{
				"order_id": id,
			})
		}
	}

	return order, nil
}

func (b *OrderBook) indexOf(id int) (int, error) {
	// IDs are dense and start at 1, so the position is id-1.
	i := id - 1
	if i < 0 || i >= len(b.orders) || b.orders[i].ID != id {
		return 0, fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	return i, nil
}

type requestIDKey struct{}

// WithRequestID tags ctx so book log lines carry the caller's request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
