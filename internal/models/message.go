package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedMessage is published when an order enters the order book
type OrderPlacedMessage struct {
	OrderID        int             `json:"order_id"`
	RestaurantName string          `json:"restaurant_name"`
	Items          []MenuItem      `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         OrderStatus     `json:"status"`
	PlacedAt       time.Time       `json:"placed_at"`
}

// StatusUpdateMessage represents a status update notification
type StatusUpdateMessage struct {
	OrderID   int         `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	Timestamp time.Time   `json:"timestamp"`
}

func CreateOrderPlacedMessage(order Order) *OrderPlacedMessage {
	return &OrderPlacedMessage{
		OrderID:        order.ID,
		RestaurantName: order.RestaurantName,
		Items:          append([]MenuItem(nil), order.Items...),
		TotalAmount:    order.TotalAmount,
		Status:         order.Status,
		PlacedAt:       order.CreatedAt,
	}
}

func CreateStatusUpdateMessage(orderID int, oldStatus, newStatus OrderStatus) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Timestamp: time.Now().UTC(),
	}
}

// GenerateRoutingKey generates a routing key for order events
func GenerateRoutingKey(event string) string {
	return "orders." + event
}
