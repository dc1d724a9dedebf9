package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusInProgress OrderStatus = "In Progress"
	StatusDelivered  OrderStatus = "Delivered"
)

var ErrInvalidStatus = errors.New("invalid order status")

// ParseOrderStatus accepts the display form of a status, case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range []OrderStatus{StatusPending, StatusInProgress, StatusDelivered} {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Order is a placed order. RestaurantName and Items are snapshots taken at
// creation so later catalog changes never rewrite history.
type Order struct {
	ID             int             `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	RestaurantName string          `json:"restaurant_name"`
	Items          []MenuItem      `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         OrderStatus     `json:"status"`
}

// NewOrder builds a Pending order with its total fixed from the copied items.
func NewOrder(id int, restaurantName string, items []MenuItem) Order {
	snapshot := append([]MenuItem(nil), items...)
	return Order{
		ID:             id,
		CreatedAt:      time.Now().UTC(),
		RestaurantName: restaurantName,
		Items:          snapshot,
		TotalAmount:    CalculateTotalAmount(snapshot),
		Status:         StatusPending,
	}
}

// CalculateTotalAmount sums item prices
func CalculateTotalAmount(items []MenuItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// Clone returns a copy whose Items slice is not shared with o.
func (o Order) Clone() Order {
	o.Items = append([]MenuItem(nil), o.Items...)
	return o
}

func (o Order) String() string {
	names := make([]string, len(o.Items))
	for i, item := range o.Items {
		names[i] = item.String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Order ID: %d\n", o.ID)
	fmt.Fprintf(&b, "Restaurant: %s\n", o.RestaurantName)
	fmt.Fprintf(&b, "Items: [%s]\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Total: %s\n", FormatPrice(o.TotalAmount))
	fmt.Fprintf(&b, "Status: %s", o.Status)
	return b.String()
}
