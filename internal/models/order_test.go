package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewOrder(t *testing.T) {
	items := []MenuItem{
		NewMenuItem("Pepperoni Pizza", price("12.99")),
		NewMenuItem("Margherita Pizza", price("10.99")),
	}

	order := NewOrder(1, "Pizza Palace", items)

	assert.Equal(t, 1, order.ID)
	assert.Equal(t, "Pizza Palace", order.RestaurantName)
	assert.Equal(t, StatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(price("23.98")), "total = %s", order.TotalAmount)
	assert.Equal(t, items, order.Items)
}

func TestNewOrder_SnapshotsItems(t *testing.T) {
	items := []MenuItem{NewMenuItem("Cheeseburger", price("8.99"))}
	order := NewOrder(1, "Burger Barn", items)

	items[0] = NewMenuItem("Changed", price("100.00"))

	assert.Equal(t, "Cheeseburger", order.Items[0].Name)
	assert.True(t, order.TotalAmount.Equal(price("8.99")))
	assert.True(t, order.TotalAmount.Equal(CalculateTotalAmount(order.Items)))
}

func TestCalculateTotalAmount_Empty(t *testing.T) {
	assert.True(t, CalculateTotalAmount(nil).IsZero())
}

func TestOrderClone(t *testing.T) {
	order := NewOrder(3, "Burger Barn", []MenuItem{NewMenuItem("Veggie Burger", price("7.99"))})
	clone := order.Clone()
	clone.Items[0].Name = "mutated"

	assert.Equal(t, "Veggie Burger", order.Items[0].Name)
}

func TestOrderString(t *testing.T) {
	order := NewOrder(1, "Pizza Palace", []MenuItem{
		NewMenuItem("Pepperoni Pizza", price("12.99")),
		NewMenuItem("Margherita Pizza", price("10.99")),
	})

	want := "Order ID: 1\n" +
		"Restaurant: Pizza Palace\n" +
		"Items: [Pepperoni Pizza ($12.99), Margherita Pizza ($10.99)]\n" +
		"Total: $23.98\n" +
		"Status: Pending"
	assert.Equal(t, want, order.String())
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    OrderStatus
		wantErr bool
	}{
		{"Pending", StatusPending, false},
		{"in progress", StatusInProgress, false},
		{" DELIVERED ", StatusDelivered, false},
		{"cooking", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRestaurant_CopiesMenu(t *testing.T) {
	menu := []MenuItem{NewMenuItem("Cheeseburger", price("8.99"))}
	r := NewRestaurant("Burger Barn", menu...)
	menu[0].Name = "mutated"

	assert.Equal(t, "Cheeseburger", r.Menu[0].Name)
	assert.Equal(t, "Burger Barn", r.String())
	assert.Equal(t, "Cheeseburger ($8.99)", r.Menu[0].String())
}
