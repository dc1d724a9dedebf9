package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MenuItem is a named, priced dish. Treat it as a value; it is copied into orders.
type MenuItem struct {
	Name  string          `json:"name" db:"name"`
	Price decimal.Decimal `json:"price" db:"price"`
}

func NewMenuItem(name string, price decimal.Decimal) MenuItem {
	return MenuItem{Name: name, Price: price}
}

func (m MenuItem) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, FormatPrice(m.Price))
}

// Restaurant owns an ordered menu. Menu order is display order.
type Restaurant struct {
	Name string     `json:"name" db:"name"`
	Menu []MenuItem `json:"menu"`
}

func NewRestaurant(name string, menu ...MenuItem) Restaurant {
	return Restaurant{Name: name, Menu: append([]MenuItem(nil), menu...)}
}

func (r Restaurant) String() string {
	return r.Name
}

// FormatPrice renders an amount as dollars with two decimals.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
