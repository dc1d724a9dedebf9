// Package catalog holds the fixed set of restaurants available for ordering.
package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"food-ordering/internal/models"
	"food-ordering/internal/validation"
)

var ErrEmptyCatalog = errors.New("catalog has no restaurants")

// Catalog is read-only after construction.
type Catalog struct {
	restaurants []models.Restaurant
}

func New(restaurants []models.Restaurant) (*Catalog, error) {
	if len(restaurants) == 0 {
		return nil, ErrEmptyCatalog
	}
	copied := make([]models.Restaurant, len(restaurants))
	for i, r := range restaurants {
		copied[i] = models.NewRestaurant(r.Name, r.Menu...)
	}
	return &Catalog{restaurants: copied}, nil
}

// Sample returns the built-in demo catalog.
func Sample() *Catalog {
	c, _ := New([]models.Restaurant{
		models.NewRestaurant("Pizza Palace",
			models.NewMenuItem("Pepperoni Pizza", decimal.RequireFromString("12.99")),
			models.NewMenuItem("Margherita Pizza", decimal.RequireFromString("10.99")),
		),
		models.NewRestaurant("Burger Barn",
			models.NewMenuItem("Cheeseburger", decimal.RequireFromString("8.99")),
			models.NewMenuItem("Veggie Burger", decimal.RequireFromString("7.99")),
		),
	})
	return c
}

// Restaurants lists restaurants in display order.
func (c *Catalog) Restaurants() []models.Restaurant {
	out := make([]models.Restaurant, len(c.restaurants))
	for i, r := range c.restaurants {
		out[i] = models.NewRestaurant(r.Name, r.Menu...)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.restaurants)
}

// Select returns the restaurant at a 1-based index.
func (c *Catalog) Select(index int) (models.Restaurant, error) {
	if err := validation.CheckRange("restaurant", index, 1, len(c.restaurants)); err != nil {
		return models.Restaurant{}, err
	}
	r := c.restaurants[index-1]
	return models.NewRestaurant(r.Name, r.Menu...), nil
}

// SelectMenuItem returns the item at a 1-based index of r's menu.
func SelectMenuItem(r models.Restaurant, index int) (models.MenuItem, error) {
	if err := validation.CheckRange("menu item", index, 1, len(r.Menu)); err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", r.Name, err)
	}
	return r.Menu[index-1], nil
}
