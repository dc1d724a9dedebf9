package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"food-ordering/internal/database"
	"food-ordering/internal/models"
)

// Querier is the subset of database.DB the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// menuRow is one joined restaurant/menu-item row. Item fields are nil for
// restaurants without a menu.
type menuRow struct {
	Restaurant string
	ItemName   *string
	ItemPrice  *string
}

// LoadPostgres reads the catalog from the restaurants and menu_items tables.
func LoadPostgres(ctx context.Context, q Querier) (*Catalog, error) {
	rows, err := q.Query(ctx, database.SelectCatalogSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var menuRows []menuRow
	for rows.Next() {
		var row menuRow
		if err := rows.Scan(&row.Restaurant, &row.ItemName, &row.ItemPrice); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		menuRows = append(menuRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}

	restaurants, err := groupMenuRows(menuRows)
	if err != nil {
		return nil, err
	}
	return New(restaurants)
}

// groupMenuRows folds rows ordered by restaurant into restaurants with menus.
func groupMenuRows(rows []menuRow) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	for _, row := range rows {
		if len(restaurants) == 0 || restaurants[len(restaurants)-1].Name != row.Restaurant {
			restaurants = append(restaurants, models.Restaurant{Name: row.Restaurant})
		}
		if row.ItemName == nil {
			continue
		}
		if row.ItemPrice == nil {
			return nil, fmt.Errorf("menu item %q of %q has no price", *row.ItemName, row.Restaurant)
		}
		price, err := decimal.NewFromString(*row.ItemPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid price for %q: %w", *row.ItemName, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("negative price for %q: %s", *row.ItemName, price)
		}
		last := &restaurants[len(restaurants)-1]
		last.Menu = append(last.Menu, models.NewMenuItem(*row.ItemName, price))
	}
	return restaurants, nil
}
