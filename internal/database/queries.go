package database

// Catalog queries
const (
	// Prices are cast to text so they decode losslessly into decimal.Decimal.
	// Restaurants without menu items come back once with NULL item columns.
	SelectCatalogSQL = `
		SELECT r.name, m.name, m.price::text
		FROM restaurants r
		LEFT JOIN menu_items m ON m.restaurant_id = r.id
		ORDER BY r.position ASC, r.id ASC, m.position ASC, m.id ASC`
)
