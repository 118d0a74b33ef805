package database

// Menu queries
const (
	SelectMenuItemsSQL = `
		SELECT id, name, price
		FROM menu_items
		ORDER BY name`

	SelectMenuItemByIDSQL = `
		SELECT id, name, price
		FROM menu_items
		WHERE id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, customer_name, is_delivery, delivery_address, is_table, total_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (id, order_id, menu_item_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`
)
