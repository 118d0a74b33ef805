package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"restaurant-chatbot/internal/logger"
	"restaurant-chatbot/internal/models"
)

// Storage is the persistence collaborator for the dialogue engine: it reads
// the menu and writes confirmed orders.
type Storage struct {
	db     *DB
	logger *logger.Logger
}

// NewStorage creates a Storage on top of an established connection pool.
func NewStorage(db *DB, log *logger.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: log,
	}
}

// GetMenuItems returns the current menu ordered by name. Fetch failures are
// logged and collapse to an empty menu; the caller treats an empty menu as
// "nothing available" and never sees the error.
func (s *Storage) GetMenuItems(ctx context.Context) []models.MenuItem {
	rows, err := s.db.Query(ctx, SelectMenuItemsSQL)
	if err != nil {
		s.logger.Error("menu_fetch_failed", "Failed to fetch menu items", "", err, nil)
		return nil
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			s.logger.Error("menu_fetch_failed", "Failed to scan menu item", "", err, nil)
			return nil
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("menu_fetch_failed", "Failed to read menu items", "", err, nil)
		return nil
	}

	return items
}

// GetMenuItem returns a single menu item by id. The dialogue itself only
// resolves items positionally against a snapshot; this lookup exists for
// gateway-side tooling that holds an item id.
func (s *Storage) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.QueryRow(ctx, SelectMenuItemByIDSQL, id).Scan(&item.ID, &item.Name, &item.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item %s: %w", id, err)
	}
	return &item, nil
}

// CreateOrder persists an order and its line items in one transaction and
// returns the order id and the computed total.
func (s *Storage) CreateOrder(ctx context.Context, customerName string, lines []models.SelectedLine, deliveryAddress string, notes *string) (string, int64, error) {
	orderID := uuid.NewString()
	total := models.TotalPrice(lines)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var createdAt time.Time
	err = tx.QueryRow(ctx, InsertOrderSQL,
		orderID, customerName, true, deliveryAddress, false, total, notes).Scan(&createdAt)
	if err != nil {
		return "", 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for i, line := range lines {
		itemID := fmt.Sprintf("%s_item_%d", orderID, i)
		_, err = tx.Exec(ctx, InsertOrderItemSQL,
			itemID, orderID, line.MenuItemID, line.Name, line.Quantity, line.Price)
		if err != nil {
			return "", 0, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", 0, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.Info("order_persisted", "Order stored", "", map[string]interface{}{
		"order_id":   orderID,
		"total":      total,
		"line_count": len(lines),
		"customer":   customerName,
	})

	return orderID, total, nil
}
