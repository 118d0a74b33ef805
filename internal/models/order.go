package models

// SelectedLine is one distinct menu item within an order plus the requested
// quantity. A selection never contains two lines for the same menu item;
// repeated references accumulate into Quantity instead.
type SelectedLine struct {
	MenuItemID string `json:"menu_item_id" db:"menu_item_id"`
	Name       string `json:"name" db:"name"`
	Quantity   int    `json:"quantity" db:"quantity"`
	Price      int64  `json:"price" db:"price"`
}

// Subtotal returns the line price times its quantity.
func (l SelectedLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// TotalPrice sums the subtotals of all lines.
func TotalPrice(lines []SelectedLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}
