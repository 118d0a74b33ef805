package models

// MenuItem is a dish available for ordering. Prices are whole currency
// units, there are no fractional amounts.
type MenuItem struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Price int64  `json:"price" db:"price"`
}
