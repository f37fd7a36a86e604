package domain

import "github.com/shopspring/decimal"

// Miscellaneous is a minor incidental expense, independent of inventory.
type Miscellaneous struct {
	ID         string          `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	RecordDate string          `db:"record_date" json:"record_date"`
}
