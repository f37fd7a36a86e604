package domain

import "github.com/shopspring/decimal"

// Product is a stock-keeping item owned by a consignor. Inventory is
// the single source of truth for on-hand quantity, expressed in the
// product's unit of measure; every purchase or wastage mutation updates
// it in the same transaction as the ledger row.
type Product struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Type      ProductType     `db:"type" json:"type"`
	UnitType  UnitType        `db:"unit_type" json:"unit_type"`
	PersonID  string          `db:"person_id" json:"person_id"`
	Inventory float64         `db:"inventory" json:"inventory"`
}
