package domain

// Wastage records stock lost or discarded. Creating one debits the
// product's inventory by Quantity; deleting one restores it.
type Wastage struct {
	ID        string  `db:"id" json:"id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Quantity  float64 `db:"quantity" json:"quantity"`
	Date      string  `db:"date" json:"date"`
}
