package domain

// Purchase records stock received from a consignor. Creating one
// credits the product's inventory by Quantity; deleting one reverses
// that credit.
type Purchase struct {
	ID            string  `db:"id" json:"id"`
	ProductID     string  `db:"product_id" json:"product_id"`
	Quantity      float64 `db:"quantity" json:"quantity"`
	OrderDate     string  `db:"order_date" json:"order_date"`
	ReceivingDate string  `db:"receiving_date" json:"receiving_date"`
}
