package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fruitshop/m/domain"
	"fruitshop/m/internal/ids"
)

// PurchaseLedger manages purchase records. Every mutation adjusts the
// referenced product's inventory in the same transaction as the ledger
// row, so the two commit together or not at all.
type PurchaseLedger struct {
	db *sqlx.DB
}

func NewPurchaseLedger(db *sqlx.DB) *PurchaseLedger {
	return &PurchaseLedger{db: db}
}

func getPurchase(q sqlx.Queryer, id string) (domain.Purchase, error) {
	var p domain.Purchase
	err := sqlx.Get(q, &p, `SELECT id, product_id, quantity, order_date, receiving_date FROM purchase WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, &NotFoundError{Kind: "purchase", ID: id}
	}
	if err != nil {
		return p, fmt.Errorf("load purchase %s: %w", id, err)
	}
	return p, nil
}

// Load returns the purchase with the given id.
func (l *PurchaseLedger) Load(id string) (domain.Purchase, error) {
	return getPurchase(l.db, id)
}

// Create records received stock and credits the product's inventory by
// the received quantity. The order date is set to the creation time.
func (l *PurchaseLedger) Create(productID string, quantity float64, receivingDate string) (domain.Purchase, error) {
	var zero domain.Purchase
	if quantity <= 0 {
		return zero, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if !ValidStamp(receivingDate) {
		return zero, &ValidationError{Field: "receiving_date", Reason: "must be a YYYY-MM-DD HH:MM:SS timestamp"}
	}

	tx, err := l.db.Beginx()
	if err != nil {
		return zero, fmt.Errorf("begin purchase create: %w", err)
	}
	defer tx.Rollback()

	product, err := getProduct(tx, productID)
	if err != nil {
		return zero, err
	}

	purchase := domain.Purchase{
		ID:            ids.New(),
		ProductID:     product.ID,
		Quantity:      quantity,
		OrderDate:     nowStamp(),
		ReceivingDate: receivingDate,
	}

	if err := setInventory(tx, product.ID, product.Inventory+quantity); err != nil {
		return zero, err
	}
	_, err = tx.Exec(
		`INSERT INTO purchase (id, product_id, quantity, order_date, receiving_date) VALUES ($1, $2, $3, $4, $5)`,
		purchase.ID, purchase.ProductID, purchase.Quantity, purchase.OrderDate, purchase.ReceivingDate)
	if err != nil {
		return zero, fmt.Errorf("insert purchase: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit purchase create: %w", err)
	}
	return purchase, nil
}

// Update edits a purchase. A quantity change applies the delta between
// the new and old quantity to the product's inventory. Re-targeting to
// a different product reverses the full credit on the old product and
// applies the (possibly new) quantity to the new one.
func (l *PurchaseLedger) Update(id string, productID *string, quantity *float64, receivingDate *string) (domain.Purchase, error) {
	var zero domain.Purchase
	if quantity != nil && *quantity <= 0 {
		return zero, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if receivingDate != nil && !ValidStamp(*receivingDate) {
		return zero, &ValidationError{Field: "receiving_date", Reason: "must be a YYYY-MM-DD HH:MM:SS timestamp"}
	}

	tx, err := l.db.Beginx()
	if err != nil {
		return zero, fmt.Errorf("begin purchase update: %w", err)
	}
	defer tx.Rollback()

	purchase, err := getPurchase(tx, id)
	if err != nil {
		return zero, err
	}

	switch {
	case productID != nil && *productID != purchase.ProductID:
		oldProduct, err := getProduct(tx, purchase.ProductID)
		if err != nil {
			return zero, err
		}
		newProduct, err := getProduct(tx, *productID)
		if err != nil {
			return zero, err
		}

		newQuantity := purchase.Quantity
		if quantity != nil {
			newQuantity = *quantity
		}
		if err := setInventory(tx, oldProduct.ID, oldProduct.Inventory-purchase.Quantity); err != nil {
			return zero, err
		}
		if err := setInventory(tx, newProduct.ID, newProduct.Inventory+newQuantity); err != nil {
			return zero, err
		}
		purchase.ProductID = newProduct.ID
		purchase.Quantity = newQuantity

	case quantity != nil:
		product, err := getProduct(tx, purchase.ProductID)
		if err != nil {
			return zero, err
		}
		delta := *quantity - purchase.Quantity
		if err := setInventory(tx, product.ID, product.Inventory+delta); err != nil {
			return zero, err
		}
		purchase.Quantity = *quantity
	}

	if receivingDate != nil {
		purchase.ReceivingDate = *receivingDate
	}

	_, err = tx.Exec(
		`UPDATE purchase SET product_id = $1, quantity = $2, receiving_date = $3 WHERE id = $4`,
		purchase.ProductID, purchase.Quantity, purchase.ReceivingDate, purchase.ID)
	if err != nil {
		return zero, fmt.Errorf("update purchase %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit purchase update: %w", err)
	}
	return purchase, nil
}

// Delete voids a purchase, debiting the product's inventory by the
// recorded quantity. No floor check: reversing a credit may leave the
// inventory negative when stock was already consumed elsewhere.
func (l *PurchaseLedger) Delete(id string) error {
	tx, err := l.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin purchase delete: %w", err)
	}
	defer tx.Rollback()

	purchase, err := getPurchase(tx, id)
	if err != nil {
		return err
	}
	product, err := getProduct(tx, purchase.ProductID)
	if err != nil {
		return err
	}

	if err := setInventory(tx, product.ID, product.Inventory-purchase.Quantity); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM purchase WHERE id = $1`, purchase.ID); err != nil {
		return fmt.Errorf("delete purchase %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit purchase delete: %w", err)
	}
	return nil
}

// List returns a page of purchases, newest receiving date first.
func (l *PurchaseLedger) List(page, size int) (Page[domain.Purchase], error) {
	limit, offset, p, sz := clampPaging(page, size)

	var total int64
	if err := l.db.Get(&total, `SELECT COUNT(*) FROM purchase`); err != nil {
		return Page[domain.Purchase]{}, fmt.Errorf("count purchases: %w", err)
	}

	items := []domain.Purchase{}
	err := l.db.Select(&items,
		`SELECT id, product_id, quantity, order_date, receiving_date FROM purchase
         ORDER BY receiving_date DESC, order_date DESC, product_id ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return Page[domain.Purchase]{}, fmt.Errorf("list purchases: %w", err)
	}
	return Page[domain.Purchase]{Items: items, Page: p, Size: sz, Total: total}, nil
}
