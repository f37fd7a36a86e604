package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fruitshop/m/domain"
	"fruitshop/m/internal/ids"
)

// WastageLedger manages wastage records: the mirror of the purchase
// ledger with inverted sign. Edits that would leave a product's
// inventory negative are rejected.
type WastageLedger struct {
	db *sqlx.DB

	// GuardCreate applies the inventory floor check on creation as
	// well. Off by default: historically only edits were guarded, and
	// a back-dated wastage may legitimately describe stock that was
	// already gone.
	GuardCreate bool
}

func NewWastageLedger(db *sqlx.DB) *WastageLedger {
	return &WastageLedger{db: db}
}

func getWastage(q sqlx.Queryer, id string) (domain.Wastage, error) {
	var w domain.Wastage
	err := sqlx.Get(q, &w, `SELECT id, product_id, quantity, date FROM wastage WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return w, &NotFoundError{Kind: "wastage", ID: id}
	}
	if err != nil {
		return w, fmt.Errorf("load wastage %s: %w", id, err)
	}
	return w, nil
}

// Load returns the wastage record with the given id.
func (l *WastageLedger) Load(id string) (domain.Wastage, error) {
	return getWastage(l.db, id)
}

func negativeInventoryError(product domain.Product, requested float64) *ValidationError {
	return &ValidationError{
		Field: "quantity",
		Reason: fmt.Sprintf("product %q cannot absorb a wastage of %g %s: only %g %s in stock",
			product.Name, requested, product.UnitType.Label(), product.Inventory, product.UnitType.Label()),
	}
}

// Create records lost stock and debits the product's inventory.
func (l *WastageLedger) Create(productID string, quantity float64, date string) (domain.Wastage, error) {
	var zero domain.Wastage
	if quantity < 0 {
		return zero, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if date == "" {
		date = nowStamp()
	} else if !ValidStamp(date) {
		return zero, &ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD HH:MM:SS timestamp"}
	}

	tx, err := l.db.Beginx()
	if err != nil {
		return zero, fmt.Errorf("begin wastage create: %w", err)
	}
	defer tx.Rollback()

	product, err := getProduct(tx, productID)
	if err != nil {
		return zero, err
	}

	after := product.Inventory - quantity
	if l.GuardCreate && after < 0 {
		return zero, negativeInventoryError(product, quantity)
	}

	wastage := domain.Wastage{
		ID:        ids.New(),
		ProductID: product.ID,
		Quantity:  quantity,
		Date:      date,
	}

	if err := setInventory(tx, product.ID, after); err != nil {
		return zero, err
	}
	_, err = tx.Exec(
		`INSERT INTO wastage (id, product_id, quantity, date) VALUES ($1, $2, $3, $4)`,
		wastage.ID, wastage.ProductID, wastage.Quantity, wastage.Date)
	if err != nil {
		return zero, fmt.Errorf("insert wastage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit wastage create: %w", err)
	}
	return wastage, nil
}

// Update edits a wastage record. A quantity change applies the signed
// delta as a further debit and is rejected when the product's inventory
// would drop below zero; on rejection nothing is written. Re-targeting
// restores the full quantity on the old product and debits the new one,
// subject to the same floor check.
func (l *WastageLedger) Update(id string, productID *string, quantity *float64, date *string) (domain.Wastage, error) {
	var zero domain.Wastage
	if quantity != nil && *quantity < 0 {
		return zero, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if date != nil && !ValidStamp(*date) {
		return zero, &ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD HH:MM:SS timestamp"}
	}

	tx, err := l.db.Beginx()
	if err != nil {
		return zero, fmt.Errorf("begin wastage update: %w", err)
	}
	defer tx.Rollback()

	wastage, err := getWastage(tx, id)
	if err != nil {
		return zero, err
	}

	switch {
	case productID != nil && *productID != wastage.ProductID:
		oldProduct, err := getProduct(tx, wastage.ProductID)
		if err != nil {
			return zero, err
		}
		newProduct, err := getProduct(tx, *productID)
		if err != nil {
			return zero, err
		}

		newQuantity := wastage.Quantity
		if quantity != nil {
			newQuantity = *quantity
		}
		if newProduct.Inventory-newQuantity < 0 {
			return zero, negativeInventoryError(newProduct, newQuantity)
		}
		if err := setInventory(tx, oldProduct.ID, oldProduct.Inventory+wastage.Quantity); err != nil {
			return zero, err
		}
		if err := setInventory(tx, newProduct.ID, newProduct.Inventory-newQuantity); err != nil {
			return zero, err
		}
		wastage.ProductID = newProduct.ID
		wastage.Quantity = newQuantity

	case quantity != nil:
		product, err := getProduct(tx, wastage.ProductID)
		if err != nil {
			return zero, err
		}
		delta := *quantity - wastage.Quantity
		after := product.Inventory - delta
		if after < 0 {
			return zero, negativeInventoryError(product, *quantity)
		}
		if err := setInventory(tx, product.ID, after); err != nil {
			return zero, err
		}
		wastage.Quantity = *quantity
	}

	if date != nil {
		wastage.Date = *date
	}

	_, err = tx.Exec(
		`UPDATE wastage SET product_id = $1, quantity = $2, date = $3 WHERE id = $4`,
		wastage.ProductID, wastage.Quantity, wastage.Date, wastage.ID)
	if err != nil {
		return zero, fmt.Errorf("update wastage %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit wastage update: %w", err)
	}
	return wastage, nil
}

// Delete voids a wastage record, restoring the debited quantity to the
// product's inventory.
func (l *WastageLedger) Delete(id string) error {
	tx, err := l.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin wastage delete: %w", err)
	}
	defer tx.Rollback()

	wastage, err := getWastage(tx, id)
	if err != nil {
		return err
	}
	product, err := getProduct(tx, wastage.ProductID)
	if err != nil {
		return err
	}

	if err := setInventory(tx, product.ID, product.Inventory+wastage.Quantity); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM wastage WHERE id = $1`, wastage.ID); err != nil {
		return fmt.Errorf("delete wastage %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wastage delete: %w", err)
	}
	return nil
}

// List returns a page of wastage records, newest first.
func (l *WastageLedger) List(page, size int) (Page[domain.Wastage], error) {
	limit, offset, p, sz := clampPaging(page, size)

	var total int64
	if err := l.db.Get(&total, `SELECT COUNT(*) FROM wastage`); err != nil {
		return Page[domain.Wastage]{}, fmt.Errorf("count wastages: %w", err)
	}

	items := []domain.Wastage{}
	err := l.db.Select(&items,
		`SELECT id, product_id, quantity, date FROM wastage
         ORDER BY date DESC, product_id ASC, quantity DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return Page[domain.Wastage]{}, fmt.Errorf("list wastages: %w", err)
	}
	return Page[domain.Wastage]{Items: items, Page: p, Size: sz, Total: total}, nil
}
