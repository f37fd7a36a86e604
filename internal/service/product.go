package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"fruitshop/m/domain"
	"fruitshop/m/internal/ids"
)

// ProductService is the product store: it owns product rows and exposes
// the load/save operations the ledgers call inside their transactions.
type ProductService struct {
	db *sqlx.DB
}

func NewProductService(db *sqlx.DB) *ProductService {
	return &ProductService{db: db}
}

// getProduct loads a product through q, which may be a transaction.
// Ledgers use this to re-read the product inside their own transaction
// immediately before mutating inventory.
func getProduct(q sqlx.Queryer, id string) (domain.Product, error) {
	var p domain.Product
	err := sqlx.Get(q, &p, `SELECT id, name, unit_price, type, unit_type, person_id, inventory FROM product WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, &NotFoundError{Kind: "product", ID: id}
	}
	if err != nil {
		return p, fmt.Errorf("load product %s: %w", id, err)
	}
	return p, nil
}

// setInventory stages the product's new inventory through e, which the
// caller's transaction provides.
func setInventory(e sqlx.Execer, productID string, inventory float64) error {
	if _, err := e.Exec(`UPDATE product SET inventory = $1 WHERE id = $2`, inventory, productID); err != nil {
		return fmt.Errorf("update inventory of product %s: %w", productID, err)
	}
	return nil
}

// Load returns the product with the given id.
func (s *ProductService) Load(id string) (domain.Product, error) {
	return getProduct(s.db, id)
}

// Exists reports whether a product with the same name and unit price
// already exists, optionally excluding one id.
func (s *ProductService) Exists(name string, unitPrice decimal.Decimal, excludeID string) (bool, error) {
	var count int
	err := s.db.Get(&count,
		`SELECT COUNT(*) FROM product WHERE name = $1 AND unit_price = $2 AND id != $3`,
		name, unitPrice, excludeID)
	if err != nil {
		return false, fmt.Errorf("check product existence: %w", err)
	}
	return count > 0, nil
}

// Create validates and persists a new product with zero inventory.
func (s *ProductService) Create(name string, unitPrice decimal.Decimal, typ domain.ProductType, unit domain.UnitType, personID string) (domain.Product, error) {
	var zero domain.Product
	name = strings.TrimSpace(name)
	if name == "" {
		return zero, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !typ.Valid() {
		return zero, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown product type %q", typ)}
	}
	if !unit.Valid() {
		return zero, &ValidationError{Field: "unit_type", Reason: fmt.Sprintf("unknown unit type %q", unit)}
	}
	if unitPrice.IsNegative() {
		return zero, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}

	dup, err := s.Exists(name, unitPrice, "")
	if err != nil {
		return zero, err
	}
	if dup {
		return zero, &ValidationError{Field: "name", Reason: fmt.Sprintf("product %q with the same unit price already exists", name)}
	}

	p := domain.Product{
		ID:        ids.New(),
		Name:      name,
		UnitPrice: unitPrice,
		Type:      typ,
		UnitType:  unit,
		PersonID:  personID,
	}
	_, err = s.db.Exec(
		`INSERT INTO product (id, name, unit_price, type, unit_type, person_id, inventory) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.UnitPrice, p.Type, p.UnitType, p.PersonID, p.Inventory)
	if err != nil {
		return zero, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// Update overwrites the supplied fields of an existing product.
// Inventory is deliberately absent here: only ledger operations may
// change it.
func (s *ProductService) Update(id string, name *string, unitPrice *decimal.Decimal, typ *domain.ProductType, unit *domain.UnitType, personID *string) (domain.Product, error) {
	var zero domain.Product
	p, err := s.Load(id)
	if err != nil {
		return zero, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return zero, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		p.Name = trimmed
	}
	if unitPrice != nil {
		if unitPrice.IsNegative() {
			return zero, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
		}
		p.UnitPrice = *unitPrice
	}
	if typ != nil {
		if !typ.Valid() {
			return zero, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown product type %q", *typ)}
		}
		p.Type = *typ
	}
	if unit != nil {
		if !unit.Valid() {
			return zero, &ValidationError{Field: "unit_type", Reason: fmt.Sprintf("unknown unit type %q", *unit)}
		}
		p.UnitType = *unit
	}
	if personID != nil {
		p.PersonID = *personID
	}

	if name != nil || unitPrice != nil {
		dup, err := s.Exists(p.Name, p.UnitPrice, p.ID)
		if err != nil {
			return zero, err
		}
		if dup {
			return zero, &ValidationError{Field: "name", Reason: fmt.Sprintf("product %q with the same unit price already exists", p.Name)}
		}
	}

	_, err = s.db.Exec(
		`UPDATE product SET name = $1, unit_price = $2, type = $3, unit_type = $4, person_id = $5 WHERE id = $6`,
		p.Name, p.UnitPrice, p.Type, p.UnitType, p.PersonID, p.ID)
	if err != nil {
		return zero, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

// Delete removes a product that no ledger rows reference.
func (s *ProductService) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}

	var refs int
	err := s.db.Get(&refs,
		`SELECT (SELECT COUNT(*) FROM purchase WHERE product_id = $1) + (SELECT COUNT(*) FROM wastage WHERE product_id = $1)`, id)
	if err != nil {
		return fmt.Errorf("count references of product %s: %w", id, err)
	}
	if refs > 0 {
		return &ValidationError{Field: "id", Reason: "product is referenced by purchase or wastage records"}
	}

	if _, err := s.db.Exec(`DELETE FROM product WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// List returns a page of products sorted by name.
func (s *ProductService) List(page, size int) (Page[domain.Product], error) {
	limit, offset, p, sz := clampPaging(page, size)

	var total int64
	if err := s.db.Get(&total, `SELECT COUNT(*) FROM product`); err != nil {
		return Page[domain.Product]{}, fmt.Errorf("count products: %w", err)
	}

	items := []domain.Product{}
	err := s.db.Select(&items,
		`SELECT id, name, unit_price, type, unit_type, person_id, inventory FROM product ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return Page[domain.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return Page[domain.Product]{Items: items, Page: p, Size: sz, Total: total}, nil
}
