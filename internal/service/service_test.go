package service

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"fruitshop/m/domain"
	"fruitshop/m/internal/ids"
	"fruitshop/m/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	migrations.Run(db)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedPerson(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	id := ids.New()
	_, err := db.Exec(
		`INSERT INTO person (id, name, level, email, password) VALUES ($1, $2, $3, $4, $5)`,
		id, "owner "+id, domain.LevelConsignor, id+"@example.com", "x")
	require.NoError(t, err)
	return id
}

func seedProduct(t *testing.T, db *sqlx.DB, name string, inventory float64) domain.Product {
	t.Helper()
	p := domain.Product{
		ID:        ids.New(),
		Name:      name,
		UnitPrice: decimal.NewFromInt(30),
		Type:      domain.TypeFruit,
		UnitType:  domain.UnitCatty,
		PersonID:  seedPerson(t, db),
		Inventory: inventory,
	}
	_, err := db.Exec(
		`INSERT INTO product (id, name, unit_price, type, unit_type, person_id, inventory) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.UnitPrice, p.Type, p.UnitType, p.PersonID, p.Inventory)
	require.NoError(t, err)
	return p
}

func inventoryOf(t *testing.T, db *sqlx.DB, productID string) float64 {
	t.Helper()
	var inventory float64
	require.NoError(t, db.Get(&inventory, `SELECT inventory FROM product WHERE id = $1`, productID))
	return inventory
}

func rowCount(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM `+table))
	return count
}

func ptr[T any](v T) *T {
	return &v
}
