package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWastageCreateDebitsInventory(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	product := seedProduct(t, db, "apple", 10)

	wastage, err := ledger.Create(product.ID, 3, testStamp)
	require.NoError(t, err)

	assert.Equal(t, product.ID, wastage.ProductID)
	assert.Equal(t, 3.0, wastage.Quantity)
	assert.Equal(t, testStamp, wastage.Date)
	assert.Equal(t, 7.0, inventoryOf(t, db, product.ID))
}

func TestWastageCreateDefaultsDateToNow(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	product := seedProduct(t, db, "apple", 10)

	wastage, err := ledger.Create(product.ID, 1, "")
	require.NoError(t, err)
	assert.True(t, ValidStamp(wastage.Date))
}

func TestWastageCreateUnguardedMayGoNegative(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	product := seedProduct(t, db, "apple", 10)

	_, err := ledger.Create(product.ID, 15, testStamp)
	require.NoError(t, err)

	assert.Equal(t, -5.0, inventoryOf(t, db, product.ID))
}

func TestWastageCreateGuardedRejectsOverdraw(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	ledger.GuardCreate = true
	product := seedProduct(t, db, "apple", 10)

	_, err := ledger.Create(product.ID, 15, testStamp)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "apple")
	assert.Contains(t, err.Error(), "catty")

	assert.Equal(t, 10.0, inventoryOf(t, db, product.ID))
	assert.Zero(t, rowCount(t, db, "wastage"))
}

func TestWastageUpdateAppliesDelta(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	product := seedProduct(t, db, "apple", 12)

	wastage, err := ledger.Create(product.ID, 2, testStamp)
	require.NoError(t, err)
	require.Equal(t, 10.0, inventoryOf(t, db, product.ID))

	updated, err := ledger.Update(wastage.ID, nil, ptr(5.0), nil)
	require.NoError(t, err)

	assert.Equal(t, 5.0, updated.Quantity)
	assert.Equal(t, 7.0, inventoryOf(t, db, product.ID))
}

func TestWastageUpdateRejectsOverdraw(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	product := seedProduct(t, db, "apple", 12)

	wastage, err := ledger.Create(product.ID, 2, testStamp)
	require.NoError(t, err)
	require.Equal(t, 10.0, inventoryOf(t, db, product.ID))

	// delta = 18, after = 10 - 18 = -8: rejected, nothing written.
	// A second identical attempt fails identically.
	for i := 0; i < 2; i++ {
		_, err = ledger.Update(wastage.ID, nil, ptr(20.0), nil)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "apple")
		assert.Contains(t, err.Error(), "20")
		assert.Contains(t, err.Error(), "catty")

		assert.Equal(t, 10.0, inventoryOf(t, db, product.ID))
		stored, err := ledger.Load(wastage.ID)
		require.NoError(t, err)
		assert.Equal(t, 2.0, stored.Quantity)
	}
}

func TestWastageDeleteRestoresInventory(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	product := seedProduct(t, db, "apple", 10)

	wastage, err := ledger.Create(product.ID, 4, testStamp)
	require.NoError(t, err)
	require.NoError(t, ledger.Delete(wastage.ID))

	assert.Equal(t, 10.0, inventoryOf(t, db, product.ID))
	assert.Zero(t, rowCount(t, db, "wastage"))
}

func TestWastageRetargetMovesDebitBetweenProducts(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	apple := seedProduct(t, db, "apple", 10)
	pear := seedProduct(t, db, "pear", 8)

	wastage, err := ledger.Create(apple.ID, 3, testStamp)
	require.NoError(t, err)
	require.Equal(t, 7.0, inventoryOf(t, db, apple.ID))

	updated, err := ledger.Update(wastage.ID, ptr(pear.ID), ptr(5.0), nil)
	require.NoError(t, err)

	assert.Equal(t, pear.ID, updated.ProductID)
	assert.Equal(t, 10.0, inventoryOf(t, db, apple.ID))
	assert.Equal(t, 3.0, inventoryOf(t, db, pear.ID))
}

func TestWastageRetargetRejectsOverdrawOnNewProduct(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	apple := seedProduct(t, db, "apple", 10)
	pear := seedProduct(t, db, "pear", 1)

	wastage, err := ledger.Create(apple.ID, 3, testStamp)
	require.NoError(t, err)

	_, err = ledger.Update(wastage.ID, ptr(pear.ID), nil, nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	// Neither product was touched by the rejected move.
	assert.Equal(t, 7.0, inventoryOf(t, db, apple.ID))
	assert.Equal(t, 1.0, inventoryOf(t, db, pear.ID))
	stored, err := ledger.Load(wastage.ID)
	require.NoError(t, err)
	assert.Equal(t, apple.ID, stored.ProductID)
}

func TestWastageCreateRejectsNegativeQuantity(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)
	product := seedProduct(t, db, "apple", 10)

	_, err := ledger.Create(product.ID, -1, testStamp)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 10.0, inventoryOf(t, db, product.ID))
}

func TestWastageDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	ledger := NewWastageLedger(db)

	err := ledger.Delete("missing0000")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
