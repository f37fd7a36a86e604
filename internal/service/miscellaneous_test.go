package service

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitshop/m/internal/ids"
)

func seedExpense(t *testing.T, db *sqlx.DB, name, amount, recordDate string) string {
	t.Helper()
	id := ids.New()
	_, err := db.Exec(
		`INSERT INTO miscellaneous (id, name, amount, record_date) VALUES ($1, $2, $3, $4)`,
		id, name, amount, recordDate)
	require.NoError(t, err)
	return id
}

func TestMiscellaneousCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMiscellaneousService(db)

	created, err := svc.Create("  packing tape ", decimal.NewFromInt(120))
	require.NoError(t, err)

	assert.Equal(t, "packing tape", created.Name)
	assert.Len(t, created.ID, 10)
	assert.True(t, ValidStamp(created.RecordDate))

	stored, err := svc.Load(created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(120)))
}

func TestMiscellaneousCreateRejectsNegativeAmount(t *testing.T) {
	db := newTestDB(t)
	svc := NewMiscellaneousService(db)

	_, err := svc.Create("bad", decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, rowCount(t, db, "miscellaneous"))
}

func TestMiscellaneousUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMiscellaneousService(db)

	created, err := svc.Create("bags", decimal.NewFromInt(40))
	require.NoError(t, err)

	amount := decimal.NewFromInt(55)
	updated, err := svc.Update(created.ID, nil, &amount)
	require.NoError(t, err)
	assert.Equal(t, "bags", updated.Name)
	assert.True(t, updated.Amount.Equal(amount))

	negative := decimal.NewFromInt(-5)
	_, err = svc.Update(created.ID, nil, &negative)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	stored, err := svc.Load(created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(amount))
}

func TestMiscellaneousUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewMiscellaneousService(db)

	_, err := svc.Update("missing0000", ptr("x"), nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestMiscellaneousSumInclusiveRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewMiscellaneousService(db)

	seedExpense(t, db, "before", "10", "2024-04-30 23:59:59")
	seedExpense(t, db, "on begin", "1.50", "2024-05-01 00:00:00")
	seedExpense(t, db, "inside", "2.25", "2024-05-15 12:00:00")
	seedExpense(t, db, "on end", "3", "2024-05-31 23:59:59")
	seedExpense(t, db, "after", "100", "2024-06-01 00:00:00")

	total, err := svc.SumAmountBetweenRecordDate("2024-05-01 00:00:00", "2024-05-31 23:59:59")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("6.75")), "got %s", total)
}

func TestMiscellaneousSumEmptyRangeIsZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewMiscellaneousService(db)

	total, err := svc.SumAmountBetweenRecordDate("2024-05-01 00:00:00", "2024-05-31 23:59:59")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestMiscellaneousListFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewMiscellaneousService(db)

	// Same record date, different amounts: amount ascending breaks the tie.
	seedExpense(t, db, "big", "30", "2024-05-10 10:00:00")
	seedExpense(t, db, "small", "5", "2024-05-10 10:00:00")
	seedExpense(t, db, "newest", "1", "2024-05-20 10:00:00")
	seedExpense(t, db, "outside", "99", "2024-01-01 10:00:00")

	page, err := svc.List(0, 10, "2024-05-01 00:00:00", "2024-05-31 23:59:59")
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, "newest", page.Items[0].Name)
	assert.Equal(t, "small", page.Items[1].Name)
	assert.Equal(t, "big", page.Items[2].Name)
}

func TestMiscellaneousDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewMiscellaneousService(db)

	created, err := svc.Create("rope", decimal.NewFromInt(12))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.Load(created.ID)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
