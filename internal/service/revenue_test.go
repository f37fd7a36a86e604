package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func TestRevenueCreateDefaultsToZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewRevenueService(db)

	created, err := svc.Create(RevenueAmounts{})
	require.NoError(t, err)

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, today, created.RecordDate[:10])

	stored, err := svc.Load(created.ID)
	require.NoError(t, err)
	for _, field := range []decimal.Decimal{
		stored.GrossIncome, stored.NetIncome, stored.PurchasesExpense,
		stored.PersonnelExpenses, stored.MiscellaneousExpense, stored.Wastage,
	} {
		assert.True(t, field.IsZero())
	}
}

func TestRevenueCreateAcceptsTenIntegerDigits(t *testing.T) {
	db := newTestDB(t)
	svc := NewRevenueService(db)

	created, err := svc.Create(RevenueAmounts{
		GrossIncome: dec(t, "9999999999.99"),
		NetIncome:   dec(t, "-9999999999"),
	})
	require.NoError(t, err)

	stored, err := svc.Load(created.ID)
	require.NoError(t, err)
	assert.True(t, stored.GrossIncome.Equal(*dec(t, "9999999999.99")))
	assert.True(t, stored.NetIncome.Equal(*dec(t, "-9999999999")))
}

func TestRevenueCreateRejectsElevenIntegerDigits(t *testing.T) {
	db := newTestDB(t)
	svc := NewRevenueService(db)

	_, err := svc.Create(RevenueAmounts{PurchasesExpense: dec(t, "10000000000")})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "purchases_expense")
	assert.Contains(t, err.Error(), "11")
	assert.Zero(t, rowCount(t, db, "revenue"))
}

func TestRevenueUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewRevenueService(db)

	created, err := svc.Create(RevenueAmounts{GrossIncome: dec(t, "100")})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, RevenueAmounts{NetIncome: dec(t, "50")})
	require.NoError(t, err)

	assert.True(t, updated.GrossIncome.Equal(*dec(t, "100")))
	assert.True(t, updated.NetIncome.Equal(*dec(t, "50")))
	assert.Equal(t, created.RecordDate, updated.RecordDate)
}

func TestRevenueUpdateRejectsOversizedField(t *testing.T) {
	db := newTestDB(t)
	svc := NewRevenueService(db)

	created, err := svc.Create(RevenueAmounts{Wastage: dec(t, "5")})
	require.NoError(t, err)

	_, err = svc.Update(created.ID, RevenueAmounts{Wastage: dec(t, "123456789012")})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "wastage")

	stored, err := svc.Load(created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Wastage.Equal(*dec(t, "5")))
}

func TestRevenueUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewRevenueService(db)

	_, err := svc.Update("missing0000", RevenueAmounts{})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestIntegerDigits(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"0", 1},
		{"0.99", 1},
		{"9", 1},
		{"-9", 1},
		{"9999999999", 10},
		{"10000000000", 11},
		{"-10000000000.5", 11},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, integerDigits(*dec(t, c.value)), "value %s", c.value)
	}
}
