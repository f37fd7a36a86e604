package domain

import "github.com/shopspring/decimal"

// Revenue is a periodic financial snapshot, independent of inventory.
// The integer part of each monetary field may not exceed ten digits.
type Revenue struct {
	ID                   string          `db:"id" json:"id"`
	RecordDate           string          `db:"record_date" json:"record_date"`
	GrossIncome          decimal.Decimal `db:"gross_income" json:"gross_income"`
	NetIncome            decimal.Decimal `db:"net_income" json:"net_income"`
	PurchasesExpense     decimal.Decimal `db:"purchases_expense" json:"purchases_expense"`
	PersonnelExpenses    decimal.Decimal `db:"personnel_expenses" json:"personnel_expenses"`
	MiscellaneousExpense decimal.Decimal `db:"miscellaneous_expense" json:"miscellaneous_expense"`
	Wastage              decimal.Decimal `db:"wastage" json:"wastage"`
}
