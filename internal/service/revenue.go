package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"fruitshop/m/domain"
	"fruitshop/m/internal/ids"
)

// maxIntegerDigits caps the integer part of every revenue field.
const maxIntegerDigits = 10

// RevenueService persists revenue snapshots after bounds-checking their
// monetary fields.
type RevenueService struct {
	db *sqlx.DB
}

func NewRevenueService(db *sqlx.DB) *RevenueService {
	return &RevenueService{db: db}
}

// RevenueAmounts carries the six monetary fields of a snapshot. Nil
// fields default to zero on create and are left unchanged on update.
type RevenueAmounts struct {
	GrossIncome          *decimal.Decimal
	NetIncome            *decimal.Decimal
	PurchasesExpense     *decimal.Decimal
	PersonnelExpenses    *decimal.Decimal
	MiscellaneousExpense *decimal.Decimal
	Wastage              *decimal.Decimal
}

func (a RevenueAmounts) fields() []struct {
	name  string
	value *decimal.Decimal
} {
	return []struct {
		name  string
		value *decimal.Decimal
	}{
		{"gross_income", a.GrossIncome},
		{"net_income", a.NetIncome},
		{"purchases_expense", a.PurchasesExpense},
		{"personnel_expenses", a.PersonnelExpenses},
		{"miscellaneous_expense", a.MiscellaneousExpense},
		{"wastage", a.Wastage},
	}
}

// apply overwrites r's fields with the non-nil amounts.
func (a RevenueAmounts) apply(r *domain.Revenue) {
	if a.GrossIncome != nil {
		r.GrossIncome = *a.GrossIncome
	}
	if a.NetIncome != nil {
		r.NetIncome = *a.NetIncome
	}
	if a.PurchasesExpense != nil {
		r.PurchasesExpense = *a.PurchasesExpense
	}
	if a.PersonnelExpenses != nil {
		r.PersonnelExpenses = *a.PersonnelExpenses
	}
	if a.MiscellaneousExpense != nil {
		r.MiscellaneousExpense = *a.MiscellaneousExpense
	}
	if a.Wastage != nil {
		r.Wastage = *a.Wastage
	}
}

// integerDigits counts the decimal digits of d's integer part,
// truncated toward zero.
func integerDigits(d decimal.Decimal) int {
	return len(d.Abs().Truncate(0).String())
}

func checkAmounts(a RevenueAmounts) error {
	for _, f := range a.fields() {
		if f.value == nil {
			continue
		}
		if digits := integerDigits(*f.value); digits > maxIntegerDigits {
			return &ValidationError{
				Field:  f.name,
				Reason: fmt.Sprintf("integer part has %d digits, at most %d allowed", digits, maxIntegerDigits),
			}
		}
	}
	return nil
}

func getRevenue(q sqlx.Queryer, id string) (domain.Revenue, error) {
	var r domain.Revenue
	err := sqlx.Get(q, &r,
		`SELECT id, record_date, gross_income, net_income, purchases_expense, personnel_expenses, miscellaneous_expense, wastage
         FROM revenue WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return r, &NotFoundError{Kind: "revenue", ID: id}
	}
	if err != nil {
		return r, fmt.Errorf("load revenue %s: %w", id, err)
	}
	return r, nil
}

// Load returns the revenue snapshot with the given id.
func (s *RevenueService) Load(id string) (domain.Revenue, error) {
	return getRevenue(s.db, id)
}

// Create validates and persists a snapshot dated now. Omitted fields
// default to zero.
func (s *RevenueService) Create(amounts RevenueAmounts) (domain.Revenue, error) {
	var zero domain.Revenue
	if err := checkAmounts(amounts); err != nil {
		return zero, err
	}

	r := domain.Revenue{ID: ids.New(), RecordDate: nowStamp()}
	amounts.apply(&r)

	_, err := s.db.Exec(
		`INSERT INTO revenue (id, record_date, gross_income, net_income, purchases_expense, personnel_expenses, miscellaneous_expense, wastage)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.RecordDate, r.GrossIncome, r.NetIncome, r.PurchasesExpense,
		r.PersonnelExpenses, r.MiscellaneousExpense, r.Wastage)
	if err != nil {
		return zero, fmt.Errorf("insert revenue: %w", err)
	}
	return r, nil
}

// Update overwrites the supplied fields of an existing snapshot after
// re-running the digit check. Omitted fields keep their stored values.
func (s *RevenueService) Update(id string, amounts RevenueAmounts) (domain.Revenue, error) {
	var zero domain.Revenue
	if err := checkAmounts(amounts); err != nil {
		return zero, err
	}

	r, err := s.Load(id)
	if err != nil {
		return zero, err
	}
	amounts.apply(&r)

	_, err = s.db.Exec(
		`UPDATE revenue SET gross_income = $1, net_income = $2, purchases_expense = $3, personnel_expenses = $4, miscellaneous_expense = $5, wastage = $6
         WHERE id = $7`,
		r.GrossIncome, r.NetIncome, r.PurchasesExpense, r.PersonnelExpenses,
		r.MiscellaneousExpense, r.Wastage, r.ID)
	if err != nil {
		return zero, fmt.Errorf("update revenue %s: %w", id, err)
	}
	return r, nil
}

// Delete removes a revenue snapshot.
func (s *RevenueService) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM revenue WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete revenue %s: %w", id, err)
	}
	return nil
}

// List returns a page of snapshots, newest record date first.
func (s *RevenueService) List(page, size int) (Page[domain.Revenue], error) {
	limit, offset, p, sz := clampPaging(page, size)

	var total int64
	if err := s.db.Get(&total, `SELECT COUNT(*) FROM revenue`); err != nil {
		return Page[domain.Revenue]{}, fmt.Errorf("count revenues: %w", err)
	}

	items := []domain.Revenue{}
	err := s.db.Select(&items,
		`SELECT id, record_date, gross_income, net_income, purchases_expense, personnel_expenses, miscellaneous_expense, wastage
         FROM revenue
         ORDER BY record_date DESC, CAST(gross_income AS REAL) ASC, CAST(net_income AS REAL) DESC
         LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return Page[domain.Revenue]{}, fmt.Errorf("list revenues: %w", err)
	}
	return Page[domain.Revenue]{Items: items, Page: p, Size: sz, Total: total}, nil
}
