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

// MiscellaneousService manages incidental expense records. Amounts may
// not be negative.
type MiscellaneousService struct {
	db *sqlx.DB
}

func NewMiscellaneousService(db *sqlx.DB) *MiscellaneousService {
	return &MiscellaneousService{db: db}
}

func getMiscellaneous(q sqlx.Queryer, id string) (domain.Miscellaneous, error) {
	var m domain.Miscellaneous
	err := sqlx.Get(q, &m, `SELECT id, name, amount, record_date FROM miscellaneous WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return m, &NotFoundError{Kind: "miscellaneous", ID: id}
	}
	if err != nil {
		return m, fmt.Errorf("load miscellaneous %s: %w", id, err)
	}
	return m, nil
}

// Load returns the expense record with the given id.
func (s *MiscellaneousService) Load(id string) (domain.Miscellaneous, error) {
	return getMiscellaneous(s.db, id)
}

// Create validates and persists a new expense dated now.
func (s *MiscellaneousService) Create(name string, amount decimal.Decimal) (domain.Miscellaneous, error) {
	var zero domain.Miscellaneous
	name = strings.TrimSpace(name)
	if name == "" {
		return zero, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if amount.IsNegative() {
		return zero, &ValidationError{Field: "amount", Reason: "must not be less than zero"}
	}

	m := domain.Miscellaneous{
		ID:         ids.New(),
		Name:       name,
		Amount:     amount,
		RecordDate: nowStamp(),
	}
	_, err := s.db.Exec(
		`INSERT INTO miscellaneous (id, name, amount, record_date) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Name, m.Amount, m.RecordDate)
	if err != nil {
		return zero, fmt.Errorf("insert miscellaneous: %w", err)
	}
	return m, nil
}

// Update overwrites name and amount where supplied.
func (s *MiscellaneousService) Update(id string, name *string, amount *decimal.Decimal) (domain.Miscellaneous, error) {
	var zero domain.Miscellaneous
	m, err := s.Load(id)
	if err != nil {
		return zero, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return zero, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		m.Name = trimmed
	}
	if amount != nil {
		if amount.IsNegative() {
			return zero, &ValidationError{Field: "amount", Reason: "must not be less than zero"}
		}
		m.Amount = *amount
	}

	_, err = s.db.Exec(
		`UPDATE miscellaneous SET name = $1, amount = $2 WHERE id = $3`,
		m.Name, m.Amount, m.ID)
	if err != nil {
		return zero, fmt.Errorf("update miscellaneous %s: %w", id, err)
	}
	return m, nil
}

// Delete removes an expense record.
func (s *MiscellaneousService) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM miscellaneous WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete miscellaneous %s: %w", id, err)
	}
	return nil
}

// SumAmountBetweenRecordDate sums the amounts of all records whose
// record date lies in [begin, end], both inclusive. The sum is computed
// in Go so decimal addition stays exact; it is zero when nothing
// matches.
func (s *MiscellaneousService) SumAmountBetweenRecordDate(begin, end string) (decimal.Decimal, error) {
	if !ValidStamp(begin) {
		return decimal.Zero, &ValidationError{Field: "begin", Reason: "must be a YYYY-MM-DD HH:MM:SS timestamp"}
	}
	if !ValidStamp(end) {
		return decimal.Zero, &ValidationError{Field: "end", Reason: "must be a YYYY-MM-DD HH:MM:SS timestamp"}
	}

	var amounts []decimal.Decimal
	err := s.db.Select(&amounts,
		`SELECT amount FROM miscellaneous WHERE record_date >= $1 AND record_date <= $2`,
		begin, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum miscellaneous amounts: %w", err)
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}

// List returns a page of expenses with an optional record-date range
// filter. Sort order is fixed: record date desc, amount asc, name desc.
func (s *MiscellaneousService) List(page, size int, begin, end string) (Page[domain.Miscellaneous], error) {
	limit, offset, p, sz := clampPaging(page, size)

	var (
		clauses []string
		args    []any
	)
	if begin != "" {
		if !ValidStamp(begin) {
			return Page[domain.Miscellaneous]{}, &ValidationError{Field: "begin", Reason: "must be a YYYY-MM-DD HH:MM:SS timestamp"}
		}
		args = append(args, begin)
		clauses = append(clauses, fmt.Sprintf("record_date >= $%d", len(args)))
	}
	if end != "" {
		if !ValidStamp(end) {
			return Page[domain.Miscellaneous]{}, &ValidationError{Field: "end", Reason: "must be a YYYY-MM-DD HH:MM:SS timestamp"}
		}
		args = append(args, end)
		clauses = append(clauses, fmt.Sprintf("record_date <= $%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int64
	if err := s.db.Get(&total, `SELECT COUNT(*) FROM miscellaneous`+where, args...); err != nil {
		return Page[domain.Miscellaneous]{}, fmt.Errorf("count miscellaneous: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, name, amount, record_date FROM miscellaneous%s
         ORDER BY record_date DESC, CAST(amount AS REAL) ASC, name DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	items := []domain.Miscellaneous{}
	if err := s.db.Select(&items, query, args...); err != nil {
		return Page[domain.Miscellaneous]{}, fmt.Errorf("list miscellaneous: %w", err)
	}
	return Page[domain.Miscellaneous]{Items: items, Page: p, Size: sz, Total: total}, nil
}
