package salary

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRecordNotFound = errors.New("salary record not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, record SalaryRecord) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO salary_records (employee_name, basic_pay, allowance_hra, allowance_da, allowance_travel,
      deduction_pf, deduction_tax, deduction_loans)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `,
		record.EmployeeName, record.BasicPay,
		record.Allowances.HRA, record.Allowances.DA, record.Allowances.Travel,
		record.Deductions.PF, record.Deductions.Tax, record.Deductions.Loans,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, recordID string) (*SalaryRecord, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, employee_name, basic_pay, allowance_hra, allowance_da, allowance_travel,
           deduction_pf, deduction_tax, deduction_loans, created_at
    FROM salary_records
    WHERE id = $1
  `, recordID)

	var record SalaryRecord
	err := row.Scan(
		&record.ID, &record.EmployeeName, &record.BasicPay,
		&record.Allowances.HRA, &record.Allowances.DA, &record.Allowances.Travel,
		&record.Deductions.PF, &record.Deductions.Tax, &record.Deductions.Loans,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) List(ctx context.Context) ([]SalaryRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_name, basic_pay, allowance_hra, allowance_da, allowance_travel,
           deduction_pf, deduction_tax, deduction_loans, created_at
    FROM salary_records
    ORDER BY created_at, id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SalaryRecord
	for rows.Next() {
		var record SalaryRecord
		if err := rows.Scan(
			&record.ID, &record.EmployeeName, &record.BasicPay,
			&record.Allowances.HRA, &record.Allowances.DA, &record.Allowances.Travel,
			&record.Deductions.PF, &record.Deductions.Tax, &record.Deductions.Loans,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}
