package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/deduction"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/database"
)

type deductionsRepository struct {
	db *database.DB
}

func NewDeductionsRepository(db *database.DB) deduction.DeductionsRepository {
	return &deductionsRepository{db: db}
}

func (r *deductionsRepository) Upsert(ctx context.Context, record deduction.EmploymentDeductions) (deduction.EmploymentDeductions, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employment_deductions (
			account_id, tax_year, annual_pension, annual_nhf, annual_nhis,
			annual_housing_loan_interest, annual_life_insurance,
			annual_rent, annual_rent_relief, source, source_note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (account_id, tax_year) DO UPDATE SET
			annual_pension = EXCLUDED.annual_pension,
			annual_nhf = EXCLUDED.annual_nhf,
			annual_nhis = EXCLUDED.annual_nhis,
			annual_housing_loan_interest = EXCLUDED.annual_housing_loan_interest,
			annual_life_insurance = EXCLUDED.annual_life_insurance,
			annual_rent = EXCLUDED.annual_rent,
			annual_rent_relief = EXCLUDED.annual_rent_relief,
			source = EXCLUDED.source,
			source_note = EXCLUDED.source_note,
			updated_at = NOW()
		RETURNING id, account_id, tax_year, annual_pension, annual_nhf, annual_nhis,
			annual_housing_loan_interest, annual_life_insurance,
			annual_rent, annual_rent_relief, source, source_note,
			created_at, updated_at
	`

	var d deduction.EmploymentDeductions
	err := q.QueryRow(ctx, query,
		record.AccountID, record.TaxYear, record.AnnualPension, record.AnnualNHF, record.AnnualNHIS,
		record.AnnualHousingLoanInterest, record.AnnualLifeInsurance,
		record.AnnualRent, record.AnnualRentRelief, record.Source, record.SourceNote,
	).Scan(
		&d.ID, &d.AccountID, &d.TaxYear, &d.AnnualPension, &d.AnnualNHF, &d.AnnualNHIS,
		&d.AnnualHousingLoanInterest, &d.AnnualLifeInsurance,
		&d.AnnualRent, &d.AnnualRentRelief, &d.Source, &d.SourceNote,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return deduction.EmploymentDeductions{}, fmt.Errorf("failed to upsert deductions: %w", err)
	}

	return d, nil
}

func (r *deductionsRepository) GetByAccountYear(ctx context.Context, accountID string, taxYear int) (deduction.EmploymentDeductions, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, account_id, tax_year, annual_pension, annual_nhf, annual_nhis,
			   annual_housing_loan_interest, annual_life_insurance,
			   annual_rent, annual_rent_relief, source, source_note,
			   created_at, updated_at
		FROM employment_deductions
		WHERE account_id = $1 AND tax_year = $2
	`

	var d deduction.EmploymentDeductions
	err := q.QueryRow(ctx, query, accountID, taxYear).Scan(
		&d.ID, &d.AccountID, &d.TaxYear, &d.AnnualPension, &d.AnnualNHF, &d.AnnualNHIS,
		&d.AnnualHousingLoanInterest, &d.AnnualLifeInsurance,
		&d.AnnualRent, &d.AnnualRentRelief, &d.Source, &d.SourceNote,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return deduction.EmploymentDeductions{}, deduction.ErrDeductionsNotFound
		}
		return deduction.EmploymentDeductions{}, fmt.Errorf("failed to get deductions: %w", err)
	}

	return d, nil
}

func (r *deductionsRepository) Delete(ctx context.Context, accountID string, taxYear int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employment_deductions WHERE account_id = $1 AND tax_year = $2`, accountID, taxYear)
	if err != nil {
		return fmt.Errorf("failed to delete deductions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return deduction.ErrDeductionsNotFound
	}
	return nil
}
