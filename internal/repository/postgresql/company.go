package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/company"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_account_id, name, rc_number, annual_turnover, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.OwnerAccountID, &c.Name, &c.RCNumber, &c.AnnualTurnover, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}

func (r *companyRepository) UpsertTaxProfile(ctx context.Context, profile company.TaxProfile) (company.TaxProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_tax_profiles (
			company_id, tax_year, turnover, cit_rate, is_small_company_exempt, vat_obligated
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, tax_year) DO UPDATE SET
			turnover = EXCLUDED.turnover,
			cit_rate = EXCLUDED.cit_rate,
			is_small_company_exempt = EXCLUDED.is_small_company_exempt,
			vat_obligated = EXCLUDED.vat_obligated,
			updated_at = NOW()
		RETURNING id, company_id, tax_year, turnover, cit_rate, is_small_company_exempt, vat_obligated,
			created_at, updated_at
	`

	var p company.TaxProfile
	err := q.QueryRow(ctx, query,
		profile.CompanyID, profile.TaxYear, profile.Turnover, profile.CITRate,
		profile.IsSmallCompanyExempt, profile.VATObligated,
	).Scan(
		&p.ID, &p.CompanyID, &p.TaxYear, &p.Turnover, &p.CITRate, &p.IsSmallCompanyExempt, &p.VATObligated,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return company.TaxProfile{}, fmt.Errorf("failed to upsert tax profile: %w", err)
	}

	return p, nil
}

func (r *companyRepository) GetTaxProfile(ctx context.Context, companyID string, taxYear int) (company.TaxProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, tax_year, turnover, cit_rate, is_small_company_exempt, vat_obligated,
			   created_at, updated_at
		FROM company_tax_profiles
		WHERE company_id = $1 AND tax_year = $2
	`

	var p company.TaxProfile
	err := q.QueryRow(ctx, query, companyID, taxYear).Scan(
		&p.ID, &p.CompanyID, &p.TaxYear, &p.Turnover, &p.CITRate, &p.IsSmallCompanyExempt, &p.VATObligated,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.TaxProfile{}, company.ErrTaxProfileNotFound
		}
		return company.TaxProfile{}, fmt.Errorf("failed to get tax profile: %w", err)
	}

	return p, nil
}
