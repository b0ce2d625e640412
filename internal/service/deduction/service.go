package deduction

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/deduction"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

type DeductionsServiceImpl struct {
	repo deduction.DeductionsRepository

	// reliefTolerance is the absolute tolerance applied when a client
	// supplies a pre-computed rent relief figure.
	reliefTolerance decimal.Decimal
}

func NewDeductionsService(repo deduction.DeductionsRepository, reliefTolerance decimal.Decimal) deduction.DeductionsService {
	return &DeductionsServiceImpl{
		repo:            repo,
		reliefTolerance: reliefTolerance,
	}
}

// Upsert creates or replaces the deductions record for (account, taxYear).
// The stored rent relief is always re-derived from the rent figure; a
// supplied relief only has to agree within the configured tolerance.
func (s *DeductionsServiceImpl) Upsert(ctx context.Context, req deduction.UpsertDeductionsRequest) (deduction.DeductionsResponse, error) {
	if err := req.Validate(s.reliefTolerance); err != nil {
		return deduction.DeductionsResponse{}, err
	}

	record := deduction.EmploymentDeductions{
		AccountID: req.AccountID,
		TaxYear:   req.TaxYear,

		AnnualPension:             req.AnnualPension,
		AnnualNHF:                 req.AnnualNHF,
		AnnualNHIS:                req.AnnualNHIS,
		AnnualHousingLoanInterest: req.AnnualHousingLoanInterest,
		AnnualLifeInsurance:       req.AnnualLifeInsurance,
		AnnualRent:                req.AnnualRent,
		AnnualRentRelief:          deduction.RentRelief(req.AnnualRent, req.TaxYear),

		Source:     deduction.Source(req.Source),
		SourceNote: req.SourceNote,
	}

	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return deduction.DeductionsResponse{}, err
	}
	return toResponse(saved), nil
}

func (s *DeductionsServiceImpl) Get(ctx context.Context, accountID string, taxYear int) (deduction.DeductionsResponse, error) {
	if !tax.ValidTaxYear(taxYear) {
		return deduction.DeductionsResponse{}, tax.InvalidTaxYearError(taxYear)
	}

	record, err := s.repo.GetByAccountYear(ctx, accountID, taxYear)
	if err != nil {
		return deduction.DeductionsResponse{}, err
	}
	return toResponse(record), nil
}

func (s *DeductionsServiceImpl) Delete(ctx context.Context, accountID string, taxYear int) error {
	if !tax.ValidTaxYear(taxYear) {
		return tax.InvalidTaxYearError(taxYear)
	}
	return s.repo.Delete(ctx, accountID, taxYear)
}

func toResponse(r deduction.EmploymentDeductions) deduction.DeductionsResponse {
	return deduction.DeductionsResponse{
		ID:        r.ID,
		AccountID: r.AccountID,
		TaxYear:   r.TaxYear,

		AnnualPension:             r.AnnualPension,
		AnnualNHF:                 r.AnnualNHF,
		AnnualNHIS:                r.AnnualNHIS,
		AnnualHousingLoanInterest: r.AnnualHousingLoanInterest,
		AnnualLifeInsurance:       r.AnnualLifeInsurance,
		AnnualRent:                r.AnnualRent,
		AnnualRentRelief:          r.AnnualRentRelief,

		Source:     string(r.Source),
		SourceNote: r.SourceNote,
	}
}
