package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/company"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

type TaxProfileServiceImpl struct {
	companyRepo company.CompanyRepository
	calc        tax.Calculator
}

func NewTaxProfileService(companyRepo company.CompanyRepository, calc tax.Calculator) company.TaxProfileService {
	return &TaxProfileServiceImpl{
		companyRepo: companyRepo,
		calc:        calc,
	}
}

// Classify derives the company's CIT bucket and VAT obligation from its
// turnover and persists the profile for the tax year. Re-classifying the
// same (company, taxYear) replaces the stored profile.
func (s *TaxProfileServiceImpl) Classify(ctx context.Context, req company.ClassifyRequest) (company.TaxProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return company.TaxProfileResponse{}, err
	}

	if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.TaxProfileResponse{}, err
		}
		return company.TaxProfileResponse{}, fmt.Errorf("failed to load company: %w", err)
	}

	cit, err := s.calc.ClassifyCIT(req.Turnover, req.TaxYear)
	if err != nil {
		return company.TaxProfileResponse{}, err
	}
	vat := s.calc.CheckVATObligation(req.Turnover)

	profile, err := s.companyRepo.UpsertTaxProfile(ctx, company.TaxProfile{
		CompanyID:            req.CompanyID,
		TaxYear:              req.TaxYear,
		Turnover:             req.Turnover,
		CITRate:              cit.Rate,
		IsSmallCompanyExempt: cit.IsSmallCompanyExempt,
		VATObligated:         vat.Obligated,
	})
	if err != nil {
		return company.TaxProfileResponse{}, fmt.Errorf("failed to store tax profile: %w", err)
	}

	return toProfileResponse(profile), nil
}

func (s *TaxProfileServiceImpl) GetProfile(ctx context.Context, companyID string, taxYear int) (company.TaxProfileResponse, error) {
	if !tax.ValidTaxYear(taxYear) {
		return company.TaxProfileResponse{}, tax.InvalidTaxYearError(taxYear)
	}

	profile, err := s.companyRepo.GetTaxProfile(ctx, companyID, taxYear)
	if err != nil {
		return company.TaxProfileResponse{}, err
	}
	return toProfileResponse(profile), nil
}

func toProfileResponse(p company.TaxProfile) company.TaxProfileResponse {
	return company.TaxProfileResponse{
		CompanyID:            p.CompanyID,
		TaxYear:              p.TaxYear,
		Turnover:             p.Turnover,
		CITRate:              p.CITRate,
		IsSmallCompanyExempt: p.IsSmallCompanyExempt,
		VATObligated:         p.VATObligated,
	}
}
