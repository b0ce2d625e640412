package company

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/validator"
)

// ClassifyRequest asks for a company's CIT and VAT classification.
type ClassifyRequest struct {
	CompanyID string          `json:"-"`
	Turnover  decimal.Decimal `json:"turnover"`
	TaxYear   int             `json:"tax_year"`
}

func (r *ClassifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Turnover.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "turnover", Message: "must be non-negative"})
	}
	if !tax.ValidTaxYear(r.TaxYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_year",
			Message: "no ruleset exists for this year; the Nigeria Tax Act 2025 covers tax years 2026-2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TaxProfileResponse is the wire shape of a stored classification.
type TaxProfileResponse struct {
	CompanyID            string          `json:"company_id"`
	TaxYear              int             `json:"tax_year"`
	Turnover             decimal.Decimal `json:"turnover"`
	CITRate              decimal.Decimal `json:"cit_rate"`
	IsSmallCompanyExempt bool            `json:"is_small_company_exempt"`
	VATObligated         bool            `json:"vat_obligated"`
}
