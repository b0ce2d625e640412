package deduction

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/validator"
)

// UpsertDeductionsRequest creates or replaces the deductions record for
// (account, taxYear). AnnualRentRelief is optional: when supplied it must
// match the derived value within the configured tolerance.
type UpsertDeductionsRequest struct {
	AccountID string `json:"-"`
	TaxYear   int    `json:"tax_year"`

	AnnualPension             decimal.Decimal  `json:"annual_pension"`
	AnnualNHF                 decimal.Decimal  `json:"annual_nhf"`
	AnnualNHIS                decimal.Decimal  `json:"annual_nhis"`
	AnnualHousingLoanInterest decimal.Decimal  `json:"annual_housing_loan_interest"`
	AnnualLifeInsurance       decimal.Decimal  `json:"annual_life_insurance"`
	AnnualRent                decimal.Decimal  `json:"annual_rent"`
	AnnualRentRelief          *decimal.Decimal `json:"annual_rent_relief,omitempty"`

	Source     string  `json:"source"`
	SourceNote *string `json:"source_note,omitempty"`
}

// Validate enforces the deductions validation contract. reliefTolerance
// is the configured absolute tolerance for the supplied rent relief.
func (r *UpsertDeductionsRequest) Validate(reliefTolerance decimal.Decimal) error {
	var errs validator.ValidationErrors

	if !tax.ValidTaxYear(r.TaxYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_year",
			Message: "no ruleset exists for this year; the Nigeria Tax Act 2025 covers tax years 2026-2100",
		})
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"annual_pension", r.AnnualPension},
		{"annual_nhf", r.AnnualNHF},
		{"annual_nhis", r.AnnualNHIS},
		{"annual_housing_loan_interest", r.AnnualHousingLoanInterest},
		{"annual_life_insurance", r.AnnualLifeInsurance},
		{"annual_rent", r.AnnualRent},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: a.field, Message: "must be non-negative"})
		}
	}

	if r.AnnualRentRelief != nil {
		switch {
		case r.AnnualRentRelief.IsNegative():
			errs = append(errs, validator.ValidationError{Field: "annual_rent_relief", Message: "must be non-negative"})
		case !r.AnnualRent.IsPositive():
			// Relief requires its basis: supplied relief without rent is invalid.
			errs = append(errs, validator.ValidationError{Field: "annual_rent_relief", Message: "cannot be supplied without a positive annual_rent"})
		default:
			expected := RentRelief(r.AnnualRent, r.TaxYear)
			if !validator.WithinTolerance(*r.AnnualRentRelief, expected, reliefTolerance) {
				errs = append(errs, validator.ValidationError{
					Field:   "annual_rent_relief",
					Message: "does not match min(annual_rent * 0.20, 500000) = " + expected.StringFixed(2),
				})
			}
		}
	}

	if !Source(r.Source).Valid() {
		errs = append(errs, validator.ValidationError{Field: "source", Message: "must be one of payslip, employer, self_assessment, other"})
	}
	if Source(r.Source) == SourceOther && (r.SourceNote == nil || validator.IsEmpty(*r.SourceNote)) {
		errs = append(errs, validator.ValidationError{Field: "source_note", Message: "is required when source is 'other'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RentRelief derives the statutory rent relief: 20% of annual rent capped
// at ₦500,000, applicable for tax years 2026 and later only.
func RentRelief(annualRent decimal.Decimal, taxYear int) decimal.Decimal {
	if taxYear < tax.MinTaxYear || !annualRent.IsPositive() {
		return decimal.Zero
	}
	rs, err := tax.RulesetFor(taxYear)
	if err != nil {
		return decimal.Zero
	}
	relief := annualRent.Mul(rs.RentReliefRate)
	if relief.GreaterThan(rs.RentReliefCap) {
		return rs.RentReliefCap
	}
	return relief
}

// DeductionsResponse is the wire shape of a deductions record.
type DeductionsResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	TaxYear   int    `json:"tax_year"`

	AnnualPension             decimal.Decimal `json:"annual_pension"`
	AnnualNHF                 decimal.Decimal `json:"annual_nhf"`
	AnnualNHIS                decimal.Decimal `json:"annual_nhis"`
	AnnualHousingLoanInterest decimal.Decimal `json:"annual_housing_loan_interest"`
	AnnualLifeInsurance       decimal.Decimal `json:"annual_life_insurance"`
	AnnualRent                decimal.Decimal `json:"annual_rent"`
	AnnualRentRelief          decimal.Decimal `json:"annual_rent_relief"`

	Source     string  `json:"source"`
	SourceNote *string `json:"source_note,omitempty"`
}
