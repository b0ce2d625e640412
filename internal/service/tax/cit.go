package tax

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

// ClassifyCIT buckets a company by turnover. Below the small-company cap
// the CIT rate is 0%; at or above it the standard rate applies to taxable
// profit, not turnover.
func (c *calculator) ClassifyCIT(turnover decimal.Decimal, taxYear int) (tax.CITClassification, error) {
	rs, err := tax.RulesetFor(taxYear)
	if err != nil {
		return tax.CITClassification{}, err
	}
	if turnover.IsNegative() {
		return tax.CITClassification{}, tax.ErrNegativeTaxableBase
	}

	out := tax.CITClassification{
		TaxYear:  taxYear,
		Turnover: turnover,
	}
	if turnover.LessThan(rs.SmallCompanyTurnoverCap) {
		out.Rate = decimal.Zero
		out.IsSmallCompanyExempt = true
		return out, nil
	}

	out.Rate = rs.StandardCITRate
	out.IsSmallCompanyExempt = false
	return out, nil
}
