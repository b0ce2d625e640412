package tax

import "github.com/shopspring/decimal"

// Calculator is the pure tax computation engine. All methods are
// deterministic and side-effect free; callers persist the results.
type Calculator interface {
	ComputePAYE(input PAYEInput) (PAYEBreakdown, error)
	ClassifyCIT(turnover decimal.Decimal, taxYear int) (CITClassification, error)
	CheckVATObligation(turnover decimal.Decimal) VATStatus
}
