package tax

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

// CheckVATObligation is a pure threshold check: obligation only when
// turnover exceeds the registration threshold. Downstream invoice VAT
// computation is gated on this result.
func (c *calculator) CheckVATObligation(turnover decimal.Decimal) tax.VATStatus {
	return tax.VATStatus{
		Turnover:  turnover,
		Threshold: ntaVATThreshold,
		Obligated: turnover.GreaterThan(ntaVATThreshold),
	}
}
