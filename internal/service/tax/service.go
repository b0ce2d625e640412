package tax

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

// ntaVATThreshold is the VAT registration threshold. The threshold is
// year-independent within the covered ruleset window.
var ntaVATThreshold = decimal.RequireFromString("100000000")

type calculator struct{}

// NewCalculator returns the statutory tax calculation engine.
func NewCalculator() tax.Calculator {
	return &calculator{}
}
