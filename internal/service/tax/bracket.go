package tax

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

// Progressive walks the ordered band list and returns the total tax on
// base. Bands are [(upperBound, rate)] ascending with the final band
// unbounded. The total is rounded to the kobo once at the end; individual
// bands are never rounded. A negative base is rejected, not floored.
func Progressive(base decimal.Decimal, bands []tax.Band) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, tax.ErrNegativeTaxableBase
	}
	if base.IsZero() {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	lower := decimal.Zero

	for _, band := range bands {
		if band.UpperBound == nil {
			// Final unbounded band takes everything above lower.
			if base.GreaterThan(lower) {
				total = total.Add(base.Sub(lower).Mul(band.Rate))
			}
			break
		}

		if base.LessThanOrEqual(lower) {
			break
		}

		reach := decimal.Min(base, *band.UpperBound)
		total = total.Add(reach.Sub(lower).Mul(band.Rate))
		lower = *band.UpperBound
	}

	return total.Round(2), nil
}
