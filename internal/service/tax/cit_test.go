package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

func TestClassifyCIT(t *testing.T) {
	calc := NewCalculator()

	cases := []struct {
		name       string
		turnover   string
		wantRate   string
		wantExempt bool
	}{
		{"zero turnover", "0", "0", true},
		{"small company", "49999999.99", "0", true},
		{"exactly at threshold", "50000000", "0.30", false},
		{"above threshold", "120000000", "0.30", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calc.ClassifyCIT(decimal.RequireFromString(c.turnover), 2026)
			require.NoError(t, err)

			assert.Equal(t, c.wantExempt, got.IsSmallCompanyExempt)
			assert.True(t, got.Rate.Equal(decimal.RequireFromString(c.wantRate)), "rate = %s", got.Rate)
			assert.Equal(t, 2026, got.TaxYear)
		})
	}

	t.Run("rejects pre-regime tax year", func(t *testing.T) {
		_, err := calc.ClassifyCIT(decimal.NewFromInt(10_000_000), 2020)
		require.Error(t, err)
		assert.ErrorIs(t, err, tax.ErrInvalidTaxYear)
	})
}

func TestCheckVATObligation(t *testing.T) {
	calc := NewCalculator()

	cases := []struct {
		name     string
		turnover string
		want     bool
	}{
		{"below threshold", "99999999.99", false},
		{"exactly at threshold", "100000000", false},
		{"just above threshold", "100000000.01", true},
		{"well above threshold", "500000000", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := calc.CheckVATObligation(decimal.RequireFromString(c.turnover))
			assert.Equal(t, c.want, got.Obligated)
			assert.True(t, got.Threshold.Equal(decimal.NewFromInt(100_000_000)))
		})
	}
}
