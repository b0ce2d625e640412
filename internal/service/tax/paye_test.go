package tax

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

func boolPtr(b bool) *bool { return &b }

func allFlags(pension, nhf, nhis bool) tax.BenefitFlags {
	return tax.BenefitFlags{
		HasPension: boolPtr(pension),
		HasNHF:     boolPtr(nhf),
		HasNHIS:    boolPtr(nhis),
	}
}

func TestComputePAYE(t *testing.T) {
	calc := NewCalculator()

	t.Run("full statutory contributions", func(t *testing.T) {
		got, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: decimal.NewFromInt(250_000),
			Flags:       allFlags(true, true, true),
			TaxYear:     2026,
		})
		require.NoError(t, err)

		assert.True(t, got.EmployeePensionContrib.Equal(decimal.NewFromInt(20_000)), "pension = %s", got.EmployeePensionContrib)
		assert.True(t, got.NHFContribution.Equal(decimal.NewFromInt(6_250)), "nhf = %s", got.NHFContribution)
		assert.True(t, got.NHISContribution.Equal(decimal.NewFromInt(12_500)), "nhis = %s", got.NHISContribution)
		assert.True(t, got.AnnualTaxableIncome.Equal(decimal.NewFromInt(1_735_000)), "taxable = %s", got.AnnualTaxableIncome)
		assert.True(t, got.PAYE.Equal(decimal.RequireFromString("11687.50")), "paye = %s", got.PAYE)
		assert.True(t, got.NetSalary.Equal(decimal.RequireFromString("199562.50")), "net = %s", got.NetSalary)
	})

	t.Run("no contributions when flags false", func(t *testing.T) {
		got, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: decimal.NewFromInt(250_000),
			Flags:       allFlags(false, false, false),
			TaxYear:     2026,
		})
		require.NoError(t, err)

		assert.True(t, got.EmployeePensionContrib.IsZero())
		assert.True(t, got.NHFContribution.IsZero())
		assert.True(t, got.NHISContribution.IsZero())
		// Annual gross 3,000,000 less CRA 800,000 leaves 2,200,000 taxable.
		assert.True(t, got.AnnualTaxableIncome.Equal(decimal.NewFromInt(2_200_000)), "taxable = %s", got.AnnualTaxableIncome)
	})

	t.Run("zero tax below annual exemption", func(t *testing.T) {
		got, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: decimal.NewFromInt(50_000),
			Flags:       allFlags(false, false, false),
			TaxYear:     2026,
		})
		require.NoError(t, err)

		assert.True(t, got.PAYE.IsZero(), "paye = %s", got.PAYE)
		assert.True(t, got.NetSalary.Equal(decimal.NewFromInt(50_000)), "net = %s", got.NetSalary)
	})

	t.Run("taxable income floored at zero", func(t *testing.T) {
		got, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: decimal.NewFromInt(20_000),
			Flags:       allFlags(true, true, true),
			Deductions: tax.AnnualDeductions{
				Rent: decimal.NewFromInt(2_000_000),
			},
			TaxYear: 2026,
		})
		require.NoError(t, err)

		assert.True(t, got.AnnualTaxableIncome.IsZero(), "taxable = %s", got.AnnualTaxableIncome)
		assert.True(t, got.PAYE.IsZero())
	})

	t.Run("net plus deductions round-trips to gross", func(t *testing.T) {
		gross := decimal.RequireFromString("437500.33")
		got, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: gross,
			Flags:       allFlags(true, true, false),
			TaxYear:     2026,
		})
		require.NoError(t, err)

		sum := got.NetSalary.
			Add(got.EmployeePensionContrib).
			Add(got.NHFContribution).
			Add(got.NHISContribution).
			Add(got.PAYE)
		assert.True(t, sum.Equal(gross), "net + deductions = %s, want %s", sum, gross)
	})

	t.Run("missing pension flag", func(t *testing.T) {
		_, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: decimal.NewFromInt(250_000),
			Flags: tax.BenefitFlags{
				HasNHF:  boolPtr(true),
				HasNHIS: boolPtr(true),
			},
			TaxYear: 2026,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, tax.ErrMissingBenefitFlag)
	})

	t.Run("negative gross salary", func(t *testing.T) {
		_, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: decimal.NewFromInt(-1),
			Flags:       allFlags(true, true, true),
			TaxYear:     2026,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, tax.ErrNegativeTaxableBase)
	})

	t.Run("tax year before regime", func(t *testing.T) {
		_, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: decimal.NewFromInt(250_000),
			Flags:       allFlags(true, true, true),
			TaxYear:     2025,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, tax.ErrInvalidTaxYear))
	})
}
