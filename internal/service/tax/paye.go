package tax

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

// ComputePAYE runs one employee's periodic PAYE computation:
//
//  1. derive CRA from annualized gross
//  2. subtract the flag-eligible statutory contributions and the record's
//     allowable deductions (rent relief, housing loan interest, life
//     insurance)
//  3. taxable income = gross - deductions - CRA, floored at zero
//  4. progressive bands with the first ₦800,000 at 0%
//  5. net salary = gross - employee contributions - PAYE
//
// Pure computation; the caller persists the result.
func (c *calculator) ComputePAYE(input tax.PAYEInput) (tax.PAYEBreakdown, error) {
	rs, err := tax.RulesetFor(input.TaxYear)
	if err != nil {
		return tax.PAYEBreakdown{}, err
	}

	if err := requireFlags(input.Flags); err != nil {
		return tax.PAYEBreakdown{}, err
	}
	if input.GrossSalary.IsNegative() {
		return tax.PAYEBreakdown{}, tax.ErrNegativeTaxableBase
	}

	resolved := ResolveDeductions(input.GrossSalary, input.Flags, input.Deductions, rs)

	annualGross := input.GrossSalary.Mul(twelve)
	annualContribs := resolved.MonthlyEmployeePension.
		Add(resolved.MonthlyNHF).
		Add(resolved.MonthlyNHIS).
		Mul(twelve)

	annualTaxable := annualGross.
		Sub(annualContribs).
		Sub(resolved.AnnualRentRelief).
		Sub(resolved.AnnualOther).
		Sub(resolved.AnnualCRA)
	if annualTaxable.IsNegative() {
		annualTaxable = decimal.Zero
	}

	annualPAYE, err := Progressive(annualTaxable, rs.Bands)
	if err != nil {
		return tax.PAYEBreakdown{}, err
	}

	monthlyPAYE := annualPAYE.Div(twelve).Round(2)

	monthlyContribs := resolved.MonthlyEmployeePension.
		Add(resolved.MonthlyNHF).
		Add(resolved.MonthlyNHIS)
	netSalary := input.GrossSalary.Sub(monthlyContribs).Sub(monthlyPAYE)

	return tax.PAYEBreakdown{
		GrossSalary:              input.GrossSalary,
		EmployeePensionContrib:   resolved.MonthlyEmployeePension,
		EmployerPensionContrib:   resolved.MonthlyEmployerPension,
		NHFContribution:          resolved.MonthlyNHF,
		NHISContribution:         resolved.MonthlyNHIS,
		CRA:                      resolved.AnnualCRA.Div(twelve).Round(2),
		RentRelief:               resolved.AnnualRentRelief,
		OtherAllowableDeductions: resolved.AnnualOther,
		TaxableIncome:            annualTaxable.Div(twelve).Round(2),
		PAYE:                     monthlyPAYE,
		NetSalary:                netSalary,
		AnnualTaxableIncome:      annualTaxable,
		TaxYear:                  input.TaxYear,
	}, nil
}

// requireFlags rejects computation when any benefit eligibility flag was
// never recorded. Absence is a data-integrity error, not false.
func requireFlags(flags tax.BenefitFlags) error {
	if flags.HasPension == nil {
		return tax.MissingFlagError("has_pension")
	}
	if flags.HasNHF == nil {
		return tax.MissingFlagError("has_nhf")
	}
	if flags.HasNHIS == nil {
		return tax.MissingFlagError("has_nhis")
	}
	return nil
}
