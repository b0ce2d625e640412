package tax

import "github.com/shopspring/decimal"

// MinTaxYear is the first tax year covered by the Nigeria Tax Act 2025
// ruleset. No ruleset exists for earlier years.
const (
	MinTaxYear = 2026
	MaxTaxYear = 2100
)

// Band is one progressive tax band. UpperBound nil means the band is
// unbounded (the final band).
type Band struct {
	UpperBound *decimal.Decimal
	Rate       decimal.Decimal
}

// Ruleset holds the versioned statutory parameters for one tax year.
type Ruleset struct {
	TaxYear int

	// Personal income tax bands, annual Naira amounts, ascending.
	Bands []Band

	// Annual exemption: taxable income at or below this is taxed at 0%
	// (encoded as the first band's zero rate).
	AnnualExemption decimal.Decimal

	// Statutory contribution rates applied to gross salary.
	EmployeePensionRate decimal.Decimal
	EmployerPensionRate decimal.Decimal
	NHFRate             decimal.Decimal
	NHISRate            decimal.Decimal

	// Rent relief: RentReliefRate of annual rent, capped at RentReliefCap.
	RentReliefRate decimal.Decimal
	RentReliefCap  decimal.Decimal

	// CRA parameters: max(CRAFloor, CRABaseRate*gross) + CRAGrossRate*gross.
	CRAFloor     decimal.Decimal
	CRABaseRate  decimal.Decimal
	CRAGrossRate decimal.Decimal

	// Company income tax.
	SmallCompanyTurnoverCap decimal.Decimal
	StandardCITRate         decimal.Decimal

	// VAT registration threshold: obligation only above this turnover.
	VATTurnoverThreshold decimal.Decimal
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func upper(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ntaRuleset is the Nigeria Tax Act 2025 parameter set, effective for tax
// years 2026 and later. Amounts are annual Naira.
var ntaRuleset = Ruleset{
	Bands: []Band{
		{UpperBound: upper("800000"), Rate: dec("0")},
		{UpperBound: upper("3000000"), Rate: dec("0.15")},
		{UpperBound: upper("12000000"), Rate: dec("0.18")},
		{UpperBound: upper("25000000"), Rate: dec("0.21")},
		{UpperBound: upper("50000000"), Rate: dec("0.23")},
		{UpperBound: nil, Rate: dec("0.25")},
	},
	AnnualExemption: dec("800000"),

	EmployeePensionRate: dec("0.08"),
	EmployerPensionRate: dec("0.10"),
	NHFRate:             dec("0.025"),
	NHISRate:            dec("0.05"),

	RentReliefRate: dec("0.20"),
	RentReliefCap:  dec("500000"),

	CRAFloor:     dec("200000"),
	CRABaseRate:  dec("0.01"),
	CRAGrossRate: dec("0.20"),

	SmallCompanyTurnoverCap: dec("50000000"),
	StandardCITRate:         dec("0.30"),

	VATTurnoverThreshold: dec("100000000"),
}

// RulesetFor returns the statutory ruleset for the given tax year, or
// ErrInvalidTaxYear when the year falls outside the covered window.
func RulesetFor(taxYear int) (Ruleset, error) {
	if taxYear < MinTaxYear || taxYear > MaxTaxYear {
		return Ruleset{}, InvalidTaxYearError(taxYear)
	}
	rs := ntaRuleset
	rs.TaxYear = taxYear
	return rs, nil
}

// ValidTaxYear reports whether the year has a ruleset.
func ValidTaxYear(taxYear int) bool {
	return taxYear >= MinTaxYear && taxYear <= MaxTaxYear
}
