package tax

import "github.com/shopspring/decimal"

// BenefitFlags carries the per-employee statutory benefit eligibility.
// Pointers are deliberate: a nil flag is a data-integrity error, not false.
type BenefitFlags struct {
	HasPension *bool
	HasNHF     *bool
	HasNHIS    *bool
}

// AnnualDeductions is the recorded annual figures that feed the taxable
// income computation. Statutory contributions are not carried here; the
// engine derives them from gross at the ruleset's rates.
type AnnualDeductions struct {
	HousingLoanInterest decimal.Decimal
	LifeInsurance       decimal.Decimal
	Rent                decimal.Decimal
}

// PAYEInput is everything the PAYE computation needs for one employee and
// one pay period. GrossSalary is the periodic (monthly) gross.
type PAYEInput struct {
	GrossSalary decimal.Decimal
	Flags       BenefitFlags
	Deductions  AnnualDeductions
	TaxYear     int
}

// ComputePAYERequest is the wire shape of a standalone PAYE computation.
// Flag and deduction semantics match PAYEInput exactly; a flag omitted
// from the request stays nil and is rejected by the engine.
type ComputePAYERequest struct {
	GrossSalary decimal.Decimal `json:"gross_salary"`
	HasPension  *bool           `json:"has_pension"`
	HasNHF      *bool           `json:"has_nhf"`
	HasNHIS     *bool           `json:"has_nhis"`

	AnnualHousingLoanInterest decimal.Decimal `json:"annual_housing_loan_interest"`
	AnnualLifeInsurance       decimal.Decimal `json:"annual_life_insurance"`
	AnnualRent                decimal.Decimal `json:"annual_rent"`

	TaxYear int `json:"tax_year"`
}

// ToInput converts the request to the engine's input shape.
func (r *ComputePAYERequest) ToInput() PAYEInput {
	return PAYEInput{
		GrossSalary: r.GrossSalary,
		Flags: BenefitFlags{
			HasPension: r.HasPension,
			HasNHF:     r.HasNHF,
			HasNHIS:    r.HasNHIS,
		},
		Deductions: AnnualDeductions{
			HousingLoanInterest: r.AnnualHousingLoanInterest,
			LifeInsurance:       r.AnnualLifeInsurance,
			Rent:                r.AnnualRent,
		},
		TaxYear: r.TaxYear,
	}
}

// PAYEBreakdown is the result of one periodic PAYE computation. All
// amounts are for the pay period (monthly), in Naira.
type PAYEBreakdown struct {
	GrossSalary              decimal.Decimal `json:"gross_salary"`
	EmployeePensionContrib   decimal.Decimal `json:"employee_pension_contribution"`
	EmployerPensionContrib   decimal.Decimal `json:"employer_pension_contribution"`
	NHFContribution          decimal.Decimal `json:"nhf_contribution"`
	NHISContribution         decimal.Decimal `json:"nhis_contribution"`
	CRA                      decimal.Decimal `json:"cra"`
	RentRelief               decimal.Decimal `json:"rent_relief"`
	OtherAllowableDeductions decimal.Decimal `json:"other_allowable_deductions"`
	TaxableIncome            decimal.Decimal `json:"taxable_income"`
	PAYE                     decimal.Decimal `json:"paye"`
	NetSalary                decimal.Decimal `json:"net_salary"`
	AnnualTaxableIncome      decimal.Decimal `json:"annual_taxable_income"`
	TaxYear                  int             `json:"tax_year"`
}

// CITClassification is the company income tax bucket for one tax year.
type CITClassification struct {
	TaxYear              int             `json:"tax_year"`
	Turnover             decimal.Decimal `json:"turnover"`
	Rate                 decimal.Decimal `json:"rate"`
	IsSmallCompanyExempt bool            `json:"is_small_company_exempt"`
}

// VATStatus is the turnover-derived VAT obligation.
type VATStatus struct {
	Turnover  decimal.Decimal `json:"turnover"`
	Threshold decimal.Decimal `json:"threshold"`
	Obligated bool            `json:"obligated"`
}
