package tax

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

var twelve = decimal.NewFromInt(12)

// ResolvedDeductions is the annual deduction picture for one employee
// after eligibility flags and statutory caps are applied.
type ResolvedDeductions struct {
	// Monthly statutory contributions, derived from gross at the
	// ruleset's rates. Zero when the employee is not flagged eligible.
	MonthlyEmployeePension decimal.Decimal
	MonthlyEmployerPension decimal.Decimal
	MonthlyNHF             decimal.Decimal
	MonthlyNHIS            decimal.Decimal

	// Annual figures entering the taxable-income computation.
	AnnualCRA        decimal.Decimal
	AnnualRentRelief decimal.Decimal
	AnnualOther      decimal.Decimal // housing loan interest + life insurance
}

// ResolveDeductions computes CRA and every allowable deduction for one
// employee. Eligibility is strict: a contribution is only computed when
// the corresponding flag is set true; a nil flag was already rejected by
// the caller.
func ResolveDeductions(monthlyGross decimal.Decimal, flags tax.BenefitFlags, ded tax.AnnualDeductions, rs tax.Ruleset) ResolvedDeductions {
	var out ResolvedDeductions

	out.MonthlyEmployeePension = decimal.Zero
	out.MonthlyEmployerPension = decimal.Zero
	out.MonthlyNHF = decimal.Zero
	out.MonthlyNHIS = decimal.Zero

	if flags.HasPension != nil && *flags.HasPension {
		out.MonthlyEmployeePension = monthlyGross.Mul(rs.EmployeePensionRate).Round(2)
		out.MonthlyEmployerPension = monthlyGross.Mul(rs.EmployerPensionRate).Round(2)
	}
	if flags.HasNHF != nil && *flags.HasNHF {
		out.MonthlyNHF = monthlyGross.Mul(rs.NHFRate).Round(2)
	}
	if flags.HasNHIS != nil && *flags.HasNHIS {
		out.MonthlyNHIS = monthlyGross.Mul(rs.NHISRate).Round(2)
	}

	annualGross := monthlyGross.Mul(twelve)
	out.AnnualCRA = consolidatedRelief(annualGross, rs)
	out.AnnualRentRelief = rentRelief(ded.Rent, rs)
	out.AnnualOther = ded.HousingLoanInterest.Add(ded.LifeInsurance)

	return out
}

// consolidatedRelief is max(floor, baseRate*gross) + grossRate*gross.
func consolidatedRelief(annualGross decimal.Decimal, rs tax.Ruleset) decimal.Decimal {
	base := annualGross.Mul(rs.CRABaseRate)
	if base.LessThan(rs.CRAFloor) {
		base = rs.CRAFloor
	}
	return base.Add(annualGross.Mul(rs.CRAGrossRate))
}

// rentRelief is RentReliefRate of annual rent, capped at RentReliefCap.
func rentRelief(annualRent decimal.Decimal, rs tax.Ruleset) decimal.Decimal {
	if !annualRent.IsPositive() {
		return decimal.Zero
	}
	relief := annualRent.Mul(rs.RentReliefRate)
	if relief.GreaterThan(rs.RentReliefCap) {
		return rs.RentReliefCap
	}
	return relief
}
