package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source tags where the deduction figures came from.
type Source string

const (
	SourcePayslip    Source = "payslip"
	SourceEmployer   Source = "employer"
	SourceSelfAssess Source = "self_assessment"
	SourceOther      Source = "other"
)

// Valid reports whether s is a recognized source tag.
func (s Source) Valid() bool {
	switch s {
	case SourcePayslip, SourceEmployer, SourceSelfAssess, SourceOther:
		return true
	}
	return false
}

// EmploymentDeductions is the per-(account, taxYear) record of annual
// deduction figures. One active record exists per account and tax year.
type EmploymentDeductions struct {
	ID        string
	AccountID string
	TaxYear   int

	AnnualPension             decimal.Decimal
	AnnualNHF                 decimal.Decimal
	AnnualNHIS                decimal.Decimal
	AnnualHousingLoanInterest decimal.Decimal
	AnnualLifeInsurance       decimal.Decimal
	AnnualRent                decimal.Decimal

	// AnnualRentRelief is derived: min(AnnualRent * 0.20, 500000). It is
	// stored for reporting but re-derived and verified on every write.
	AnnualRentRelief decimal.Decimal

	Source     Source
	SourceNote *string // required when Source is "other"

	CreatedAt time.Time
	UpdatedAt time.Time
}
