package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
)

// ScheduleStatus is the payroll schedule workflow state.
type ScheduleStatus string

const (
	StatusDraft     ScheduleStatus = "draft"
	StatusApproved  ScheduleStatus = "approved"
	StatusSubmitted ScheduleStatus = "submitted"
)

// Valid reports whether s is a recognized schedule status.
func (s ScheduleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusSubmitted:
		return true
	}
	return false
}

// PayrollRecord is one employee's computed payroll for one (month, year).
// Records are immutable once created except through batch regeneration.
// All amounts are monthly Naira.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	EntityID    string
	EntityType  employee.EntityType
	PeriodMonth int
	PeriodYear  int

	GrossSalary            decimal.Decimal
	EmployeePensionContrib decimal.Decimal
	EmployerPensionContrib decimal.Decimal
	NHFContribution        decimal.Decimal
	NHISContribution       decimal.Decimal
	CRA                    decimal.Decimal
	TaxableIncome          decimal.Decimal
	PAYE                   decimal.Decimal
	NetSalary              decimal.Decimal

	Status    ScheduleStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// PayrollSchedule is the one-per-(entity, month, year) batch summary.
// Totals are always derivable from the constituent records; they are
// recomputed on every regeneration, never carried forward.
type PayrollSchedule struct {
	ID          string
	EntityID    string
	EntityType  employee.EntityType
	PeriodMonth int
	PeriodYear  int

	TotalEmployees       int
	TotalGrossSalary     decimal.Decimal
	TotalEmployeePension decimal.Decimal
	TotalEmployerPension decimal.Decimal
	TotalNHF             decimal.Decimal
	TotalNHIS            decimal.Decimal
	TotalCRA             decimal.Decimal
	TotalTaxableIncome   decimal.Decimal
	TotalPAYE            decimal.Decimal
	TotalNetSalary       decimal.Decimal

	Status    ScheduleStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalsFromRecords recomputes schedule aggregates from the record set.
func TotalsFromRecords(records []PayrollRecord) PayrollSchedule {
	var s PayrollSchedule
	s.TotalEmployees = len(records)
	s.TotalGrossSalary = decimal.Zero
	s.TotalEmployeePension = decimal.Zero
	s.TotalEmployerPension = decimal.Zero
	s.TotalNHF = decimal.Zero
	s.TotalNHIS = decimal.Zero
	s.TotalCRA = decimal.Zero
	s.TotalTaxableIncome = decimal.Zero
	s.TotalPAYE = decimal.Zero
	s.TotalNetSalary = decimal.Zero
	for _, r := range records {
		s.TotalGrossSalary = s.TotalGrossSalary.Add(r.GrossSalary)
		s.TotalEmployeePension = s.TotalEmployeePension.Add(r.EmployeePensionContrib)
		s.TotalEmployerPension = s.TotalEmployerPension.Add(r.EmployerPensionContrib)
		s.TotalNHF = s.TotalNHF.Add(r.NHFContribution)
		s.TotalNHIS = s.TotalNHIS.Add(r.NHISContribution)
		s.TotalCRA = s.TotalCRA.Add(r.CRA)
		s.TotalTaxableIncome = s.TotalTaxableIncome.Add(r.TaxableIncome)
		s.TotalPAYE = s.TotalPAYE.Add(r.PAYE)
		s.TotalNetSalary = s.TotalNetSalary.Add(r.NetSalary)
	}
	return s
}

// VerifyScheduleTotals confirms the schedule's aggregates equal the sum
// of the record set it claims to summarize. A divergence means the period
// holds records the totals do not cover and the write must not stand.
func VerifyScheduleTotals(s PayrollSchedule, records []PayrollRecord) error {
	want := TotalsFromRecords(records)
	if s.TotalEmployees != want.TotalEmployees {
		return fmt.Errorf("%w: schedule covers %d employees, period has %d records",
			ErrScheduleTotalsMismatch, s.TotalEmployees, want.TotalEmployees)
	}
	if !s.TotalGrossSalary.Equal(want.TotalGrossSalary) ||
		!s.TotalEmployeePension.Equal(want.TotalEmployeePension) ||
		!s.TotalEmployerPension.Equal(want.TotalEmployerPension) ||
		!s.TotalNHF.Equal(want.TotalNHF) ||
		!s.TotalNHIS.Equal(want.TotalNHIS) ||
		!s.TotalCRA.Equal(want.TotalCRA) ||
		!s.TotalTaxableIncome.Equal(want.TotalTaxableIncome) ||
		!s.TotalPAYE.Equal(want.TotalPAYE) ||
		!s.TotalNetSalary.Equal(want.TotalNetSalary) {
		return fmt.Errorf("%w: schedule totals do not equal the sum of the period's records",
			ErrScheduleTotalsMismatch)
	}
	return nil
}
