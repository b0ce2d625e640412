package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/validator"
)

// GenerateBatchRequest identifies one payroll batch run. Entity and
// period are explicit parameters; the generator holds no selection state.
type GenerateBatchRequest struct {
	EntityID    string `json:"entity_id"`
	EntityType  string `json:"entity_type"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
}

func (r *GenerateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EntityID) {
		errs = append(errs, validator.ValidationError{Field: "entity_id", Message: "is required"})
	}
	if !employee.EntityType(r.EntityType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "entity_type", Message: "must be 'company' or 'business'"})
	}
	if !validator.IsValidMonth(r.PeriodMonth) {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if !tax.ValidTaxYear(r.PeriodYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_year",
			Message: "must be between 2026 and 2100; the Nigeria Tax Act 2025 ruleset starts at tax year 2026",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateScheduleStatusRequest moves a schedule through its workflow.
type UpdateScheduleStatusRequest struct {
	ScheduleID string `json:"-"`
	NewStatus  string `json:"status"`
}

func (r *UpdateScheduleStatusRequest) Validate() error {
	if validator.IsEmpty(r.ScheduleID) {
		return validator.ValidationErrors{{Field: "schedule_id", Message: "is required"}}
	}
	if !ScheduleStatus(r.NewStatus).Valid() {
		return fmt.Errorf("%w: %q is not one of draft, approved, submitted",
			ErrInvalidStatusTransition, r.NewStatus)
	}
	return nil
}

// RecordResponse is the wire shape of one payroll record.
type RecordResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	EntityID    string `json:"entity_id"`
	EntityType  string `json:"entity_type"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`

	GrossSalary            decimal.Decimal `json:"gross_salary"`
	EmployeePensionContrib decimal.Decimal `json:"employee_pension_contribution"`
	EmployerPensionContrib decimal.Decimal `json:"employer_pension_contribution"`
	NHFContribution        decimal.Decimal `json:"nhf_contribution"`
	NHISContribution       decimal.Decimal `json:"nhis_contribution"`
	CRA                    decimal.Decimal `json:"cra"`
	TaxableIncome          decimal.Decimal `json:"taxable_income"`
	PAYE                   decimal.Decimal `json:"paye"`
	NetSalary              decimal.Decimal `json:"net_salary"`

	Status       string  `json:"status"`
	EmployeeName *string `json:"employee_name,omitempty"`
}

// ScheduleResponse is the wire shape of one payroll schedule.
type ScheduleResponse struct {
	ID          string `json:"id"`
	EntityID    string `json:"entity_id"`
	EntityType  string `json:"entity_type"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`

	TotalEmployees       int             `json:"total_employees"`
	TotalGrossSalary     decimal.Decimal `json:"total_gross_salary"`
	TotalEmployeePension decimal.Decimal `json:"total_employee_pension"`
	TotalEmployerPension decimal.Decimal `json:"total_employer_pension"`
	TotalNHF             decimal.Decimal `json:"total_nhf"`
	TotalNHIS            decimal.Decimal `json:"total_nhis"`
	TotalCRA             decimal.Decimal `json:"total_cra"`
	TotalTaxableIncome   decimal.Decimal `json:"total_taxable_income"`
	TotalPAYE            decimal.Decimal `json:"total_paye"`
	TotalNetSalary       decimal.Decimal `json:"total_net_salary"`

	Status string `json:"status"`
}

// BatchResponse is the result of one batch generation.
type BatchResponse struct {
	Records  []RecordResponse `json:"records"`
	Schedule ScheduleResponse `json:"schedule"`
}
