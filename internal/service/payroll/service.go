package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/deduction"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/payroll"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/database"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/validator"
	"github.com/taxpadi/taxpadi-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db            *database.DB
	payrollRepo   payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	deductionRepo deduction.DeductionsRepository
	calc          tax.Calculator
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	deductionRepo deduction.DeductionsRepository,
	calc tax.Calculator,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:            db,
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		deductionRepo: deductionRepo,
		calc:          calc,
	}
}

// ========== BATCH GENERATION ==========

// GenerateBatch computes payroll for every active employee of the entity
// and persists the records plus the period schedule in one transaction.
// Re-running for the same (entity, month, year) replaces the records,
// removes rows for employees who left the active set and recomputes the
// schedule totals; it never duplicates the schedule. The transaction
// aborts with ErrScheduleTotalsMismatch if the persisted record set does
// not sum to the schedule being written.
func (s *PayrollServiceImpl) GenerateBatch(ctx context.Context, req payroll.GenerateBatchRequest) (payroll.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}

	entityType := employee.EntityType(req.EntityType)
	employees, err := s.employeeRepo.ListByEntity(ctx, req.EntityID, entityType)
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	deductions, err := s.loadDeductions(ctx, employees, req.PeriodYear)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	records, err := computeRecords(s.calc, employees, deductions, req)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	schedule := payroll.TotalsFromRecords(records)
	schedule.EntityID = req.EntityID
	schedule.EntityType = entityType
	schedule.PeriodMonth = req.PeriodMonth
	schedule.PeriodYear = req.PeriodYear
	schedule.Status = payroll.StatusDraft

	var (
		savedRecords  []payroll.PayrollRecord
		savedSchedule payroll.PayrollSchedule
	)
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		keep := make([]string, 0, len(records))
		for _, record := range records {
			saved, err := s.payrollRepo.UpsertRecord(txCtx, record)
			if err != nil {
				return fmt.Errorf("failed to upsert payroll record for employee %s: %w", record.EmployeeID, err)
			}
			savedRecords = append(savedRecords, saved)
			keep = append(keep, record.EmployeeID)
		}

		// A prior run may have written records for employees who have
		// since gone inactive; they are no longer part of the batch.
		if _, err := s.payrollRepo.DeleteRecordsByPeriodExcept(txCtx, req.EntityID, entityType, req.PeriodMonth, req.PeriodYear, keep); err != nil {
			return err
		}

		persisted, err := s.payrollRepo.ListRecordsByPeriod(txCtx, req.EntityID, entityType, req.PeriodMonth, req.PeriodYear)
		if err != nil {
			return fmt.Errorf("failed to re-read period records: %w", err)
		}
		if err := payroll.VerifyScheduleTotals(schedule, persisted); err != nil {
			return err
		}

		// An already-approved schedule keeps its status across
		// regeneration; only the totals move.
		existing, err := s.payrollRepo.GetScheduleByPeriod(txCtx, req.EntityID, entityType, req.PeriodMonth, req.PeriodYear)
		if err == nil {
			schedule.Status = existing.Status
		} else if !errors.Is(err, payroll.ErrScheduleNotFound) {
			return fmt.Errorf("failed to check existing schedule: %w", err)
		}

		savedSchedule, err = s.payrollRepo.UpsertSchedule(txCtx, schedule)
		if err != nil {
			return fmt.Errorf("failed to upsert payroll schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	resp := payroll.BatchResponse{Schedule: toScheduleResponse(savedSchedule)}
	for _, r := range savedRecords {
		resp.Records = append(resp.Records, toRecordResponse(r))
	}
	return resp, nil
}

// loadDeductions fetches the deductions record for every employee's
// account, keyed by account ID. Employees without a record compute with
// zero allowable deductions.
func (s *PayrollServiceImpl) loadDeductions(ctx context.Context, employees []employee.Employee, taxYear int) (map[string]tax.AnnualDeductions, error) {
	out := make(map[string]tax.AnnualDeductions, len(employees))
	for _, emp := range employees {
		if emp.AccountID == "" {
			continue
		}
		if _, ok := out[emp.AccountID]; ok {
			continue
		}
		record, err := s.deductionRepo.GetByAccountYear(ctx, emp.AccountID, taxYear)
		if err != nil {
			if errors.Is(err, deduction.ErrDeductionsNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load deductions for account %s: %w", emp.AccountID, err)
		}
		out[emp.AccountID] = tax.AnnualDeductions{
			HousingLoanInterest: record.AnnualHousingLoanInterest,
			LifeInsurance:       record.AnnualLifeInsurance,
			Rent:                record.AnnualRent,
		}
	}
	return out, nil
}

// computeRecords runs the PAYE computation for every active employee.
// It fails with NoActiveEmployeesError when the entity has no active
// employees, carrying the full inactive/undefined breakdown.
func computeRecords(
	calc tax.Calculator,
	employees []employee.Employee,
	deductions map[string]tax.AnnualDeductions,
	req payroll.GenerateBatchRequest,
) ([]payroll.PayrollRecord, error) {
	breakdown := employee.Breakdown(employees)
	if breakdown.Active == 0 {
		return nil, &payroll.NoActiveEmployeesError{Breakdown: breakdown}
	}

	records := make([]payroll.PayrollRecord, 0, breakdown.Active)
	for _, emp := range employees {
		if emp.IsActive == nil || !*emp.IsActive {
			continue
		}

		result, err := calc.ComputePAYE(tax.PAYEInput{
			GrossSalary: emp.GrossSalary,
			Flags: tax.BenefitFlags{
				HasPension: emp.HasPension,
				HasNHF:     emp.HasNHF,
				HasNHIS:    emp.HasNHIS,
			},
			Deductions: deductions[emp.AccountID],
			TaxYear:    req.PeriodYear,
		})
		if err != nil {
			return nil, fmt.Errorf("payroll computation failed for employee %s: %w", emp.ID, err)
		}

		name := emp.FirstName + " " + emp.LastName
		records = append(records, payroll.PayrollRecord{
			EmployeeID:  emp.ID,
			EntityID:    req.EntityID,
			EntityType:  employee.EntityType(req.EntityType),
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,

			GrossSalary:            result.GrossSalary,
			EmployeePensionContrib: result.EmployeePensionContrib,
			EmployerPensionContrib: result.EmployerPensionContrib,
			NHFContribution:        result.NHFContribution,
			NHISContribution:       result.NHISContribution,
			CRA:                    result.CRA,
			TaxableIncome:          result.TaxableIncome,
			PAYE:                   result.PAYE,
			NetSalary:              result.NetSalary,

			Status:       payroll.StatusDraft,
			EmployeeName: &name,
		})
	}
	return records, nil
}

// ========== READS ==========

// GetEmployeeRecord returns one employee's payslip for a period.
func (s *PayrollServiceImpl) GetEmployeeRecord(ctx context.Context, employeeID string, month, year int) (payroll.RecordResponse, error) {
	if !validator.IsValidMonth(month) {
		return payroll.RecordResponse{}, validator.ValidationErrors{{Field: "month", Message: "must be between 1 and 12"}}
	}

	record, err := s.payrollRepo.GetRecordByEmployeePeriod(ctx, employeeID, month, year)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return toRecordResponse(record), nil
}

func (s *PayrollServiceImpl) GetSchedule(ctx context.Context, entityID string, entityType employee.EntityType, month, year int) (payroll.ScheduleResponse, error) {
	if !entityType.Valid() {
		return payroll.ScheduleResponse{}, employee.ErrInvalidEntityType
	}

	schedule, err := s.payrollRepo.GetScheduleByPeriod(ctx, entityID, entityType, month, year)
	if err != nil {
		return payroll.ScheduleResponse{}, err
	}
	return toScheduleResponse(schedule), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, entityID string, entityType employee.EntityType, month, year int) ([]payroll.RecordResponse, error) {
	if !entityType.Valid() {
		return nil, employee.ErrInvalidEntityType
	}

	records, err := s.payrollRepo.ListRecordsByPeriod(ctx, entityID, entityType, month, year)
	if err != nil {
		return nil, err
	}

	out := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out, nil
}

// ========== STATUS ==========

// EnsureScheduleStatus moves a schedule to the requested workflow state.
// Any transition between the known states is allowed, including moving a
// submitted schedule back to draft; only unknown states are rejected.
func (s *PayrollServiceImpl) EnsureScheduleStatus(ctx context.Context, req payroll.UpdateScheduleStatusRequest) (payroll.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ScheduleResponse{}, err
	}

	schedule, err := s.payrollRepo.GetScheduleByID(ctx, req.ScheduleID)
	if err != nil {
		return payroll.ScheduleResponse{}, err
	}

	newStatus := payroll.ScheduleStatus(req.NewStatus)
	if schedule.Status != newStatus {
		if err := s.payrollRepo.UpdateScheduleStatus(ctx, schedule.ID, newStatus); err != nil {
			return payroll.ScheduleResponse{}, err
		}
		schedule.Status = newStatus
	}
	return toScheduleResponse(schedule), nil
}

// ========== MAPPING ==========

func toRecordResponse(r payroll.PayrollRecord) payroll.RecordResponse {
	return payroll.RecordResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		EntityID:    r.EntityID,
		EntityType:  string(r.EntityType),
		PeriodMonth: r.PeriodMonth,
		PeriodYear:  r.PeriodYear,

		GrossSalary:            r.GrossSalary,
		EmployeePensionContrib: r.EmployeePensionContrib,
		EmployerPensionContrib: r.EmployerPensionContrib,
		NHFContribution:        r.NHFContribution,
		NHISContribution:       r.NHISContribution,
		CRA:                    r.CRA,
		TaxableIncome:          r.TaxableIncome,
		PAYE:                   r.PAYE,
		NetSalary:              r.NetSalary,

		Status:       string(r.Status),
		EmployeeName: r.EmployeeName,
	}
}

func toScheduleResponse(s payroll.PayrollSchedule) payroll.ScheduleResponse {
	return payroll.ScheduleResponse{
		ID:          s.ID,
		EntityID:    s.EntityID,
		EntityType:  string(s.EntityType),
		PeriodMonth: s.PeriodMonth,
		PeriodYear:  s.PeriodYear,

		TotalEmployees:       s.TotalEmployees,
		TotalGrossSalary:     s.TotalGrossSalary,
		TotalEmployeePension: s.TotalEmployeePension,
		TotalEmployerPension: s.TotalEmployerPension,
		TotalNHF:             s.TotalNHF,
		TotalNHIS:            s.TotalNHIS,
		TotalCRA:             s.TotalCRA,
		TotalTaxableIncome:   s.TotalTaxableIncome,
		TotalPAYE:            s.TotalPAYE,
		TotalNetSalary:       s.TotalNetSalary,

		Status: string(s.Status),
	}
}
