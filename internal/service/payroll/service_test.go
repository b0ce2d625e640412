package payroll

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/payroll"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
	taxservice "github.com/taxpadi/taxpadi-backend-go/internal/service/tax"
)

func boolPtr(b bool) *bool { return &b }

func activeEmployee(id string, gross int64) employee.Employee {
	return employee.Employee{
		ID:          id,
		FirstName:   "Test",
		LastName:    "Employee",
		GrossSalary: decimal.NewFromInt(gross),
		IsActive:    boolPtr(true),
		HasPension:  boolPtr(true),
		HasNHF:      boolPtr(true),
		HasNHIS:     boolPtr(true),
	}
}

func batchRequest() payroll.GenerateBatchRequest {
	return payroll.GenerateBatchRequest{
		EntityID:    "ent-1",
		EntityType:  "company",
		PeriodMonth: 3,
		PeriodYear:  2026,
	}
}

func TestComputeRecords(t *testing.T) {
	calc := taxservice.NewCalculator()

	t.Run("three employees on the same salary", func(t *testing.T) {
		employees := []employee.Employee{
			activeEmployee("emp-1", 250_000),
			activeEmployee("emp-2", 250_000),
			activeEmployee("emp-3", 250_000),
		}

		records, err := computeRecords(calc, employees, nil, batchRequest())
		require.NoError(t, err)
		require.Len(t, records, 3)

		totals := payroll.TotalsFromRecords(records)
		assert.Equal(t, 3, totals.TotalEmployees)
		assert.True(t, totals.TotalGrossSalary.Equal(decimal.NewFromInt(750_000)), "gross = %s", totals.TotalGrossSalary)
		assert.True(t, totals.TotalEmployeePension.Equal(decimal.NewFromInt(60_000)), "pension = %s", totals.TotalEmployeePension)
		assert.True(t, totals.TotalPAYE.Equal(decimal.RequireFromString("35062.50")), "paye = %s", totals.TotalPAYE)
		assert.True(t, totals.TotalNetSalary.Equal(decimal.RequireFromString("598687.50")), "net = %s", totals.TotalNetSalary)
	})

	t.Run("inactive and undefined employees are skipped", func(t *testing.T) {
		inactive := activeEmployee("emp-2", 300_000)
		inactive.IsActive = boolPtr(false)
		undefined := activeEmployee("emp-3", 300_000)
		undefined.IsActive = nil

		records, err := computeRecords(calc, []employee.Employee{
			activeEmployee("emp-1", 250_000),
			inactive,
			undefined,
		}, nil, batchRequest())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "emp-1", records[0].EmployeeID)
	})

	t.Run("no active employees carries the breakdown", func(t *testing.T) {
		first := activeEmployee("emp-1", 250_000)
		first.IsActive = boolPtr(false)
		second := activeEmployee("emp-2", 250_000)
		second.IsActive = boolPtr(false)

		_, err := computeRecords(calc, []employee.Employee{first, second}, nil, batchRequest())
		require.Error(t, err)

		var noActive *payroll.NoActiveEmployeesError
		require.True(t, errors.As(err, &noActive))
		assert.Equal(t, 2, noActive.Breakdown.Total)
		assert.Equal(t, 2, noActive.Breakdown.Inactive)
		assert.Equal(t, 0, noActive.Breakdown.UndefinedStatus)
	})

	t.Run("empty workforce distinguishes from all-inactive", func(t *testing.T) {
		_, err := computeRecords(calc, nil, nil, batchRequest())
		require.Error(t, err)

		var noActive *payroll.NoActiveEmployeesError
		require.True(t, errors.As(err, &noActive))
		assert.Equal(t, 0, noActive.Breakdown.Total)
	})

	t.Run("missing benefit flag aborts the batch", func(t *testing.T) {
		broken := activeEmployee("emp-1", 250_000)
		broken.HasPension = nil

		_, err := computeRecords(calc, []employee.Employee{broken}, nil, batchRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, tax.ErrMissingBenefitFlag)
	})

	t.Run("deductions lower the employee's taxable income", func(t *testing.T) {
		employees := []employee.Employee{activeEmployee("emp-1", 250_000)}

		without, err := computeRecords(calc, employees, nil, batchRequest())
		require.NoError(t, err)

		with, err := computeRecords(calc, employees, map[string]tax.AnnualDeductions{
			"": {Rent: decimal.NewFromInt(1_000_000)},
		}, batchRequest())
		require.NoError(t, err)

		assert.True(t, with[0].PAYE.LessThan(without[0].PAYE),
			"paye with rent relief %s should be below %s", with[0].PAYE, without[0].PAYE)
	})
}

// fakeScheduleRepo backs the status-transition tests.
type fakeScheduleRepo struct {
	payroll.PayrollRepository

	schedules map[string]payroll.PayrollSchedule
}

func (f *fakeScheduleRepo) GetScheduleByID(_ context.Context, id string) (payroll.PayrollSchedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return payroll.PayrollSchedule{}, payroll.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeScheduleRepo) UpdateScheduleStatus(_ context.Context, id string, status payroll.ScheduleStatus) error {
	s, ok := f.schedules[id]
	if !ok {
		return payroll.ErrScheduleNotFound
	}
	s.Status = status
	f.schedules[id] = s
	return nil
}

// fakeRecordRepo backs the payslip read tests.
type fakeRecordRepo struct {
	payroll.PayrollRepository

	records map[string]payroll.PayrollRecord
}

func (f *fakeRecordRepo) GetRecordByEmployeePeriod(_ context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	r, ok := f.records[employeeID]
	if !ok || r.PeriodMonth != month || r.PeriodYear != year {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func TestGetEmployeeRecord(t *testing.T) {
	repo := &fakeRecordRepo{records: map[string]payroll.PayrollRecord{
		"emp-1": {
			ID:          "rec-1",
			EmployeeID:  "emp-1",
			PeriodMonth: 3,
			PeriodYear:  2026,
			GrossSalary: decimal.NewFromInt(250_000),
		},
	}}
	svc := NewPayrollService(nil, repo, nil, nil, taxservice.NewCalculator())

	t.Run("returns the period's payslip", func(t *testing.T) {
		got, err := svc.GetEmployeeRecord(context.Background(), "emp-1", 3, 2026)
		require.NoError(t, err)
		assert.Equal(t, "rec-1", got.ID)
		assert.True(t, got.GrossSalary.Equal(decimal.NewFromInt(250_000)))
	})

	t.Run("no record for the period", func(t *testing.T) {
		_, err := svc.GetEmployeeRecord(context.Background(), "emp-1", 4, 2026)
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
	})

	t.Run("month out of range", func(t *testing.T) {
		_, err := svc.GetEmployeeRecord(context.Background(), "emp-1", 13, 2026)
		assert.Error(t, err)
	})
}

func TestEnsureScheduleStatus(t *testing.T) {
	newService := func(status payroll.ScheduleStatus) (payroll.PayrollService, *fakeScheduleRepo) {
		repo := &fakeScheduleRepo{schedules: map[string]payroll.PayrollSchedule{
			"sch-1": {ID: "sch-1", Status: status},
		}}
		return NewPayrollService(nil, repo, nil, nil, taxservice.NewCalculator()), repo
	}

	t.Run("draft to approved", func(t *testing.T) {
		svc, repo := newService(payroll.StatusDraft)
		got, err := svc.EnsureScheduleStatus(context.Background(), payroll.UpdateScheduleStatusRequest{
			ScheduleID: "sch-1",
			NewStatus:  "approved",
		})
		require.NoError(t, err)
		assert.Equal(t, "approved", got.Status)
		assert.Equal(t, payroll.StatusApproved, repo.schedules["sch-1"].Status)
	})

	t.Run("submitted back to draft is allowed", func(t *testing.T) {
		svc, _ := newService(payroll.StatusSubmitted)
		got, err := svc.EnsureScheduleStatus(context.Background(), payroll.UpdateScheduleStatusRequest{
			ScheduleID: "sch-1",
			NewStatus:  "draft",
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", got.Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		svc, _ := newService(payroll.StatusApproved)
		got, err := svc.EnsureScheduleStatus(context.Background(), payroll.UpdateScheduleStatusRequest{
			ScheduleID: "sch-1",
			NewStatus:  "approved",
		})
		require.NoError(t, err)
		assert.Equal(t, "approved", got.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc, _ := newService(payroll.StatusDraft)
		_, err := svc.EnsureScheduleStatus(context.Background(), payroll.UpdateScheduleStatusRequest{
			ScheduleID: "sch-1",
			NewStatus:  "archived",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)
	})

	t.Run("unknown schedule", func(t *testing.T) {
		svc, _ := newService(payroll.StatusDraft)
		_, err := svc.EnsureScheduleStatus(context.Background(), payroll.UpdateScheduleStatusRequest{
			ScheduleID: "sch-404",
			NewStatus:  "approved",
		})
		assert.ErrorIs(t, err, payroll.ErrScheduleNotFound)
	})
}
