package payroll

import (
	"context"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
)

// PayrollRepository defines data access for payroll records and
// schedules. Schedule creation is an atomic upsert keyed by
// (entityID, entityType, month, year) so concurrent batch runs for the
// same period converge on one schedule row.
type PayrollRepository interface {
	// Records
	UpsertRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	ListRecordsByPeriod(ctx context.Context, entityID string, entityType employee.EntityType, month, year int) ([]PayrollRecord, error)
	// DeleteRecordsByPeriodExcept removes the period's records for
	// employees outside keepEmployeeIDs, so a regenerated batch leaves
	// no rows behind for employees who dropped out of the workforce.
	DeleteRecordsByPeriodExcept(ctx context.Context, entityID string, entityType employee.EntityType, month, year int, keepEmployeeIDs []string) (int64, error)

	// Schedules
	UpsertSchedule(ctx context.Context, schedule PayrollSchedule) (PayrollSchedule, error)
	GetScheduleByID(ctx context.Context, id string) (PayrollSchedule, error)
	GetScheduleByPeriod(ctx context.Context, entityID string, entityType employee.EntityType, month, year int) (PayrollSchedule, error)
	UpdateScheduleStatus(ctx context.Context, id string, status ScheduleStatus) error
}

// PayrollService is the boundary the API layer calls.
type PayrollService interface {
	GenerateBatch(ctx context.Context, req GenerateBatchRequest) (BatchResponse, error)
	GetEmployeeRecord(ctx context.Context, employeeID string, month, year int) (RecordResponse, error)
	GetSchedule(ctx context.Context, entityID string, entityType employee.EntityType, month, year int) (ScheduleResponse, error)
	ListRecords(ctx context.Context, entityID string, entityType employee.EntityType, month, year int) ([]RecordResponse, error)
	EnsureScheduleStatus(ctx context.Context, req UpdateScheduleStatusRequest) (ScheduleResponse, error)
}
