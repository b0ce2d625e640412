package payroll

import (
	"errors"
	"fmt"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
)

var (
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrScheduleNotFound        = errors.New("payroll schedule not found")
	ErrInvalidStatusTransition = errors.New("invalid payroll schedule status")
	ErrScheduleTotalsMismatch  = errors.New("payroll schedule totals diverge from constituent records")
)

// NoActiveEmployeesError is the business-rule failure raised when a batch
// finds no active employees. It carries the full count breakdown so the
// caller can tell an empty workforce from one with unset activity flags.
type NoActiveEmployeesError struct {
	Breakdown employee.CountBreakdown
}

func (e *NoActiveEmployeesError) Error() string {
	return fmt.Sprintf("no active employees for payroll batch (total: %d, inactive: %d, undefined status: %d)",
		e.Breakdown.Total, e.Breakdown.Inactive, e.Breakdown.UndefinedStatus)
}
