package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/company"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/deduction"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/payroll"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Batch generation carries its workforce breakdown to the caller.
	var noActive *payroll.NoActiveEmployeesError
	if errors.As(err, &noActive) {
		UnprocessableEntity(w, "NO_ACTIVE_EMPLOYEES", err.Error(), map[string]string{
			"total":            strconv.Itoa(noActive.Breakdown.Total),
			"inactive":         strconv.Itoa(noActive.Breakdown.Inactive),
			"undefined_status": strconv.Itoa(noActive.Breakdown.UndefinedStatus),
		})
		return
	}

	var planGate *subscription.PlanGateError
	if errors.As(err, &planGate) {
		Forbidden(w, err.Error())
		return
	}

	switch {
	// Tax engine errors
	case errors.Is(err, tax.ErrInvalidTaxYear):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, tax.ErrNegativeTaxableBase):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, tax.ErrMissingBenefitFlag):
		UnprocessableEntity(w, "MISSING_ELIGIBILITY_FLAG", err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidEntityType):
		BadRequest(w, err.Error(), nil)

	// Deductions domain errors
	case errors.Is(err, deduction.ErrDeductionsNotFound):
		NotFound(w, "Deductions record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrScheduleNotFound):
		NotFound(w, "Payroll schedule not found")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrScheduleTotalsMismatch):
		InternalServerError(w, err.Error())

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrTaxProfileNotFound):
		NotFound(w, "Tax profile not found")

	// Subscription domain errors
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		NotFound(w, "Subscription not found")
	case errors.Is(err, subscription.ErrPlanNotFound):
		NotFound(w, "Plan not found")
	case errors.Is(err, subscription.ErrPlanNotActive):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, subscription.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, subscription.ErrPaymentAlreadyVerified):
		Conflict(w, err.Error())
	case errors.Is(err, subscription.ErrInvalidSubscriptionState):
		Conflict(w, err.Error())
	case errors.Is(err, subscription.ErrInvalidWebhookSignature):
		Unauthorized(w, "Invalid webhook signature")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
