package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound     = errors.New("subscription not found")
	ErrPlanNotFound             = errors.New("plan not found")
	ErrPlanNotActive            = errors.New("plan is not active")
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrPaymentAlreadyVerified   = errors.New("payment has already been verified")
	ErrInvalidSubscriptionState = errors.New("invalid subscription state for this operation")
	ErrInvalidWebhookSignature  = errors.New("invalid webhook signature")
)

// PlanGateError is raised when an operation needs a plan the account does
// not have. It carries the required tier so the caller can prompt an
// upgrade.
type PlanGateError struct {
	Feature      string
	RequiredTier PlanTier
	CurrentTier  PlanTier
}

func (e *PlanGateError) Error() string {
	return fmt.Sprintf("feature %q requires the %s plan or higher (current plan: %s)",
		e.Feature, e.RequiredTier, e.CurrentTier)
}
