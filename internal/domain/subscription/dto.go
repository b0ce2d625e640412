package subscription

import (
	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/validator"
)

// UpgradeRequest asks to move an account to a bigger plan mid-cycle.
type UpgradeRequest struct {
	AccountID    string `json:"-"`
	Email        string `json:"-"`
	TargetPlan   string `json:"target_plan"`
	BillingCycle string `json:"billing_cycle"`
}

func (r *UpgradeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !PlanTier(r.TargetPlan).Valid() {
		errs = append(errs, validator.ValidationError{Field: "target_plan", Message: "must be one of free, starter, business, enterprise"})
	}
	if !BillingCycle(r.BillingCycle).Valid() {
		errs = append(errs, validator.ValidationError{Field: "billing_cycle", Message: "must be 'monthly' or 'yearly'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubscriptionResponse is the wire shape of an account's subscription.
type SubscriptionResponse struct {
	ID           string `json:"id"`
	PlanTier     string `json:"plan_tier"`
	PlanName     string `json:"plan_name"`
	BillingCycle string `json:"billing_cycle"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// UpgradePreviewResponse surfaces the proration result together with the
// amount that will be charged, before any payment is collected.
type UpgradePreviewResponse struct {
	UpgradeInfo UpgradeInfo     `json:"upgrade_info"`
	Amount      decimal.Decimal `json:"amount"`
	TargetPlan  string          `json:"target_plan"`
	Cycle       string          `json:"cycle"`
}

// UpgradeInitResponse is returned when an upgrade payment is initialized.
type UpgradeInitResponse struct {
	Preview    UpgradePreviewResponse `json:"preview"`
	PaymentRef string                 `json:"payment_ref"`
	PaymentURL string                 `json:"payment_url"`
}

// WebhookPayload is the subset of the gateway charge event the service
// consumes.
type WebhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string          `json:"reference"`
		Status    string          `json:"status"`
		Amount    decimal.Decimal `json:"amount"`
		Channel   string          `json:"channel"`
	} `json:"data"`
}
