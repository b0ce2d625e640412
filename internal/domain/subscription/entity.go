package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanTier is the closed set of subscription plans. Tier ordering drives
// upgrade/downgrade decisions; never compare plan names as strings.
type PlanTier string

const (
	TierFree       PlanTier = "free"
	TierStarter    PlanTier = "starter"
	TierBusiness   PlanTier = "business"
	TierEnterprise PlanTier = "enterprise"
)

// Valid reports whether t is a recognized plan tier.
func (t PlanTier) Valid() bool {
	switch t {
	case TierFree, TierStarter, TierBusiness, TierEnterprise:
		return true
	}
	return false
}

// Level returns the tier's ordering; higher is a bigger plan.
func (t PlanTier) Level() int {
	switch t {
	case TierFree:
		return 0
	case TierStarter:
		return 1
	case TierBusiness:
		return 2
	case TierEnterprise:
		return 3
	}
	return -1
}

// BillingCycle is the subscription billing period.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Valid reports whether c is a recognized billing cycle.
func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// Days returns the nominal length of one billing period.
func (c BillingCycle) Days() int {
	if c == CycleYearly {
		return 365
	}
	return 30
}

// SubscriptionStatus is the subscription lifecycle state.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// Plan is a subscription plan with per-cycle prices in Naira.
type Plan struct {
	ID           string          `json:"id"`
	Tier         PlanTier        `json:"tier"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	YearlyPrice  decimal.Decimal `json:"yearly_price"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PriceFor returns the plan price for a billing cycle.
func (p Plan) PriceFor(cycle BillingCycle) decimal.Decimal {
	if cycle == CycleYearly {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}

// DailyRate returns the plan's value per day under a billing cycle.
func (p Plan) DailyRate(cycle BillingCycle) decimal.Decimal {
	return p.PriceFor(cycle).Div(decimal.NewFromInt(int64(cycle.Days())))
}

// Subscription is one account's plan enrollment.
type Subscription struct {
	ID           string             `json:"id"`
	AccountID    string             `json:"account_id"`
	PlanID       string             `json:"plan_id"`
	Tier         PlanTier           `json:"tier"`
	BillingCycle BillingCycle       `json:"billing_cycle"`
	Status       SubscriptionStatus `json:"status"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`

	// Joined data
	Plan *Plan `json:"plan,omitempty"`
}

// IsActive reports whether the subscription currently grants access.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// RemainingDays returns whole days left on the current period at now,
// never negative.
func (s *Subscription) RemainingDays(now time.Time) int {
	if !now.Before(s.EndDate) {
		return 0
	}
	return int(s.EndDate.Sub(now).Hours() / 24)
}

// PaymentStatus is the payment lifecycle state.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment records one gateway charge for a subscription change.
type Payment struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	SubscriptionID string          `json:"subscription_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	Status         PaymentStatus   `json:"status"`
	GatewayRef     string          `json:"gateway_ref"`
	// Snapshot of the change being paid for, applied on verification.
	TargetPlanID   string          `json:"target_plan_id"`
	TargetTier     PlanTier        `json:"target_tier"`
	TargetCycle    BillingCycle    `json:"target_cycle"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// UpgradeInfo is the ephemeral proration result. It is computed, surfaced
// to the caller and recomputed after payment; it is never persisted.
type UpgradeInfo struct {
	HasBonus        bool      `json:"has_bonus"`
	BonusDays       int       `json:"bonus_days"`
	PreviousPlan    PlanTier  `json:"previous_plan"`
	NewEndDate      time.Time `json:"new_end_date"`
	StandardEndDate time.Time `json:"standard_end_date"`
}
