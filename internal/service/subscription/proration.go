package subscription

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
)

// ComputeUpgrade converts the unused value of the current plan into bonus
// days on the target plan:
//
//	bonusDays = floor(remainingDays * currentDailyRate / targetDailyRate)
//
// Only genuine upgrades earn a bonus; a downgrade or a same-tier switch
// starts a standard period with no credit. The result never ends before
// the standard period end.
//
// Pure function: it is called for the pre-payment preview and again after
// payment verification with the then-current clock, and the post-payment
// result is the one applied.
func ComputeUpgrade(
	now time.Time,
	sub subscription.Subscription,
	currentPlan subscription.Plan,
	targetPlan subscription.Plan,
	targetCycle subscription.BillingCycle,
) subscription.UpgradeInfo {
	standardEnd := now.AddDate(0, 0, targetCycle.Days())

	info := subscription.UpgradeInfo{
		PreviousPlan:    currentPlan.Tier,
		StandardEndDate: standardEnd,
		NewEndDate:      standardEnd,
	}

	if targetPlan.Tier.Level() <= currentPlan.Tier.Level() {
		return info
	}

	remaining := sub.RemainingDays(now)
	if remaining <= 0 {
		return info
	}

	targetRate := targetPlan.DailyRate(targetCycle)
	if !targetRate.IsPositive() {
		return info
	}
	currentRate := currentPlan.DailyRate(sub.BillingCycle)
	if !currentRate.IsPositive() {
		return info
	}

	bonus := decimal.NewFromInt(int64(remaining)).
		Mul(currentRate).
		Div(targetRate).
		Floor()
	bonusDays := int(bonus.IntPart())
	if bonusDays <= 0 {
		return info
	}

	info.HasBonus = true
	info.BonusDays = bonusDays
	info.NewEndDate = standardEnd.AddDate(0, 0, bonusDays)
	return info
}
