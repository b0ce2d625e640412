package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
)

var (
	freePlan = subscription.Plan{
		ID:   "plan-free",
		Tier: subscription.TierFree,
	}
	starterPlan = subscription.Plan{
		ID:           "plan-starter",
		Tier:         subscription.TierStarter,
		MonthlyPrice: decimal.NewFromInt(5_000),
		YearlyPrice:  decimal.NewFromInt(50_000),
	}
	businessPlan = subscription.Plan{
		ID:           "plan-business",
		Tier:         subscription.TierBusiness,
		MonthlyPrice: decimal.NewFromInt(15_000),
		YearlyPrice:  decimal.NewFromInt(150_000),
	}
)

func subOn(plan subscription.Plan, cycle subscription.BillingCycle, now time.Time, daysLeft int) subscription.Subscription {
	return subscription.Subscription{
		ID:           "sub-1",
		AccountID:    "acct-1",
		PlanID:       plan.ID,
		Tier:         plan.Tier,
		BillingCycle: cycle,
		Status:       subscription.StatusActive,
		EndDate:      now.AddDate(0, 0, daysLeft),
	}
}

func TestComputeUpgrade(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("mid-cycle upgrade earns bonus days", func(t *testing.T) {
		sub := subOn(starterPlan, subscription.CycleMonthly, now, 15)

		// 15 days of starter value (5000/30 per day) buys
		// floor(15 * 5000 / 15000) = 5 days of business.
		got := ComputeUpgrade(now, sub, starterPlan, businessPlan, subscription.CycleMonthly)

		assert.True(t, got.HasBonus)
		assert.Equal(t, 5, got.BonusDays)
		assert.Equal(t, subscription.TierStarter, got.PreviousPlan)

		wantStandard := now.AddDate(0, 0, 30)
		assert.Equal(t, wantStandard, got.StandardEndDate)
		assert.Equal(t, wantStandard.AddDate(0, 0, 5), got.NewEndDate)
	})

	t.Run("bonus is floored", func(t *testing.T) {
		sub := subOn(starterPlan, subscription.CycleMonthly, now, 14)

		// floor(14 * 5000 / 15000) = floor(4.66) = 4.
		got := ComputeUpgrade(now, sub, starterPlan, businessPlan, subscription.CycleMonthly)
		assert.Equal(t, 4, got.BonusDays)
	})

	t.Run("downgrade earns nothing", func(t *testing.T) {
		sub := subOn(businessPlan, subscription.CycleMonthly, now, 20)

		got := ComputeUpgrade(now, sub, businessPlan, starterPlan, subscription.CycleMonthly)

		assert.False(t, got.HasBonus)
		assert.Equal(t, 0, got.BonusDays)
		assert.Equal(t, got.StandardEndDate, got.NewEndDate)
	})

	t.Run("same tier earns nothing", func(t *testing.T) {
		sub := subOn(starterPlan, subscription.CycleMonthly, now, 20)

		got := ComputeUpgrade(now, sub, starterPlan, starterPlan, subscription.CycleYearly)
		assert.False(t, got.HasBonus)
		assert.Equal(t, got.StandardEndDate, got.NewEndDate)
	})

	t.Run("expired period earns nothing", func(t *testing.T) {
		sub := subOn(starterPlan, subscription.CycleMonthly, now, 0)

		got := ComputeUpgrade(now, sub, starterPlan, businessPlan, subscription.CycleMonthly)
		assert.False(t, got.HasBonus)
	})

	t.Run("free plan has no unused value", func(t *testing.T) {
		sub := subOn(freePlan, subscription.CycleMonthly, now, 25)

		got := ComputeUpgrade(now, sub, freePlan, businessPlan, subscription.CycleMonthly)
		assert.False(t, got.HasBonus)
		assert.Equal(t, got.StandardEndDate, got.NewEndDate)
	})

	t.Run("yearly target cycle", func(t *testing.T) {
		sub := subOn(starterPlan, subscription.CycleMonthly, now, 15)

		// Business yearly is 150000/365 per day; 15 days of starter value
		// is 2500, so floor(2500 / 410.96) = 6 bonus days.
		got := ComputeUpgrade(now, sub, starterPlan, businessPlan, subscription.CycleYearly)

		assert.True(t, got.HasBonus)
		assert.Equal(t, 6, got.BonusDays)
		assert.Equal(t, now.AddDate(0, 0, 365), got.StandardEndDate)
	})

	t.Run("new end date never precedes the standard end", func(t *testing.T) {
		cycles := []subscription.BillingCycle{subscription.CycleMonthly, subscription.CycleYearly}
		plans := []subscription.Plan{freePlan, starterPlan, businessPlan}

		for _, current := range plans {
			for _, target := range plans {
				for _, cycle := range cycles {
					for _, daysLeft := range []int{0, 1, 15, 400} {
						sub := subOn(current, subscription.CycleMonthly, now, daysLeft)
						got := ComputeUpgrade(now, sub, current, target, cycle)
						assert.False(t, got.NewEndDate.Before(got.StandardEndDate),
							"%s -> %s (%s, %d days left)", current.Tier, target.Tier, cycle, daysLeft)
						assert.GreaterOrEqual(t, got.BonusDays, 0)
					}
				}
			}
		}
	})
}
