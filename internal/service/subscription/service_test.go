package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
)

type fakeSubscriptionRepo struct {
	subs map[string]subscription.Subscription
}

func (f *fakeSubscriptionRepo) GetByAccountID(_ context.Context, accountID string) (subscription.Subscription, error) {
	s, ok := f.subs[accountID]
	if !ok {
		return subscription.Subscription{}, subscription.ErrSubscriptionNotFound
	}
	return s, nil
}

func (f *fakeSubscriptionRepo) Update(_ context.Context, sub subscription.Subscription) error {
	f.subs[sub.AccountID] = sub
	return nil
}

func (f *fakeSubscriptionRepo) UpdateExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func newGateService(subs map[string]subscription.Subscription) subscription.SubscriptionService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSubscriptionService(nil, nil, &fakeSubscriptionRepo{subs: subs}, nil, nil, logger)
}

func activeSub(accountID string, tier subscription.PlanTier) subscription.Subscription {
	return subscription.Subscription{
		ID:        "sub-" + accountID,
		AccountID: accountID,
		Tier:      tier,
		Status:    subscription.StatusActive,
		EndDate:   time.Now().AddDate(0, 1, 0),
	}
}

func TestRequireFeature(t *testing.T) {
	t.Run("plan covering the feature passes", func(t *testing.T) {
		svc := newGateService(map[string]subscription.Subscription{
			"acc-1": activeSub("acc-1", subscription.TierStarter),
		})
		assert.NoError(t, svc.RequireFeature(context.Background(), "acc-1", subscription.FeaturePayrollBatch))
	})

	t.Run("higher tier includes lower-tier features", func(t *testing.T) {
		svc := newGateService(map[string]subscription.Subscription{
			"acc-1": activeSub("acc-1", subscription.TierBusiness),
		})
		assert.NoError(t, svc.RequireFeature(context.Background(), "acc-1", subscription.FeaturePayrollBatch))
		assert.NoError(t, svc.RequireFeature(context.Background(), "acc-1", subscription.FeatureCompanyTax))
	})

	t.Run("tier below the feature is gated", func(t *testing.T) {
		svc := newGateService(map[string]subscription.Subscription{
			"acc-1": activeSub("acc-1", subscription.TierStarter),
		})
		err := svc.RequireFeature(context.Background(), "acc-1", subscription.FeatureCompanyTax)
		require.Error(t, err)

		var gate *subscription.PlanGateError
		require.True(t, errors.As(err, &gate))
		assert.Equal(t, subscription.TierBusiness, gate.RequiredTier)
		assert.Equal(t, subscription.TierStarter, gate.CurrentTier)
	})

	t.Run("account without a subscription is free tier", func(t *testing.T) {
		svc := newGateService(nil)
		err := svc.RequireFeature(context.Background(), "acc-404", subscription.FeaturePayrollBatch)
		require.Error(t, err)

		var gate *subscription.PlanGateError
		require.True(t, errors.As(err, &gate))
		assert.Equal(t, subscription.TierFree, gate.CurrentTier)
	})

	t.Run("lapsed subscription grants nothing", func(t *testing.T) {
		sub := activeSub("acc-1", subscription.TierBusiness)
		sub.Status = subscription.StatusExpired
		svc := newGateService(map[string]subscription.Subscription{"acc-1": sub})

		err := svc.RequireFeature(context.Background(), "acc-1", subscription.FeaturePayrollBatch)
		assert.ErrorIs(t, err, subscription.ErrInvalidSubscriptionState)
	})
}
