package cron

import (
	"context"
	"time"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
)

// SubscriptionJobs holds the periodic subscription housekeeping.
type SubscriptionJobs struct {
	subscriptionSvc subscription.SubscriptionService
}

func NewSubscriptionJobs(subscriptionSvc subscription.SubscriptionService) *SubscriptionJobs {
	return &SubscriptionJobs{subscriptionSvc: subscriptionSvc}
}

func (j *SubscriptionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:       "expire_subscriptions",
		Interval:   1 * time.Hour,
		RunTimeout: time.Minute,
		Fn:         j.ExpireSubscriptions,
	})
}

// ExpireSubscriptions flips active subscriptions whose period has ended
// to expired.
func (j *SubscriptionJobs) ExpireSubscriptions(ctx context.Context) error {
	return j.subscriptionSvc.ProcessExpiredSubscriptions(ctx)
}
