package subscription

import "context"

// PlanRepository defines data access for the plan catalog.
type PlanRepository interface {
	ListActive(ctx context.Context) ([]Plan, error)
	GetByTier(ctx context.Context, tier PlanTier) (Plan, error)
}

// SubscriptionRepository defines data access for subscriptions.
type SubscriptionRepository interface {
	GetByAccountID(ctx context.Context, accountID string) (Subscription, error)
	Update(ctx context.Context, sub Subscription) error
	UpdateExpired(ctx context.Context) (int64, error)
}

// PaymentRepository defines data access for gateway payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	GetByGatewayRef(ctx context.Context, ref string) (Payment, error)
	MarkPaid(ctx context.Context, id string, method string) error
	MarkFailed(ctx context.Context, id string) error
}

// SubscriptionService is the boundary the API layer calls.
type SubscriptionService interface {
	GetMySubscription(ctx context.Context, accountID string) (SubscriptionResponse, error)
	ListPlans(ctx context.Context) ([]Plan, error)
	PreviewUpgrade(ctx context.Context, req UpgradeRequest) (UpgradePreviewResponse, error)
	InitiateUpgrade(ctx context.Context, req UpgradeRequest) (UpgradeInitResponse, error)
	HandleWebhook(ctx context.Context, payload WebhookPayload) error
	ProcessExpiredSubscriptions(ctx context.Context) error
	// RequireFeature returns a PlanGateError when the account's plan
	// does not include the feature, and ErrInvalidSubscriptionState
	// when the subscription exists but is not active.
	RequireFeature(ctx context.Context, accountID string, feature Feature) error
}
