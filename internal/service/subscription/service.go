package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/database"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/paystack"
	"github.com/taxpadi/taxpadi-backend-go/internal/repository/postgresql"
)

// Gateway is the slice of the payment client the service depends on.
type Gateway interface {
	InitializeTransaction(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (*paystack.TransactionStatus, error)
}

type SubscriptionServiceImpl struct {
	db          *database.DB
	planRepo    subscription.PlanRepository
	subRepo     subscription.SubscriptionRepository
	paymentRepo subscription.PaymentRepository
	gateway     Gateway
	logger      *slog.Logger

	// now is the clock; swapped in tests.
	now func() time.Time
}

func NewSubscriptionService(
	db *database.DB,
	planRepo subscription.PlanRepository,
	subRepo subscription.SubscriptionRepository,
	paymentRepo subscription.PaymentRepository,
	gateway Gateway,
	logger *slog.Logger,
) subscription.SubscriptionService {
	return &SubscriptionServiceImpl{
		db:          db,
		planRepo:    planRepo,
		subRepo:     subRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		logger:      logger,
		now:         time.Now,
	}
}

// ========== READS ==========

func (s *SubscriptionServiceImpl) GetMySubscription(ctx context.Context, accountID string) (subscription.SubscriptionResponse, error) {
	sub, err := s.subRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return subscription.SubscriptionResponse{}, err
	}
	return toSubscriptionResponse(sub), nil
}

func (s *SubscriptionServiceImpl) ListPlans(ctx context.Context) ([]subscription.Plan, error) {
	return s.planRepo.ListActive(ctx)
}

// ========== PLAN GATING ==========

// RequireFeature checks that the account's plan includes the feature.
// An account with no subscription row is on the free tier. A lapsed or
// cancelled subscription grants nothing until it is renewed.
func (s *SubscriptionServiceImpl) RequireFeature(ctx context.Context, accountID string, feature subscription.Feature) error {
	sub, err := s.subRepo.GetByAccountID(ctx, accountID)
	if errors.Is(err, subscription.ErrSubscriptionNotFound) {
		if subscription.TierFree.Includes(feature) {
			return nil
		}
		return &subscription.PlanGateError{
			Feature:      string(feature),
			RequiredTier: feature.RequiredTier(),
			CurrentTier:  subscription.TierFree,
		}
	}
	if err != nil {
		return err
	}

	if !sub.IsActive() {
		return fmt.Errorf("%w: subscription is %s", subscription.ErrInvalidSubscriptionState, sub.Status)
	}
	if !sub.Tier.Includes(feature) {
		return &subscription.PlanGateError{
			Feature:      string(feature),
			RequiredTier: feature.RequiredTier(),
			CurrentTier:  sub.Tier,
		}
	}
	return nil
}

// ========== UPGRADE ==========

// PreviewUpgrade computes the proration for a plan change without
// touching anything. The preview is advisory; the figures are recomputed
// when payment is verified.
func (s *SubscriptionServiceImpl) PreviewUpgrade(ctx context.Context, req subscription.UpgradeRequest) (subscription.UpgradePreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return subscription.UpgradePreviewResponse{}, err
	}

	sub, currentPlan, targetPlan, err := s.loadUpgradeContext(ctx, req)
	if err != nil {
		return subscription.UpgradePreviewResponse{}, err
	}

	cycle := subscription.BillingCycle(req.BillingCycle)
	info := ComputeUpgrade(s.now(), sub, currentPlan, targetPlan, cycle)

	return subscription.UpgradePreviewResponse{
		UpgradeInfo: info,
		Amount:      targetPlan.PriceFor(cycle),
		TargetPlan:  string(targetPlan.Tier),
		Cycle:       string(cycle),
	}, nil
}

// InitiateUpgrade creates a pending payment for the plan change and hands
// back the gateway checkout URL. The subscription itself only moves when
// the charge is verified.
func (s *SubscriptionServiceImpl) InitiateUpgrade(ctx context.Context, req subscription.UpgradeRequest) (subscription.UpgradeInitResponse, error) {
	preview, err := s.PreviewUpgrade(ctx, req)
	if err != nil {
		return subscription.UpgradeInitResponse{}, err
	}

	sub, _, targetPlan, err := s.loadUpgradeContext(ctx, req)
	if err != nil {
		return subscription.UpgradeInitResponse{}, err
	}

	cycle := subscription.BillingCycle(req.BillingCycle)
	reference := "sub-" + uuid.NewString()

	payment, err := s.paymentRepo.Create(ctx, subscription.Payment{
		AccountID:      req.AccountID,
		SubscriptionID: sub.ID,
		Amount:         preview.Amount,
		Status:         subscription.PaymentPending,
		GatewayRef:     reference,
		TargetPlanID:   targetPlan.ID,
		TargetTier:     targetPlan.Tier,
		TargetCycle:    cycle,
	})
	if err != nil {
		return subscription.UpgradeInitResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}

	checkout, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Reference: payment.GatewayRef,
		Email:     req.Email,
		Amount:    payment.Amount,
		Metadata: map[string]string{
			"account_id":  req.AccountID,
			"target_plan": string(targetPlan.Tier),
		},
	})
	if err != nil {
		return subscription.UpgradeInitResponse{}, fmt.Errorf("failed to initialize checkout: %w", err)
	}

	return subscription.UpgradeInitResponse{
		Preview:    preview,
		PaymentRef: payment.GatewayRef,
		PaymentURL: checkout.AuthorizationURL,
	}, nil
}

// ========== WEBHOOK ==========

// HandleWebhook processes a gateway charge event. The gateway is always
// re-queried; the webhook body is treated as a hint, never as the
// authority. Re-delivery of an already-verified charge is a no-op.
func (s *SubscriptionServiceImpl) HandleWebhook(ctx context.Context, payload subscription.WebhookPayload) error {
	if payload.Event != string(paystack.WebhookEventChargeSuccess) &&
		payload.Event != string(paystack.WebhookEventChargeFailed) {
		s.logger.Info("ignoring webhook event", "event", payload.Event)
		return nil
	}

	payment, err := s.paymentRepo.GetByGatewayRef(ctx, payload.Data.Reference)
	if err != nil {
		return err
	}
	if payment.Status == subscription.PaymentPaid {
		s.logger.Info("webhook re-delivery for verified payment", "reference", payment.GatewayRef)
		return nil
	}

	status, err := s.gateway.VerifyTransaction(ctx, payment.GatewayRef)
	if err != nil {
		return fmt.Errorf("failed to verify transaction %s: %w", payment.GatewayRef, err)
	}

	if status.Status != "success" {
		if err := s.paymentRepo.MarkFailed(ctx, payment.ID); err != nil {
			return err
		}
		s.logger.Info("payment failed", "reference", payment.GatewayRef, "status", status.Status)
		return nil
	}

	return s.applyUpgrade(ctx, payment, status.Channel)
}

// applyUpgrade moves the subscription to the paid-for plan. Proration is
// recomputed against the clock at verification time; the preview the user
// saw is not trusted.
func (s *SubscriptionServiceImpl) applyUpgrade(ctx context.Context, payment subscription.Payment, channel string) error {
	sub, err := s.subRepo.GetByAccountID(ctx, payment.AccountID)
	if err != nil {
		return err
	}

	currentPlan, err := s.planRepo.GetByTier(ctx, sub.Tier)
	if err != nil {
		return err
	}
	targetPlan, err := s.planRepo.GetByTier(ctx, payment.TargetTier)
	if err != nil {
		return err
	}

	now := s.now()
	info := ComputeUpgrade(now, sub, currentPlan, targetPlan, payment.TargetCycle)

	sub.PlanID = targetPlan.ID
	sub.Tier = targetPlan.Tier
	sub.BillingCycle = payment.TargetCycle
	sub.Status = subscription.StatusActive
	sub.StartDate = now
	sub.EndDate = info.NewEndDate

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		if err := s.paymentRepo.MarkPaid(txCtx, payment.ID, channel); err != nil {
			return err
		}
		return s.subRepo.Update(txCtx, sub)
	})
	if err != nil {
		return err
	}

	s.logger.Info("subscription upgraded",
		"account_id", payment.AccountID,
		"plan", targetPlan.Tier,
		"bonus_days", info.BonusDays,
		"end_date", sub.EndDate.Format(time.RFC3339),
	)
	return nil
}

// ========== EXPIRY ==========

// ProcessExpiredSubscriptions marks every active subscription whose end
// date has passed as expired. Run periodically by the scheduler.
func (s *SubscriptionServiceImpl) ProcessExpiredSubscriptions(ctx context.Context) error {
	n, err := s.subRepo.UpdateExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	if n > 0 {
		s.logger.Info("expired subscriptions", "count", n)
	}
	return nil
}

// ========== HELPERS ==========

func (s *SubscriptionServiceImpl) loadUpgradeContext(ctx context.Context, req subscription.UpgradeRequest) (subscription.Subscription, subscription.Plan, subscription.Plan, error) {
	sub, err := s.subRepo.GetByAccountID(ctx, req.AccountID)
	if err != nil {
		return subscription.Subscription{}, subscription.Plan{}, subscription.Plan{}, err
	}

	currentPlan, err := s.planRepo.GetByTier(ctx, sub.Tier)
	if err != nil {
		return subscription.Subscription{}, subscription.Plan{}, subscription.Plan{}, err
	}

	targetPlan, err := s.planRepo.GetByTier(ctx, subscription.PlanTier(req.TargetPlan))
	if err != nil {
		return subscription.Subscription{}, subscription.Plan{}, subscription.Plan{}, err
	}
	if !targetPlan.IsActive {
		return subscription.Subscription{}, subscription.Plan{}, subscription.Plan{}, subscription.ErrPlanNotActive
	}

	return sub, currentPlan, targetPlan, nil
}

func toSubscriptionResponse(sub subscription.Subscription) subscription.SubscriptionResponse {
	resp := subscription.SubscriptionResponse{
		ID:           sub.ID,
		PlanTier:     string(sub.Tier),
		BillingCycle: string(sub.BillingCycle),
		Status:       string(sub.Status),
		StartDate:    sub.StartDate.Format(time.RFC3339),
		EndDate:      sub.EndDate.Format(time.RFC3339),
	}
	if sub.Plan != nil {
		resp.PlanName = sub.Plan.Name
	}
	return resp
}
