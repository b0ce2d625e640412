package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/subscription"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/database"
)

// ========== PLANS ==========

type planRepository struct {
	db *database.DB
}

func NewPlanRepository(db *database.DB) subscription.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) ListActive(ctx context.Context) ([]subscription.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tier, name, monthly_price, yearly_price, is_active, created_at
		FROM plans
		WHERE is_active = TRUE
		ORDER BY monthly_price
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []subscription.Plan
	for rows.Next() {
		var p subscription.Plan
		if err := rows.Scan(&p.ID, &p.Tier, &p.Name, &p.MonthlyPrice, &p.YearlyPrice, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plans: %w", err)
	}

	return plans, nil
}

func (r *planRepository) GetByTier(ctx context.Context, tier subscription.PlanTier) (subscription.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tier, name, monthly_price, yearly_price, is_active, created_at
		FROM plans
		WHERE tier = $1
	`

	var p subscription.Plan
	err := q.QueryRow(ctx, query, tier).Scan(&p.ID, &p.Tier, &p.Name, &p.MonthlyPrice, &p.YearlyPrice, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Plan{}, subscription.ErrPlanNotFound
		}
		return subscription.Plan{}, fmt.Errorf("failed to get plan: %w", err)
	}

	return p, nil
}

// ========== SUBSCRIPTIONS ==========

type subscriptionRepository struct {
	db *database.DB
}

func NewSubscriptionRepository(db *database.DB) subscription.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetByAccountID(ctx context.Context, accountID string) (subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.account_id, s.plan_id, s.tier, s.billing_cycle, s.status,
			   s.start_date, s.end_date, s.created_at, s.updated_at,
			   p.id, p.tier, p.name, p.monthly_price, p.yearly_price, p.is_active, p.created_at
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.account_id = $1
	`

	var (
		sub  subscription.Subscription
		plan subscription.Plan
	)
	err := q.QueryRow(ctx, query, accountID).Scan(
		&sub.ID, &sub.AccountID, &sub.PlanID, &sub.Tier, &sub.BillingCycle, &sub.Status,
		&sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt,
		&plan.ID, &plan.Tier, &plan.Name, &plan.MonthlyPrice, &plan.YearlyPrice, &plan.IsActive, &plan.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Subscription{}, subscription.ErrSubscriptionNotFound
		}
		return subscription.Subscription{}, fmt.Errorf("failed to get subscription: %w", err)
	}

	sub.Plan = &plan
	return sub, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub subscription.Subscription) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET plan_id = $1, tier = $2, billing_cycle = $3, status = $4,
			start_date = $5, end_date = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		sub.PlanID, sub.Tier, sub.BillingCycle, sub.Status, sub.StartDate, sub.EndDate, sub.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}
	return nil
}

func (r *subscriptionRepository) UpdateExpired(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND end_date < NOW()
	`

	tag, err := q.Exec(ctx, query, subscription.StatusExpired, subscription.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ========== PAYMENTS ==========

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) subscription.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment subscription.Payment) (subscription.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO subscription_payments (
			account_id, subscription_id, amount, status, gateway_ref,
			target_plan_id, target_tier, target_cycle
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, account_id, subscription_id, amount, COALESCE(method, ''), status, gateway_ref,
			target_plan_id, target_tier, target_cycle, paid_at, created_at, updated_at
	`

	var p subscription.Payment
	err := q.QueryRow(ctx, query,
		payment.AccountID, payment.SubscriptionID, payment.Amount, payment.Status, payment.GatewayRef,
		payment.TargetPlanID, payment.TargetTier, payment.TargetCycle,
	).Scan(
		&p.ID, &p.AccountID, &p.SubscriptionID, &p.Amount, &p.Method, &p.Status, &p.GatewayRef,
		&p.TargetPlanID, &p.TargetTier, &p.TargetCycle, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return subscription.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) GetByGatewayRef(ctx context.Context, ref string) (subscription.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, account_id, subscription_id, amount, COALESCE(method, ''), status, gateway_ref,
			   target_plan_id, target_tier, target_cycle, paid_at, created_at, updated_at
		FROM subscription_payments
		WHERE gateway_ref = $1
	`

	var p subscription.Payment
	err := q.QueryRow(ctx, query, ref).Scan(
		&p.ID, &p.AccountID, &p.SubscriptionID, &p.Amount, &p.Method, &p.Status, &p.GatewayRef,
		&p.TargetPlanID, &p.TargetTier, &p.TargetCycle, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Payment{}, subscription.ErrPaymentNotFound
		}
		return subscription.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id string, method string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE subscription_payments
		SET status = $1, method = $2, paid_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, subscription.PaymentPaid, method, id, subscription.PaymentPending)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrPaymentAlreadyVerified
	}
	return nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE subscription_payments
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, subscription.PaymentFailed, id, subscription.PaymentPending)
	if err != nil {
		return fmt.Errorf("failed to mark payment failed: %w", err)
	}
	return nil
}
