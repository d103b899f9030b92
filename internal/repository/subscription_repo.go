package repository

import (
	"context"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

const subscriptionColumns = `id, user_id, cardholder, card_last4, exp_date, plan_purchased, date_of_purchase`

type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

type UpsertSubscriptionInput struct {
	UserID        int64
	Cardholder    string
	CardLast4     string
	ExpDate       time.Time
	PlanPurchased string
}

func scanSubscription(row pgx.Row, sub *models.Subscription) error {
	return row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Cardholder,
		&sub.CardLast4,
		&sub.ExpDate,
		&sub.PlanPurchased,
		&sub.DateOfPurchase,
	)
}

// Upsert keeps one subscription per user; a repeat purchase replaces the plan and
// restarts date_of_purchase.
func (r *SubscriptionRepository) Upsert(ctx context.Context, input UpsertSubscriptionInput) (*models.Subscription, error) {
	query := `
		INSERT INTO subscriptions (user_id, cardholder, card_last4, exp_date, plan_purchased)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET cardholder = EXCLUDED.cardholder,
			card_last4 = EXCLUDED.card_last4,
			exp_date = EXCLUDED.exp_date,
			plan_purchased = EXCLUDED.plan_purchased,
			date_of_purchase = NOW()
		RETURNING ` + subscriptionColumns
	var sub models.Subscription
	err := scanSubscription(r.db.QueryRow(ctx, query,
		input.UserID,
		input.Cardholder,
		input.CardLast4,
		input.ExpDate,
		input.PlanPurchased,
	), &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID int64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := scanSubscription(r.db.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1`, userID), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
