package subscription

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careeros/backend/pkg/pg"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*Subscription, error) {
	var sub Subscription
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, tier, status, provider_customer_id, provider_sub_id,
		        price_id, current_period_end, created_at, updated_at
		 FROM subscriptions WHERE user_id = $1`,
		userID,
	).Scan(
		&sub.UserID, &sub.Tier, &sub.Status, &sub.ProviderCustomerID,
		&sub.ProviderSubID, &sub.PriceID, &sub.CurrentPeriodEnd,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

func (s *PostgresStore) Save(ctx context.Context, sub *Subscription) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscriptions (
		    user_id, tier, status, provider_customer_id, provider_sub_id,
		    price_id, current_period_end, created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		    tier = EXCLUDED.tier,
		    status = EXCLUDED.status,
		    provider_customer_id = EXCLUDED.provider_customer_id,
		    provider_sub_id = EXCLUDED.provider_sub_id,
		    price_id = EXCLUDED.price_id,
		    current_period_end = EXCLUDED.current_period_end,
		    updated_at = EXCLUDED.updated_at`,
		sub.UserID, sub.Tier, sub.Status, sub.ProviderCustomerID,
		sub.ProviderSubID, sub.PriceID, sub.CurrentPeriodEnd,
		sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}
