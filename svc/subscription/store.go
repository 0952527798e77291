package subscription

import "context"

// Store persists subscription state. Each user has at most one row, so
// UserID serves as the primary key and Save is an upsert.
type Store interface {
	// Get retrieves a subscription by user ID.
	// Returns ErrSubscriptionNotFound if no subscription exists.
	Get(ctx context.Context, userID string) (*Subscription, error)

	// Save creates or updates a subscription keyed by UserID.
	Save(ctx context.Context, sub *Subscription) error
}
