package usage

import "context"

// Store persists monthly counters, one row per (user, month).
type Store interface {
	// Increment atomically adds one to a metric, creating the month row
	// on first use.
	Increment(ctx context.Context, userID, month string, metric Metric) error

	// Get returns the counters for a month. A missing row reads as all
	// zeros, not an error.
	Get(ctx context.Context, userID, month string) (Counts, error)
}
