package usage

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

// metricColumn maps metrics onto table columns. The metric must be
// validated before interpolation; Metric values never come from user
// input unchecked.
func metricColumn(metric Metric) (string, error) {
	switch metric {
	case MetricApplications:
		return "applications_count", nil
	case MetricAgentMessages:
		return "agent_messages_count", nil
	case MetricResumes:
		return "resumes_count", nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidMetric, metric)
}

func (s *PostgresStore) Increment(ctx context.Context, userID, month string, metric Metric) error {
	column, err := metricColumn(metric)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(
		`INSERT INTO usage_metrics (user_id, month, %[1]s, created_at, updated_at)
		 VALUES ($1, $2, 1, now(), now())
		 ON CONFLICT (user_id, month) DO UPDATE SET
		    %[1]s = usage_metrics.%[1]s + 1,
		    updated_at = now()`, column),
		userID, month,
	)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID, month string) (Counts, error) {
	var counts Counts
	err := s.pool.QueryRow(ctx,
		`SELECT applications_count, agent_messages_count, resumes_count
		 FROM usage_metrics WHERE user_id = $1 AND month = $2`,
		userID, month,
	).Scan(&counts.Applications, &counts.AgentMessages, &counts.Resumes)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Counts{}, nil
		}
		return Counts{}, fmt.Errorf("failed to get usage: %w", err)
	}
	return counts, nil
}
