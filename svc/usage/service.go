package usage

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/careeros/backend/pkg/logger"
)

// LimitResolver supplies the metric allowances for a user's current
// tier. Keys are metric names; missing keys and -1 mean unlimited.
// Implemented by the subscription service.
type LimitResolver interface {
	LimitsFor(ctx context.Context, userID string) map[string]int64
}

// Service enforces monthly usage limits derived from the user's tier.
type Service struct {
	store  Store
	limits LimitResolver
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithLogger sets a custom logger for the service
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// WithClock overrides the time source, used to pin the month in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new usage service
func NewService(store Store, limits LimitResolver, opts ...Option) *Service {
	s := &Service{
		store:  store,
		limits: limits,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Record counts one unit of a metric against the current month, refusing
// with ErrLimitExceeded once the tier allowance is reached. The check and
// the increment are separate statements, so concurrent requests can
// overshoot a limit by a small number of units.
func (s *Service) Record(ctx context.Context, userID string, metric Metric) error {
	if !metric.Valid() {
		return ErrInvalidMetric
	}

	month := MonthKey(s.now())
	limit := s.limitFor(ctx, userID, metric)

	if limit != Unlimited {
		counts, err := s.store.Get(ctx, userID, month)
		if err != nil {
			return err
		}
		if counts.Of(metric) >= limit {
			s.logger.InfoContext(ctx, "usage limit reached",
				logger.UserID(userID),
				logger.Metric(string(metric)),
				slog.Int64("limit", limit),
				logger.Component("usage"),
			)
			return ErrLimitExceeded
		}
	}

	return s.store.Increment(ctx, userID, month, metric)
}

// Snapshot returns the current month's counters alongside the limits in
// effect for the user's tier.
func (s *Service) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	month := MonthKey(s.now())

	counts, err := s.store.Get(ctx, userID, month)
	if err != nil {
		return Snapshot{}, err
	}

	limits := make(map[Metric]int64, len(Metrics()))
	for _, metric := range Metrics() {
		limits[metric] = s.limitFor(ctx, userID, metric)
	}

	return Snapshot{Month: month, Counts: counts, Limits: limits}, nil
}

func (s *Service) limitFor(ctx context.Context, userID string, metric Metric) int64 {
	limits := s.limits.LimitsFor(ctx, userID)
	limit, ok := limits[string(metric)]
	if !ok {
		return Unlimited
	}
	return limit
}
