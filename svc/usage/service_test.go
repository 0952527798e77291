package usage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careeros/backend/svc/usage"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Increment(ctx context.Context, userID, month string, metric usage.Metric) error {
	args := m.Called(ctx, userID, month, metric)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, userID, month string) (usage.Counts, error) {
	args := m.Called(ctx, userID, month)
	return args.Get(0).(usage.Counts), args.Error(1)
}

// staticLimits is a fixed LimitResolver.
type staticLimits map[string]int64

func (l staticLimits) LimitsFor(_ context.Context, _ string) map[string]int64 {
	return l
}

var freeLimits = staticLimits{
	"applications":   5,
	"agent_messages": 10,
	"resumes":        3,
}

func fixedClock() func() time.Time {
	ts := time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestMonthKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2025-07", usage.MonthKey(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	// Local time close to a month boundary buckets by UTC.
	loc := time.FixedZone("UTC+5", 5*3600)
	assert.Equal(t, "2025-06", usage.MonthKey(time.Date(2025, time.July, 1, 2, 0, 0, 0, loc)))
}

func TestService_Record(t *testing.T) {
	t.Parallel()

	t.Run("increments under the limit", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("Get", mock.Anything, "user_1", "2025-07").Return(usage.Counts{Applications: 4}, nil)
		store.On("Increment", mock.Anything, "user_1", "2025-07", usage.MetricApplications).Return(nil)

		svc := usage.NewService(store, freeLimits, usage.WithClock(fixedClock()))
		require.NoError(t, svc.Record(t.Context(), "user_1", usage.MetricApplications))
		store.AssertExpectations(t)
	})

	t.Run("refuses at the limit without incrementing", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("Get", mock.Anything, "user_1", "2025-07").Return(usage.Counts{Applications: 5}, nil)

		svc := usage.NewService(store, freeLimits, usage.WithClock(fixedClock()))
		err := svc.Record(t.Context(), "user_1", usage.MetricApplications)
		assert.ErrorIs(t, err, usage.ErrLimitExceeded)
		store.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unlimited skips the read", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("Increment", mock.Anything, "user_1", "2025-07", usage.MetricResumes).Return(nil)

		limits := staticLimits{"resumes": usage.Unlimited}
		svc := usage.NewService(store, limits, usage.WithClock(fixedClock()))
		require.NoError(t, svc.Record(t.Context(), "user_1", usage.MetricResumes))
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("metric absent from plan is unlimited", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("Increment", mock.Anything, "user_1", "2025-07", usage.MetricResumes).Return(nil)

		svc := usage.NewService(store, staticLimits{}, usage.WithClock(fixedClock()))
		require.NoError(t, svc.Record(t.Context(), "user_1", usage.MetricResumes))
	})

	t.Run("rejects unknown metric", func(t *testing.T) {
		t.Parallel()

		svc := usage.NewService(&MockStore{}, freeLimits)
		err := svc.Record(t.Context(), "user_1", usage.Metric("logins"))
		assert.ErrorIs(t, err, usage.ErrInvalidMetric)
	})
}

func TestService_Snapshot(t *testing.T) {
	t.Parallel()

	store := &MockStore{}
	store.On("Get", mock.Anything, "user_1", "2025-07").
		Return(usage.Counts{Applications: 3, AgentMessages: 7, Resumes: 1}, nil)

	svc := usage.NewService(store, freeLimits, usage.WithClock(fixedClock()))

	snap, err := svc.Snapshot(t.Context(), "user_1")
	require.NoError(t, err)

	assert.Equal(t, "2025-07", snap.Month)
	assert.Equal(t, int64(3), snap.Counts.Applications)
	assert.Equal(t, int64(7), snap.Counts.AgentMessages)
	assert.Equal(t, int64(1), snap.Counts.Resumes)
	assert.Equal(t, int64(5), snap.Limits[usage.MetricApplications])
	assert.Equal(t, int64(10), snap.Limits[usage.MetricAgentMessages])
	assert.Equal(t, int64(3), snap.Limits[usage.MetricResumes])
}
