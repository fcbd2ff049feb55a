package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/metrics"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWorkoutRepository satisfies repository.WorkoutRepository
type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) GetAll(ctx context.Context) ([]json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockWorkoutRepository) ReplaceAll(ctx context.Context, items []json.RawMessage) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockWorkoutRepository) Close(ctx context.Context) error { return nil }

func rawItems(entries ...string) []json.RawMessage {
	items := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		items[i] = json.RawMessage(e)
	}
	return items
}

func TestWorkoutService_GetAll_PassesThrough(t *testing.T) {
	repo := new(MockWorkoutRepository)
	m := metrics.New()
	svc := NewWorkoutService(repo, logger.NewNop(), m)

	// Stored data is returned verbatim, even when it breaks the write invariants.
	stored := rawItems(`{"id":"1","title":"","date":"2000-01-01","status":"upcoming","heartRate":150}`)
	repo.On("GetAll", mock.Anything).Return(stored, nil)

	got, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoredWorkouts))
	repo.AssertExpectations(t)
}

func TestWorkoutService_GetAll_Error(t *testing.T) {
	repo := new(MockWorkoutRepository)
	m := metrics.New()
	svc := NewWorkoutService(repo, logger.NewNop(), m)

	cause := errors.New("permission denied")
	repo.On("GetAll", mock.Anything).Return(nil, cause)

	_, err := svc.GetAll(context.Background())
	assert.ErrorIs(t, err, ErrReadFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceOps.WithLabelValues("read", "error")))
}

func TestWorkoutService_ReplaceAll(t *testing.T) {
	repo := new(MockWorkoutRepository)
	svc := NewWorkoutService(repo, logger.NewNop(), metrics.New())

	items := rawItems(`{"id":"1"}`, `{"id":"1"}`, `7`)
	repo.On("ReplaceAll", mock.Anything, items).Return(nil).Once()
	repo.On("ReplaceAll", mock.Anything, []json.RawMessage{}).Return(nil).Once()

	require.NoError(t, svc.ReplaceAll(context.Background(), items), "entries are stored as given")
	require.NoError(t, svc.ReplaceAll(context.Background(), nil), "nil is stored as an empty collection")
	repo.AssertExpectations(t)
}

func TestWorkoutService_ReplaceAll_Error(t *testing.T) {
	repo := new(MockWorkoutRepository)
	svc := NewWorkoutService(repo, logger.NewNop(), metrics.New())

	repo.On("ReplaceAll", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := svc.ReplaceAll(context.Background(), rawItems(`{"id":"1"}`))
	assert.ErrorIs(t, err, ErrWriteFailed)
}

func TestLocalBackend_RoundTrip(t *testing.T) {
	repo := new(MockWorkoutRepository)
	backend := NewLocalBackend(NewWorkoutService(repo, logger.NewNop(), metrics.New()))

	workouts := []domain.Workout{{ID: "a", Title: "Run", Date: "2024-06-01", Status: domain.StatusComplete}}
	repo.On("ReplaceAll", mock.Anything, mock.MatchedBy(func(items []json.RawMessage) bool {
		return len(items) == 1 && string(items[0]) == `{"id":"a","title":"Run","date":"2024-06-01","description":"","results":"","status":"complete"}`
	})).Return(nil)
	require.NoError(t, backend.ReplaceAll(context.Background(), workouts))

	repo.On("GetAll", mock.Anything).Return(rawItems(`{"id":"a","title":"Run","date":"2024-06-01","status":"complete","extra":true}`), nil)
	got, err := backend.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Workout{{ID: "a", Title: "Run", Date: "2024-06-01", Status: domain.StatusComplete}}, got)
	repo.AssertExpectations(t)
}

func TestLocalBackend_UndecodableEntry(t *testing.T) {
	repo := new(MockWorkoutRepository)
	backend := NewLocalBackend(NewWorkoutService(repo, logger.NewNop(), metrics.New()))

	repo.On("GetAll", mock.Anything).Return(rawItems(`{"id":"a"}`, `42`), nil)
	_, err := backend.GetAll(context.Background())
	assert.ErrorIs(t, err, ErrReadFailed)
}
