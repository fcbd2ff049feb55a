package service

import (
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	ErrReadFailed  = errors.New("failed to read workouts")
	ErrWriteFailed = errors.New("failed to save workouts")
)

// WorkoutService is the persistence service behind /api/workouts. It mirrors whatever it is
// given: entries are opaque JSON values and no validation, deduplication or status
// recomputation happens here.
type WorkoutService interface {
	GetAll(ctx context.Context) ([]json.RawMessage, error)
	ReplaceAll(ctx context.Context, items []json.RawMessage) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	repo    repository.WorkoutRepository
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(repo repository.WorkoutRepository, log *logger.Logger, m *metrics.Metrics) WorkoutService {
	return &workoutService{
		repo:    repo,
		log:     log.WithComponent("workout_service"),
		metrics: m,
	}
}

// GetAll returns the stored collection as last written.
func (s *workoutService) GetAll(ctx context.Context) ([]json.RawMessage, error) {
	items, err := s.repo.GetAll(ctx)
	s.metrics.ObservePersistence("read", err)
	if err != nil {
		s.log.Errorw("Error reading workouts", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	s.metrics.StoredWorkouts.Set(float64(len(items)))
	return items, nil
}

// ReplaceAll overwrites the stored collection in its entirety.
func (s *workoutService) ReplaceAll(ctx context.Context, items []json.RawMessage) error {
	if items == nil {
		items = []json.RawMessage{}
	}
	err := s.repo.ReplaceAll(ctx, items)
	s.metrics.ObservePersistence("write", err)
	if err != nil {
		s.log.Errorw("Error writing workouts", "error", err, "count", len(items))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	s.metrics.StoredWorkouts.Set(float64(len(items)))
	s.log.Debugw("Workouts replaced", "count", len(items))
	return nil
}
