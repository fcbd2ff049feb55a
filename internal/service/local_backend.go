package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
	"encoding/json"
	"fmt"
)

// LocalBackend gives in-process callers a typed view of a WorkoutService, the same view the
// HTTP client offers over /api/workouts.
type LocalBackend struct {
	svc WorkoutService
}

// NewLocalBackend wraps svc.
func NewLocalBackend(svc WorkoutService) *LocalBackend {
	return &LocalBackend{svc: svc}
}

// GetAll decodes every stored entry as a workout.
func (b *LocalBackend) GetAll(ctx context.Context) ([]domain.Workout, error) {
	items, err := b.svc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	workouts := make([]domain.Workout, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &workouts[i]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrReadFailed, i, err)
		}
	}
	return workouts, nil
}

// ReplaceAll encodes workouts and stores them as the whole collection.
func (b *LocalBackend) ReplaceAll(ctx context.Context, workouts []domain.Workout) error {
	items := make([]json.RawMessage, len(workouts))
	for i, w := range workouts {
		data, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
		items[i] = data
	}
	return b.svc.ReplaceAll(ctx, items)
}
