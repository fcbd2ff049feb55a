// internal/repository/objectstore/workout_repo.go
package objectstore

import (
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"encoding/json"
	"errors"
)

const contentTypeJSON = "application/json"

// objectWorkoutRepository keeps the collection as one JSON object in object storage.
// Each PUT replaces the object whole, so readers see either the old or the new collection.
type objectWorkoutRepository struct {
	store storage.ObjectStorage
	key   string
}

// NewObjectWorkoutRepository creates a repository for the given object key.
func NewObjectWorkoutRepository(store storage.ObjectStorage, objectKey string) repository.WorkoutRepository {
	if objectKey == "" {
		objectKey = storage.DefaultWorkoutsObjectKey
	}
	return &objectWorkoutRepository{store: store, key: objectKey}
}

// GetAll downloads and decodes the object, creating an empty one on first use.
func (r *objectWorkoutRepository) GetAll(ctx context.Context) ([]json.RawMessage, error) {
	data, err := r.store.GetObject(ctx, r.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			if err := r.ReplaceAll(ctx, nil); err != nil {
				return nil, err
			}
			return []json.RawMessage{}, nil
		}
		return nil, err
	}
	return repository.DecodeWorkouts(data)
}

// ReplaceAll uploads the encoded collection.
func (r *objectWorkoutRepository) ReplaceAll(ctx context.Context, items []json.RawMessage) error {
	data, err := repository.EncodeWorkouts(items)
	if err != nil {
		return err
	}
	return r.store.PutObject(ctx, r.key, data, contentTypeJSON)
}

func (r *objectWorkoutRepository) Close(ctx context.Context) error { return nil }
