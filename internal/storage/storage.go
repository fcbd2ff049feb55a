package storage

import (
	"context"
	"errors"
)

// DefaultWorkoutsObjectKey is the object that holds the workout collection.
const DefaultWorkoutsObjectKey = "workouts.json"

// ObjectStorage defines the object storage operations the workout store needs.
type ObjectStorage interface {
	// GetObject returns the full content of an object, or ErrObjectNotFound.
	GetObject(ctx context.Context, objectKey string) ([]byte, error)

	// PutObject creates or overwrites an object in one request.
	PutObject(ctx context.Context, objectKey string, data []byte, contentType string) error
}

// Error constants for storage layer
var (
	ErrObjectNotFound = errors.New("object not found in storage")
)
