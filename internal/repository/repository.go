package repository

import (
	"context"
	"encoding/json"
)

// Error constants for repository layer
var (
	ErrCorrupt       = RepositoryError("stored workouts are not a valid JSON array")
	ErrUnknownDriver = RepositoryError("unknown storage driver")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutRepository stores the whole workout collection as a single unit.
// There are no per-record operations: every write replaces the collection.
// Entries are opaque JSON values so that fields this server does not model survive.
type WorkoutRepository interface {
	// GetAll returns the collection exactly as last written. A backing store that does not
	// exist yet yields an empty, non-nil slice.
	GetAll(ctx context.Context) ([]json.RawMessage, error)
	// ReplaceAll overwrites the stored collection with items, preserving order.
	ReplaceAll(ctx context.Context, items []json.RawMessage) error
	// Close releases driver resources.
	Close(ctx context.Context) error
}
