// internal/repository/file/workout_repo.go
package file

import (
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is where workouts live when no path is configured.
const DefaultPath = "data/workouts.json"

// fileWorkoutRepository implements repository.WorkoutRepository on a single JSON file.
type fileWorkoutRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileWorkoutRepository creates the parent directory and an empty collection file when
// they do not exist yet.
func NewFileWorkoutRepository(path string) (repository.WorkoutRepository, error) {
	if path == "" {
		path = DefaultPath
	}
	r := &fileWorkoutRepository{path: path}
	if err := r.ensureFile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *fileWorkoutRepository) ensureFile() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return r.write(nil)
}

// GetAll reads and decodes the whole file.
func (r *fileWorkoutRepository) GetAll(ctx context.Context) ([]json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		// Removed behind our back; treat it as a fresh install.
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	return repository.DecodeWorkouts(data)
}

// ReplaceAll rewrites the whole file.
func (r *fileWorkoutRepository) ReplaceAll(ctx context.Context, items []json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(items)
}

// write streams to a temp file in the same directory and renames it over the target, so an
// interrupted write leaves the previous file intact.
func (r *fileWorkoutRepository) write(items []json.RawMessage) error {
	data, err := repository.EncodeWorkouts(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".workouts-*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

func (r *fileWorkoutRepository) Close(ctx context.Context) error { return nil }
