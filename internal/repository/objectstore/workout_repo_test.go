package objectstore

import (
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryObjects) GetObject(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (m *memoryObjects) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.objects[key] = append([]byte(nil), data...)
	m.types[key] = contentType
	return nil
}

func TestObjectWorkoutRepository_InitialisesMissingObject(t *testing.T) {
	objects := newMemoryObjects()
	repo := NewObjectWorkoutRepository(objects, "")

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.Contains(t, objects.objects, storage.DefaultWorkoutsObjectKey)
	assert.JSONEq(t, `[]`, string(objects.objects[storage.DefaultWorkoutsObjectKey]))
	assert.Equal(t, "application/json", objects.types[storage.DefaultWorkoutsObjectKey])
}

func TestObjectWorkoutRepository_RoundTrip(t *testing.T) {
	repo := NewObjectWorkoutRepository(newMemoryObjects(), "me/workouts.json")
	ctx := context.Background()

	want := []json.RawMessage{
		json.RawMessage(`{"id":"1","title":"Row","date":"2024-05-01","description":"5k","results":"","status":"complete","strokeRate":24}`),
		json.RawMessage(`{"id":"0","title":"Workout","date":"2024-04-01","description":"","results":"","comments":"","status":"missed"}`),
	}
	require.NoError(t, repo.ReplaceAll(ctx, want))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}

func TestObjectWorkoutRepository_Errors(t *testing.T) {
	objects := newMemoryObjects()
	repo := NewObjectWorkoutRepository(objects, "k")

	objects.objects["k"] = []byte(`{"oops":true}`)
	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, repository.ErrCorrupt)

	boom := errors.New("unreachable")
	objects.err = boom
	_, err = repo.GetAll(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, repo.ReplaceAll(context.Background(), nil), boom)
}
