package client

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutClient_RoundTrip(t *testing.T) {
	var mu sync.Mutex
	stored := []byte(`[]`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "/api/workouts", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(stored)
		case http.MethodPost:
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			stored, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"success":true}`))
		}
	}))
	defer srv.Close()

	c := NewWorkoutClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	got, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	want := []domain.Workout{
		{ID: "1", Title: "Hill repeats", Date: "2024-02-01", Description: "8x", Status: domain.StatusUpcoming},
		{ID: "2", Title: "Workout", Date: "2024-01-01", Results: "skipped", Status: domain.StatusMissed},
	}
	require.NoError(t, c.ReplaceAll(ctx, want))

	got, err = c.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWorkoutClient_NilIsSentAsEmptyArray(t *testing.T) {
	var mu sync.Mutex
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	require.NoError(t, NewWorkoutClient(srv.URL, 0).ReplaceAll(context.Background(), nil))
	mu.Lock()
	defer mu.Unlock()
	assert.JSONEq(t, `[]`, string(body))
}

func TestWorkoutClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Failed to read workouts"})
	}))
	defer srv.Close()

	c := NewWorkoutClient(srv.URL, time.Second)

	_, err := c.GetAll(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "Failed to read workouts")

	err = c.ReplaceAll(context.Background(), []domain.Workout{})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestWorkoutClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewWorkoutClient(url, time.Second).GetAll(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnexpectedStatus)
}
