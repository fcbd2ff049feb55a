// Package client talks to the workout persistence API over HTTP.
package client

import (
	"alcyxob/workout-tracker/internal/domain"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const workoutsPath = "/api/workouts"

// ErrUnexpectedStatus is returned for any non-200 response.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// WorkoutClient implements the store backend against a running server.
type WorkoutClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWorkoutClient creates a client for baseURL, e.g. http://localhost:3000.
// A zero timeout means requests are bounded only by their context.
func NewWorkoutClient(baseURL string, timeout time.Duration) *WorkoutClient {
	return &WorkoutClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetAll fetches the whole collection.
func (c *WorkoutClient) GetAll(ctx context.Context) ([]domain.Workout, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+workoutsPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get workouts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var workouts []domain.Workout
	if err := json.NewDecoder(resp.Body).Decode(&workouts); err != nil {
		return nil, fmt.Errorf("decode workouts: %w", err)
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

// ReplaceAll sends the whole collection, replacing what the server holds.
func (c *WorkoutClient) ReplaceAll(ctx context.Context, workouts []domain.Workout) error {
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	body, err := json.Marshal(workouts)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+workoutsPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("save workouts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// statusError turns an error response into ErrUnexpectedStatus, keeping the server's message.
func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, body.Error)
	}
	return fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
}
