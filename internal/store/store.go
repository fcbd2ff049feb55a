// Package store holds the client-side workout list. Every mutation updates the in-memory
// collection synchronously and then saves the whole collection to the backend in the
// background. Failures never propagate to callers; they are exposed through LastError.
package store

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// User-visible error messages.
const (
	MsgLoadFailed = "Failed to load workouts"
	MsgSaveFailed = "Failed to save workouts"
)

// Backend is where the collection is loaded from and saved to.
type Backend interface {
	GetAll(ctx context.Context) ([]domain.Workout, error)
	ReplaceAll(ctx context.Context, workouts []domain.Workout) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the uuid-based id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger used to record failed loads and saves.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Store is safe for concurrent use.
type Store struct {
	backend Backend
	now     func() time.Time
	newID   func() string
	log     *logger.Logger

	mu           sync.RWMutex
	workouts     []domain.Workout
	selectedDate string
	loading      bool
	lastError    string

	saves sync.WaitGroup
}

// New creates an empty store. Call Load to hydrate it.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		now:      time.Now,
		newID:    uuid.NewString,
		log:      logger.NewNop(),
		workouts: []domain.Workout{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.selectedDate = s.today()
	return s
}

func (s *Store) today() string {
	return domain.Today(s.now())
}

// Load replaces the collection with the backend's copy. On failure the current collection is
// kept and LastError is set. There is no automatic retry.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	workouts, err := s.backend.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.Errorw("Error loading workouts", "error", err)
		s.lastError = MsgLoadFailed
		return
	}

	loaded := make([]domain.Workout, len(workouts))
	for i, w := range workouts {
		// Older files predate titles.
		if w.Title == "" {
			w.Title = domain.DefaultTitle
		}
		loaded[i] = w
	}
	s.workouts = loaded
	s.lastError = ""
}

// Add appends a new workout and returns it as stored. Its status is derived from the date alone:
// upcoming for today or later, missed for past dates. An empty or already used id is replaced
// with a fresh one.
func (s *Store) Add(w domain.Workout) domain.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.ID == "" || s.indexOf(w.ID) >= 0 {
		w.ID = s.newID()
	}
	w.Status = domain.StatusUpcoming
	w.Normalize(s.today())

	s.workouts = append(s.workouts, w)
	s.persist()
	return w
}

// Update replaces the workout with the same id in place. It reports false, and does nothing,
// when no such workout exists. An invalid status on a known workout records an error and
// changes nothing.
func (s *Store) Update(w domain.Workout) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(w.ID)
	if i < 0 {
		return false
	}
	if w.Status != "" && !w.Status.Valid() {
		s.lastError = fmt.Sprintf("Invalid status %q", w.Status)
		return false
	}
	w.Normalize(s.today())
	s.workouts[i] = w
	s.persist()
	return true
}

// SetStatus changes only the status of a workout, with the same past-date rule as Update.
// Unknown ids are ignored silently; an invalid status on a known workout records an error
// and changes nothing.
func (s *Store) SetStatus(id string, status domain.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	if !status.Valid() {
		s.lastError = fmt.Sprintf("Invalid status %q", status)
		return false
	}
	w := s.workouts[i]
	w.Status = domain.DeriveStatus(w.Date, status, s.today())
	s.workouts[i] = w
	s.persist()
	return true
}

// Delete removes the workout with the given id, reporting whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.workouts = append(s.workouts[:i:i], s.workouts[i+1:]...)
	s.persist()
	return true
}

// ByDate returns the workouts on date in insertion order.
func (s *Store) ByDate(date string) []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Workout{}
	for _, w := range s.workouts {
		if w.Date == date {
			out = append(out, w)
		}
	}
	return out
}

// Get returns the workout with the given id.
func (s *Store) Get(id string) (domain.Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.workouts[i], true
	}
	return domain.Workout{}, false
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// SelectedDate is the day currently being viewed. It starts as today.
func (s *Store) SelectedDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate
}

// SelectDate changes the viewed day.
func (s *Store) SelectDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDate = date
}

// Loading reports whether a Load is in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError is the most recent user-visible failure message, or "".
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// ClearError dismisses LastError.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// Wait blocks until every save started so far has finished.
func (s *Store) Wait() {
	s.saves.Wait()
}

// persist saves a snapshot of the collection in the background. Saves are not queued or
// coalesced, so overlapping saves may finish in any order. Callers hold s.mu.
func (s *Store) persist() {
	snapshot := s.snapshot()
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := s.backend.ReplaceAll(context.Background(), snapshot); err != nil {
			s.log.Errorw("Error saving workouts", "error", err, "count", len(snapshot))
			s.mu.Lock()
			s.lastError = MsgSaveFailed
			s.mu.Unlock()
		}
	}()
}

func (s *Store) snapshot() []domain.Workout {
	out := make([]domain.Workout, len(s.workouts))
	copy(out, s.workouts)
	return out
}

func (s *Store) indexOf(id string) int {
	for i, w := range s.workouts {
		if w.ID == id {
			return i
		}
	}
	return -1
}
