package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used for Workout.Date.
const DateLayout = "2006-01-02"

// DefaultTitle replaces an empty title on every write.
const DefaultTitle = "Workout"

// Status type for the workout lifecycle
type Status string

const (
	StatusUpcoming Status = "upcoming" // Today or in the future, not yet done
	StatusMissed   Status = "missed"   // Date passed without being completed
	StatusComplete Status = "complete" // Marked done by the user
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusMissed, StatusComplete:
		return true
	}
	return false
}

// ParseStatus converts user input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q (want upcoming, missed or complete)", raw)
	}
	return s, nil
}

// Workout represents a single planned or logged exercise session for a specific date.
type Workout struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
	Results     string `json:"results"`
	Comments    string `json:"comments,omitempty"`
	Status      Status `json:"status"`
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// Today formats the calendar day of now in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// IsPast reports whether date is strictly before today. Both are compared at day granularity,
// so a workout dated today is not past. Unparseable dates are never past.
func IsPast(date, today string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	t, err := ParseDate(today)
	if err != nil {
		return false
	}
	return d.Before(t)
}

// DeriveStatus applies the status rules for a write: an upcoming (or unset) status on a past
// date becomes missed, an unset status on any other date becomes upcoming, everything else is
// kept as requested.
func DeriveStatus(date string, requested Status, today string) Status {
	if requested == "" {
		requested = StatusUpcoming
	}
	if requested == StatusUpcoming && IsPast(date, today) {
		return StatusMissed
	}
	return requested
}

// Normalize enforces the write invariants in place.
func (w *Workout) Normalize(today string) {
	if w.Title == "" {
		w.Title = DefaultTitle
	}
	w.Status = DeriveStatus(w.Date, w.Status, today)
}
