package models

import "time"

// SmokeEvent is one logged cigarette. Trigger and Mood are open-set tags.
type SmokeEvent struct {
	ID        string `json:"id" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Trigger   string `json:"trigger" validate:"required"`
	Mood      string `json:"mood" validate:"required"`
	Notes     string `json:"notes,omitempty"`
}

// CravingEvent is a craving the user logged instead of smoking.
type CravingEvent struct {
	ID        string   `json:"id" validate:"required"`
	Timestamp string   `json:"timestamp" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Intensity int      `json:"intensity" validate:"min=1,max=5"`
	Mood      string   `json:"mood" validate:"required"`
	Notes     string   `json:"notes,omitempty"`
	Duration  *float64 `json:"duration,omitempty" validate:"omitempty,gte=0"` // minutes
}

// CravingInput holds the caller-supplied fields of a new craving.
type CravingInput struct {
	Intensity int
	Mood      string
	Notes     string
	Duration  *float64
}

// TimeRange bounds an event query. A zero Start or End leaves that side unbounded.
// Both bounds are inclusive.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// IsUnbounded reports whether neither bound is set.
func (r TimeRange) IsUnbounded() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
