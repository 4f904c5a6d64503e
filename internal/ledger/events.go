package ledger

import (
	"strings"

	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/utils"
)

// AddSmokeEvent logs a cigarette at the current time and recomputes that day's stats.
// Trigger and mood are open-set tags but must not be blank.
func (l *Ledger) AddSmokeEvent(trigger, mood, notes string) (models.SmokeEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event := models.SmokeEvent{
		ID:        l.newID(),
		Timestamp: l.timestamp(),
		Trigger:   strings.TrimSpace(trigger),
		Mood:      strings.TrimSpace(mood),
		Notes:     strings.TrimSpace(notes),
	}
	if err := l.validator.Struct(event); err != nil {
		return models.SmokeEvent{}, err
	}

	err := l.mutate(func(doc *models.Document) error {
		doc.SmokeLogs = append(doc.SmokeLogs, event)
		recomputeDay(doc, utils.TimestampDay(event.Timestamp))
		return nil
	})
	if err != nil {
		return models.SmokeEvent{}, err
	}
	return event, nil
}

// UndoLastSmokeEvent removes the most recently appended cigarette. It reports false,
// with no write, when there is nothing to undo. The day's stat record is kept at zero.
func (l *Ledger) UndoLastSmokeEvent() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.doc.SmokeLogs) == 0 {
		return false, nil
	}
	err := l.mutate(func(doc *models.Document) error {
		last := doc.SmokeLogs[len(doc.SmokeLogs)-1]
		doc.SmokeLogs = doc.SmokeLogs[:len(doc.SmokeLogs)-1]
		recomputeDay(doc, utils.TimestampDay(last.Timestamp))
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// SmokeEvents returns events in logging order, filtered to r when it has bounds.
func (l *Ledger) SmokeEvents(r models.TimeRange) []models.SmokeEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.SmokeEvent, 0, len(l.doc.SmokeLogs))
	for _, e := range l.doc.SmokeLogs {
		if inRange(e.Timestamp, r) {
			out = append(out, e)
		}
	}
	return out
}

// AddCravingEvent logs a resisted craving. Cravings only affect cravingsResisted.
func (l *Ledger) AddCravingEvent(in models.CravingInput) (models.CravingEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event := models.CravingEvent{
		ID:        l.newID(),
		Timestamp: l.timestamp(),
		Intensity: in.Intensity,
		Mood:      strings.TrimSpace(in.Mood),
		Notes:     strings.TrimSpace(in.Notes),
	}
	if in.Duration != nil {
		d := *in.Duration
		event.Duration = &d
	}
	if err := l.validator.Struct(event); err != nil {
		return models.CravingEvent{}, err
	}

	err := l.mutate(func(doc *models.Document) error {
		doc.CravingLogs = append(doc.CravingLogs, event)
		recomputeDay(doc, utils.TimestampDay(event.Timestamp))
		return nil
	})
	if err != nil {
		return models.CravingEvent{}, err
	}
	return cloneCraving(event), nil
}

// CravingEvents returns cravings in logging order, filtered to r when it has bounds.
func (l *Ledger) CravingEvents(r models.TimeRange) []models.CravingEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.CravingEvent, 0, len(l.doc.CravingLogs))
	for _, e := range l.doc.CravingLogs {
		if inRange(e.Timestamp, r) {
			out = append(out, cloneCraving(e))
		}
	}
	return out
}

// inRange reports whether ts lies in r. Timestamps that do not parse only match an
// unbounded range.
func inRange(ts string, r models.TimeRange) bool {
	if r.IsUnbounded() {
		return true
	}
	t, err := utils.ParseTimestamp(ts)
	if err != nil {
		return false
	}
	return r.Contains(t)
}

func cloneCraving(e models.CravingEvent) models.CravingEvent {
	if e.Duration != nil {
		d := *e.Duration
		e.Duration = &d
	}
	return e
}
