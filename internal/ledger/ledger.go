// Package ledger owns the cessation-tracking state: events, goals, achievements,
// quotes, settings and the derived per-day statistics. The whole state lives in memory
// and is written through to a storage.Provider as one JSON blob after every mutation.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/logger"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/storage"
	"github.com/julianstephens/quitwise/internal/utils"
	"github.com/julianstephens/quitwise/internal/validation"
)

// ErrNotFound is returned when an id does not match any record, or when an achievement
// is already unlocked.
var ErrNotFound = errors.New("not found")

// ErrNotOpen is returned by operations invoked before Open.
var ErrNotOpen = errors.New("ledger is not open")

type Ledger struct {
	mu        sync.Mutex
	store     storage.Provider
	validator *validation.Validator

	now   func() time.Time
	loc   *time.Location
	newID func() string
	key   string

	doc       models.Document
	open      bool
	loadIssue error
}

type Option func(*Ledger)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the timezone that defines calendar days. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithStateKey overrides the backing-store key holding the document.
func WithStateKey(key string) Option {
	return func(l *Ledger) { l.key = key }
}

// New returns a ledger over provider. The provider must already be initialized or
// loaded; call Open before any other method.
func New(provider storage.Provider, opts ...Option) *Ledger {
	l := &Ledger{
		store:     provider,
		validator: validation.MustNew(),
		now:       time.Now,
		loc:       time.UTC,
		newID:     uuid.NewString,
		key:       constants.StateKey,
		doc:       models.NewDocument(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open loads the state document. A missing, unreadable or invalid blob degrades to the
// first-run state; the reason is kept for LoadIssue and nothing is written until the
// first mutation.
func (l *Ledger) Open() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.doc = models.NewDocument()
	l.loadIssue = nil
	l.open = true

	blob, err := l.store.Read(l.key)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		logger.Debug("No saved state, starting fresh", "key", l.key)
		return nil
	case errors.Is(err, storage.ErrNotLoaded):
		l.open = false
		return err
	default:
		l.loadIssue = fmt.Errorf("failed to read saved state: %w", err)
		logger.Warn("Saved state unreadable, using defaults", "error", err)
		return nil
	}

	partial, err := l.validator.Decode(blob)
	if err != nil {
		l.loadIssue = err
		logger.Warn("Saved state invalid, using defaults", "error", err)
		return nil
	}
	l.doc = partial.MergeInto(l.doc)
	logger.Debug("Loaded state", "smokeLogs", len(l.doc.SmokeLogs), "cravingLogs", len(l.doc.CravingLogs))
	return nil
}

// LoadIssue returns why the last Open fell back to defaults, or nil.
func (l *Ledger) LoadIssue() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadIssue
}

// Close releases the backing store.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = false
	return l.store.Close()
}

// Location returns the timezone that defines calendar days.
func (l *Ledger) Location() *time.Location {
	return l.loc
}

// mutate applies fn to the state and writes the result through. If fn fails or the
// write fails the state is restored to what it was before the call.
func (l *Ledger) mutate(fn func(doc *models.Document) error) error {
	if !l.open {
		return ErrNotOpen
	}

	snapshot := l.doc.Clone()
	if err := fn(&l.doc); err != nil {
		l.doc = snapshot
		return err
	}
	if err := l.persist(); err != nil {
		l.doc = snapshot
		logger.Error("Failed to persist state", "error", err)
		return err
	}
	return nil
}

func (l *Ledger) persist() error {
	l.doc.Version = constants.SchemaVersion
	blob, err := json.Marshal(l.doc)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if err := l.store.Write(l.key, blob); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (l *Ledger) timestamp() string {
	return utils.FormatTimestamp(l.now(), l.loc)
}

func (l *Ledger) today() string {
	return utils.DayKey(l.now(), l.loc)
}
