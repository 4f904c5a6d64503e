package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/storage"
	"github.com/julianstephens/quitwise/internal/storage/mock"
	"github.com/julianstephens/quitwise/internal/validation"
)

// base is a Wednesday; the quote seed "Wed Oct 14 2026" sums to 981.
var base = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func (c *fakeClock) AddDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.AddDate(0, 0, n)
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestLedger(t *testing.T, opts ...Option) (*Ledger, *storage.MemoryStore, *fakeClock) {
	t.Helper()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init())
	clock := &fakeClock{t: base}
	all := append([]Option{WithClock(clock.Now), WithIDGenerator(sequentialIDs())}, opts...)
	l := New(store, all...)
	require.NoError(t, l.Open())
	return l, store, clock
}

func TestOpen_FreshStore(t *testing.T) {
	l, store, _ := newTestLedger(t)

	assert.NoError(t, l.LoadIssue())
	assert.Len(t, l.Achievements(), 5)
	assert.Len(t, l.Quotes(), 5)
	assert.Equal(t, models.DefaultSettings(), l.Settings())

	_, err := store.Read(constants.StateKey)
	assert.ErrorIs(t, err, storage.ErrNotFound, "opening must not write")
}

func TestOpen_DegradesToDefaults(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "not json", blob: "{{{"},
		{name: "invalid intensity", blob: `{"cravingLogs": [{"id": "c", "timestamp": "2026-10-14T10:00:00Z", "intensity": 9, "mood": "m"}]}`},
		{name: "array document", blob: `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			require.NoError(t, store.Init())
			require.NoError(t, store.Write(constants.StateKey, []byte(tt.blob)))

			l := New(store)
			require.NoError(t, l.Open())

			assert.ErrorIs(t, l.LoadIssue(), validation.ErrInvalidDocument)
			assert.Empty(t, l.CravingEvents(models.TimeRange{}))
			assert.Len(t, l.Quotes(), 5)
		})
	}
}

func TestOpen_ReadFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Read(constants.StateKey).Return(nil, errors.New("disk on fire"))

	l := New(provider)
	require.NoError(t, l.Open())
	assert.Error(t, l.LoadIssue())
	assert.Equal(t, 365, l.CurrentStreak())
}

func TestOpen_NotLoadedProvider(t *testing.T) {
	l := New(storage.NewMemoryStore())
	assert.ErrorIs(t, l.Open(), storage.ErrNotLoaded)

	_, err := l.AddSmokeEvent("stress", "sad", "")
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestOpen_PartialDocumentKeepsDefaults(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init())
	require.NoError(t, store.Write(constants.StateKey, []byte(`{"settings": {"packCost": 10, "cigarettesPerPack": 25, "darkMode": true}}`)))

	l := New(store)
	require.NoError(t, l.Open())
	require.NoError(t, l.LoadIssue())

	settings := l.Settings()
	assert.Equal(t, 10.0, settings.PackCost)
	assert.Equal(t, 25, settings.CigarettesPerPack)
	assert.True(t, settings.DarkMode)
	assert.Len(t, l.Achievements(), 5, "missing sections take the seeded catalog")
}

func TestPersistAcrossReopen(t *testing.T) {
	l, store, clock := newTestLedger(t)

	_, err := l.AddSmokeEvent("coffee", "neutral", "after breakfast")
	require.NoError(t, err)
	_, err = l.AddGoal(models.GoalInput{Type: constants.GoalSmokeFreeDays, Target: 7, Duration: 1, Unit: constants.UnitWeeks})
	require.NoError(t, err)

	reopened := New(store, WithClock(clock.Now))
	require.NoError(t, reopened.Open())
	require.NoError(t, reopened.LoadIssue())
	assert.Equal(t, l.Snapshot(), reopened.Snapshot())
}

func TestMutationRollsBackOnWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Read(constants.StateKey).Return(nil, storage.ErrNotFound)
	provider.EXPECT().Write(constants.StateKey, gomock.Any()).Return(nil)
	provider.EXPECT().Write(constants.StateKey, gomock.Any()).Return(errors.New("read-only filesystem"))

	clock := &fakeClock{t: base}
	l := New(provider, WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
	require.NoError(t, l.Open())

	_, err := l.AddSmokeEvent("stress", "sad", "")
	require.NoError(t, err)
	before := l.Snapshot()

	_, err = l.AddSmokeEvent("social", "happy", "")
	require.Error(t, err)
	assert.Equal(t, before, l.Snapshot(), "failed write must leave state untouched")
	assert.Equal(t, 1, l.TodayStats().CigaretteCount)
}

func TestFailedWriteRollsBackEveryMutation(t *testing.T) {
	type op struct {
		name string
		run  func(l *Ledger) error
	}
	ops := []op{
		{name: "undo", run: func(l *Ledger) error { _, err := l.UndoLastSmokeEvent(); return err }},
		{name: "craving", run: func(l *Ledger) error {
			_, err := l.AddCravingEvent(models.CravingInput{Intensity: 3, Mood: "stressed"})
			return err
		}},
		{name: "unlock", run: func(l *Ledger) error { _, err := l.UnlockAchievement("first_day"); return err }},
		{name: "quote", run: func(l *Ledger) error { _, err := l.AddCustomQuote("keep going", "me"); return err }},
		{name: "favorite", run: func(l *Ledger) error { _, err := l.ToggleQuoteFavorite("q1"); return err }},
		{name: "settings", run: func(l *Ledger) error {
			cost := 15.0
			_, err := l.UpdateSettings(models.SettingsUpdate{PackCost: &cost})
			return err
		}},
		{name: "reset", run: func(l *Ledger) error { return l.Reset() }},
		{name: "import", run: func(l *Ledger) error { return l.Import([]byte(`{"goals": []}`)) }},
	}

	for _, tt := range ops {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := mock.NewMockProvider(ctrl)
			provider.EXPECT().Read(gomock.Any()).Return(nil, storage.ErrNotFound)
			ok := provider.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			provider.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("boom")).After(ok)

			clock := &fakeClock{t: base}
			l := New(provider, WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
			require.NoError(t, l.Open())
			_, err := l.AddSmokeEvent("stress", "sad", "")
			require.NoError(t, err)
			_, err = l.AddGoal(models.GoalInput{Type: constants.GoalMoneyTarget, Target: 50, Duration: 2, Unit: constants.UnitWeeks})
			require.NoError(t, err)

			before := l.Snapshot()
			require.Error(t, tt.run(l))
			assert.Equal(t, before, l.Snapshot())
		})
	}
}

func TestConcurrentLogging(t *testing.T) {
	l, _, _ := newTestLedger(t, WithIDGenerator(sequentialIDs()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.AddSmokeEvent("habit", "neutral", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, l.SmokeEvents(models.TimeRange{}), 20)
	assert.Equal(t, 20, l.TodayStats().CigaretteCount)
}

func TestWithStateKey(t *testing.T) {
	l, store, _ := newTestLedger(t, WithStateKey("custom_key"))

	_, err := l.AddSmokeEvent("stress", "sad", "")
	require.NoError(t, err)

	_, err = store.Read("custom_key")
	assert.NoError(t, err)
	_, err = store.Read(constants.StateKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Read(gomock.Any()).Return(nil, storage.ErrNotFound)
	provider.EXPECT().Close().Return(nil)

	l := New(provider)
	require.NoError(t, l.Open())
	require.NoError(t, l.Close())

	_, err := l.AddCustomQuote("after close", "")
	assert.ErrorIs(t, err, ErrNotOpen)
}
