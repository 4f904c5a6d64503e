package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/quitwise/internal/models"
)

func unlockedIDs(achievements []models.Achievement) []string {
	var ids []string
	for _, a := range achievements {
		if a.IsUnlocked() {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestUnlockAchievement_Idempotent(t *testing.T) {
	l, _, clock := newTestLedger(t)

	first, err := l.UnlockAchievement("first_day")
	require.NoError(t, err)
	require.NotNil(t, first.UnlockedAt)
	assert.Equal(t, "2026-10-14T09:00:00Z", *first.UnlockedAt)

	clock.AddDays(1)
	_, err = l.UnlockAchievement("first_day")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, a := range l.Achievements() {
		if a.ID == "first_day" {
			require.NotNil(t, a.UnlockedAt)
			assert.Equal(t, "2026-10-14T09:00:00Z", *a.UnlockedAt, "unlockedAt is set exactly once")
		}
	}
}

func TestUnlockAchievement_Unknown(t *testing.T) {
	l, _, _ := newTestLedger(t)

	_, err := l.UnlockAchievement("moon_landing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, unlockedIDs(l.Achievements()))
}

func TestEvaluateAchievements(t *testing.T) {
	l, _, clock := newTestLedger(t)

	unlocked, err := l.EvaluateAchievements()
	require.NoError(t, err)
	assert.Empty(t, unlocked, "no history means nothing to reward")

	_, err = l.AddCravingEvent(models.CravingInput{Intensity: 3, Mood: "stressed"})
	require.NoError(t, err)
	unlocked, err = l.EvaluateAchievements()
	require.NoError(t, err)
	assert.Equal(t, []string{"first_craving"}, unlockedIDs(unlocked), "today is not yet a completed smoke-free day")

	clock.AddDays(3)
	unlocked, err = l.EvaluateAchievements()
	require.NoError(t, err)
	assert.Equal(t, []string{"first_day", "three_days"}, unlockedIDs(unlocked))

	clock.AddDays(4)
	unlocked, err = l.EvaluateAchievements()
	require.NoError(t, err)
	assert.Equal(t, []string{"one_week"}, unlockedIDs(unlocked))

	unlocked, err = l.EvaluateAchievements()
	require.NoError(t, err)
	assert.Empty(t, unlocked, "second pass unlocks nothing")
}

func TestEvaluateAchievements_SmokingBreaksStreak(t *testing.T) {
	l, _, clock := newTestLedger(t)

	_, err := l.AddCravingEvent(models.CravingInput{Intensity: 2, Mood: "neutral"})
	require.NoError(t, err)
	clock.AddDays(2)
	_, err = l.AddSmokeEvent("social", "happy", "")
	require.NoError(t, err)
	clock.AddDays(1)

	_, err = l.EvaluateAchievements()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first_craving"}, unlockedIDs(l.Achievements()))
}

func TestEvaluateAchievements_MoneySaver(t *testing.T) {
	l, _, _ := newTestLedger(t)

	require.NoError(t, l.Import([]byte(`{"dailyStats": [{"date": "2026-10-14", "cigaretteCount": 84, "moneySaved": 50.4}]}`)))
	unlocked, err := l.EvaluateAchievements()
	require.NoError(t, err)
	assert.Contains(t, unlockedIDs(unlocked), "money_saver")
}
