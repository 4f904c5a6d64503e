package ledger

import (
	"fmt"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/utils"
)

// UnlockAchievement stamps unlockedAt on the achievement with id. Unknown ids and
// already-unlocked achievements both return ErrNotFound without writing.
func (l *Ledger) UnlockAchievement(id string) (models.Achievement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unlockLocked(id)
}

func (l *Ledger) unlockLocked(id string) (models.Achievement, error) {
	idx := -1
	for i, a := range l.doc.Achievements {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Achievement{}, fmt.Errorf("achievement %q: %w", id, ErrNotFound)
	}
	if l.doc.Achievements[idx].IsUnlocked() {
		return models.Achievement{}, fmt.Errorf("achievement %q already unlocked: %w", id, ErrNotFound)
	}

	ts := l.timestamp()
	err := l.mutate(func(doc *models.Document) error {
		doc.Achievements[idx].UnlockedAt = &ts
		return nil
	})
	if err != nil {
		return models.Achievement{}, err
	}
	return cloneAchievement(l.doc.Achievements[idx]), nil
}

// Achievements returns the catalog in seeded order.
func (l *Ledger) Achievements() []models.Achievement {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Achievement, len(l.doc.Achievements))
	for i, a := range l.doc.Achievements {
		out[i] = cloneAchievement(a)
	}
	return out
}

// EvaluateAchievements unlocks every locked achievement whose requirement is met and
// returns the ones it unlocked. Unknown requirement types are never met.
func (l *Ledger) EvaluateAchievements() ([]models.Achievement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var unlocked []models.Achievement
	for _, a := range l.doc.Achievements {
		if a.IsUnlocked() || !l.requirementMet(a.Requirement) {
			continue
		}
		got, err := l.unlockLocked(a.ID)
		if err != nil {
			return unlocked, err
		}
		unlocked = append(unlocked, got)
	}
	return unlocked, nil
}

func (l *Ledger) requirementMet(r models.Requirement) bool {
	switch r.Type {
	case constants.RequirementSmokeFreeDays, constants.RequirementConsecutiveDays:
		return float64(l.trackedStreakLocked()) >= r.Value
	case constants.RequirementCravingsLogged:
		return float64(len(l.doc.CravingLogs)) >= r.Value
	case constants.RequirementMoneySaved:
		return l.moneySavedLocked() >= r.Value
	default:
		return false
	}
}

// trackedStreakLocked counts completed smoke-free days: consecutive days without a
// cigarette ending yesterday, no earlier than the first day with any stat record. A
// ledger with no history has nothing to reward.
func (l *Ledger) trackedStreakLocked() int {
	first := ""
	for _, s := range l.doc.DailyStats {
		if first == "" || s.Date < first {
			first = s.Date
		}
	}
	if first == "" {
		return 0
	}

	smoked := make(map[string]bool, len(l.doc.SmokeLogs))
	for _, e := range l.doc.SmokeLogs {
		smoked[utils.TimestampDay(e.Timestamp)] = true
	}

	day := utils.StartOfDay(l.now(), l.loc)
	streak := 0
	for i := 0; i < constants.StreakCapDays; i++ {
		day = day.AddDate(0, 0, -1)
		key := utils.DayKey(day, l.loc)
		if key < first || smoked[key] {
			break
		}
		streak++
	}
	return streak
}

func cloneAchievement(a models.Achievement) models.Achievement {
	if a.UnlockedAt != nil {
		ts := *a.UnlockedAt
		a.UnlockedAt = &ts
	}
	return a
}
