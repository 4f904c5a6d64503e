package ledger

import (
	"github.com/julianstephens/quitwise/internal/models"
)

// UpdateSettings merges u into the settings. Existing stat records keep the money
// figure they were computed with until their day is next recomputed.
func (l *Ledger) UpdateSettings(u models.SettingsUpdate) (models.Settings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated := u.Apply(l.doc.Settings)
	if u.IsEmpty() {
		return cloneSettings(updated), nil
	}
	if err := l.validator.Struct(updated); err != nil {
		return models.Settings{}, err
	}

	err := l.mutate(func(doc *models.Document) error {
		doc.Settings = updated
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	return cloneSettings(updated), nil
}

// Settings returns the current settings.
func (l *Ledger) Settings() models.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneSettings(l.doc.Settings)
}

func cloneSettings(s models.Settings) models.Settings {
	if s.DailyLimit != nil {
		v := *s.DailyLimit
		s.DailyLimit = &v
	}
	return s
}
