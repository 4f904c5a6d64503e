package models

import "github.com/julianstephens/quitwise/internal/constants"

// Document is the complete persisted state, stored under one backing-store key and
// produced verbatim by export.
type Document struct {
	Version      int            `json:"version"`
	SmokeLogs    []SmokeEvent   `json:"smokeLogs"`
	CravingLogs  []CravingEvent `json:"cravingLogs"`
	Goals        []Goal         `json:"goals"`
	Achievements []Achievement  `json:"achievements"`
	Quotes       []Quote        `json:"quotes"`
	Settings     Settings       `json:"settings"`
	DailyStats   []DailyStat    `json:"dailyStats"`
}

// NewDocument returns the first-run state: empty logs and goals, the seeded catalogs
// and default settings.
func NewDocument() Document {
	return Document{
		Version:      constants.SchemaVersion,
		SmokeLogs:    []SmokeEvent{},
		CravingLogs:  []CravingEvent{},
		Goals:        []Goal{},
		Achievements: DefaultAchievements(),
		Quotes:       DefaultQuotes(),
		Settings:     DefaultSettings(),
		DailyStats:   []DailyStat{},
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	c := d
	c.SmokeLogs = append([]SmokeEvent{}, d.SmokeLogs...)
	c.CravingLogs = make([]CravingEvent, len(d.CravingLogs))
	for i, e := range d.CravingLogs {
		if e.Duration != nil {
			v := *e.Duration
			e.Duration = &v
		}
		c.CravingLogs[i] = e
	}
	c.Goals = append([]Goal{}, d.Goals...)
	c.Achievements = make([]Achievement, len(d.Achievements))
	for i, a := range d.Achievements {
		if a.UnlockedAt != nil {
			v := *a.UnlockedAt
			a.UnlockedAt = &v
		}
		c.Achievements[i] = a
	}
	c.Quotes = append([]Quote{}, d.Quotes...)
	if d.Settings.DailyLimit != nil {
		v := *d.Settings.DailyLimit
		c.Settings.DailyLimit = &v
	}
	c.DailyStats = append([]DailyStat{}, d.DailyStats...)
	return c
}
