package models

import "github.com/julianstephens/quitwise/internal/constants"

// Settings is the singleton user configuration.
type Settings struct {
	PackCost             float64 `json:"packCost" validate:"gte=0"`                       // price of one pack
	CigarettesPerPack    int     `json:"cigarettesPerPack" validate:"gt=0"`               // cigarettes in one pack
	NotificationsEnabled bool    `json:"notificationsEnabled"`                            // desktop toasts on unlock
	DarkMode             bool    `json:"darkMode"`                                        // TUI color scheme
	DailyLimit           *int    `json:"dailyLimit,omitempty" validate:"omitempty,gte=0"` // optional cap shown on the home view
}

// DefaultSettings returns the settings used on first run and after a reset.
func DefaultSettings() Settings {
	return Settings{
		PackCost:             constants.DefaultPackCost,
		CigarettesPerPack:    constants.DefaultCigarettesPerPack,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		DarkMode:             constants.DefaultDarkMode,
	}
}

// CostPerCigarette returns PackCost / CigarettesPerPack, or 0 for an empty pack.
func (s Settings) CostPerCigarette() float64 {
	if s.CigarettesPerPack <= 0 {
		return 0
	}
	return s.PackCost / float64(s.CigarettesPerPack)
}

// SettingsUpdate is a partial settings update; nil fields are left untouched.
// ClearDailyLimit removes the daily limit.
type SettingsUpdate struct {
	PackCost             *float64
	CigarettesPerPack    *int
	NotificationsEnabled *bool
	DarkMode             *bool
	DailyLimit           *int
	ClearDailyLimit      bool
}

// Apply merges the update into s.
func (u SettingsUpdate) Apply(s Settings) Settings {
	if u.PackCost != nil {
		s.PackCost = *u.PackCost
	}
	if u.CigarettesPerPack != nil {
		s.CigarettesPerPack = *u.CigarettesPerPack
	}
	if u.NotificationsEnabled != nil {
		s.NotificationsEnabled = *u.NotificationsEnabled
	}
	if u.DarkMode != nil {
		s.DarkMode = *u.DarkMode
	}
	if u.DailyLimit != nil {
		limit := *u.DailyLimit
		s.DailyLimit = &limit
	}
	if u.ClearDailyLimit {
		s.DailyLimit = nil
	}
	return s
}

// IsEmpty reports whether the update changes nothing.
func (u SettingsUpdate) IsEmpty() bool {
	return u.PackCost == nil && u.CigarettesPerPack == nil && u.NotificationsEnabled == nil &&
		u.DarkMode == nil && u.DailyLimit == nil && !u.ClearDailyLimit
}
