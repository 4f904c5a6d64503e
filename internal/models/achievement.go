package models

// Requirement describes what unlocks an achievement.
type Requirement struct {
	Type  string  `json:"type" validate:"required"`
	Value float64 `json:"value"`
}

// Achievement is an entry of the fixed badge catalog. UnlockedAt is set at most once.
type Achievement struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	UnlockedAt  *string     `json:"unlockedAt,omitempty"`
	Requirement Requirement `json:"requirement"`
}

// IsUnlocked reports whether the achievement has been unlocked.
func (a Achievement) IsUnlocked() bool {
	return a.UnlockedAt != nil
}
