package constants

const (
	// Setting keys, used by the CLI and the TUI settings form
	SettingPackCost             = "packCost"
	SettingCigarettesPerPack    = "cigarettesPerPack"
	SettingNotificationsEnabled = "notificationsEnabled"
	SettingDarkMode             = "darkMode"
	SettingDailyLimit           = "dailyLimit"

	// Default Settings Values
	DefaultPackCost             = 12.0
	DefaultCigarettesPerPack    = 20
	DefaultNotificationsEnabled = true
	DefaultDarkMode             = false
	DefaultTimezone             = "UTC"
)

// Goal types
const (
	GoalSmokeFreeDays    = "smoke-free-days"
	GoalReduceCigarettes = "reduce-cigarettes"
	GoalMoneyTarget      = "money-target"
)

// Goal duration units
const (
	UnitDays   = "days"
	UnitWeeks  = "weeks"
	UnitMonths = "months"
)

// Achievement requirement types
const (
	RequirementSmokeFreeDays   = "smoke_free_days"
	RequirementConsecutiveDays = "consecutive_days"
	RequirementCravingsLogged  = "cravings_logged"
	RequirementMoneySaved      = "money_saved"
)

// SuggestedTriggers and SuggestedMoods are offered by the prompts. Both are open
// sets: any non-blank tag is accepted.
var (
	SuggestedTriggers = []string{"stress", "social", "boredom", "habit", "coffee", "driving"}
	SuggestedMoods    = []string{"happy", "neutral", "sad", "stressed"}
)
