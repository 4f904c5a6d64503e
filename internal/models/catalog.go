package models

import "github.com/julianstephens/quitwise/internal/constants"

// DefaultAchievements returns the seeded badge catalog, all locked.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:          "first_day",
			Name:        "First Day",
			Description: "Completed your first smoke-free day",
			Icon:        "medal",
			Requirement: Requirement{Type: constants.RequirementSmokeFreeDays, Value: 1},
		},
		{
			ID:          "three_days",
			Name:        "3 Day Streak",
			Description: "Three consecutive smoke-free days",
			Icon:        "star",
			Requirement: Requirement{Type: constants.RequirementConsecutiveDays, Value: 3},
		},
		{
			ID:          "one_week",
			Name:        "One Week",
			Description: "Seven consecutive smoke-free days",
			Icon:        "trophy",
			Requirement: Requirement{Type: constants.RequirementConsecutiveDays, Value: 7},
		},
		{
			ID:          "first_craving",
			Name:        "Craving Warrior",
			Description: "Logged your first craving instead of smoking",
			Icon:        "heart",
			Requirement: Requirement{Type: constants.RequirementCravingsLogged, Value: 1},
		},
		{
			ID:          "money_saver",
			Name:        "Money Saver",
			Description: "Saved $50 by not smoking",
			Icon:        "dollar-sign",
			Requirement: Requirement{Type: constants.RequirementMoneySaved, Value: 50},
		},
	}
}

// DefaultQuotes returns the seeded quote catalog. Seeded quotes are never custom.
func DefaultQuotes() []Quote {
	return []Quote{
		{ID: "q1", Text: "Every cigarette you don't smoke is a victory. Every day smoke-free is progress.", Author: "QuitWise Team"},
		{ID: "q2", Text: "The best time to quit smoking was 20 years ago. The second best time is now.", Author: "Unknown"},
		{ID: "q3", Text: "Quitting smoking is easy. I've done it thousands of times.", Author: "Mark Twain"},
		{ID: "q4", Text: "Your body is a temple. Don't let smoke cloud your vision of what you can become.", Author: "QuitWise Team"},
		{ID: "q5", Text: "Every day without smoking is a gift to your future self.", Author: "QuitWise Team"},
	}
}
