package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
)

type SmokeFormModel struct {
	Trigger string
	Mood    string
	Notes   string
}

type CravingFormModel struct {
	Intensity int
	Mood      string
	Notes     string
	Duration  string
}

type QuoteFormModel struct {
	Text   string
	Author string
}

type SettingsFormModel struct {
	PackCost             string
	CigarettesPerPack    string
	DailyLimit           string
	NotificationsEnabled bool
	DarkMode             bool
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func optionalNonNegative(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("must be a number")
	}
	if f < 0 {
		return errors.New("must be 0 or greater")
	}
	return nil
}

// NewSmokeForm creates the form for logging a cigarette.
func NewSmokeForm(fm *SmokeFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trigger").
				Description("What led to this one?").
				Suggestions(constants.SuggestedTriggers).
				Value(&fm.Trigger).
				Validate(required("trigger")),
			huh.NewInput().
				Title("Mood").
				Suggestions(constants.SuggestedMoods).
				Value(&fm.Mood).
				Validate(required("mood")),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
		),
	)
}

// NewCravingForm creates the form for logging a resisted craving.
func NewCravingForm(fm *CravingFormModel) *huh.Form {
	intensities := make([]huh.Option[int], 0, 5)
	for i := 1; i <= 5; i++ {
		intensities = append(intensities, huh.NewOption(fmt.Sprintf("%d", i), i))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Intensity").
				Options(intensities...).
				Value(&fm.Intensity),
			huh.NewInput().
				Title("Mood").
				Suggestions(constants.SuggestedMoods).
				Value(&fm.Mood).
				Validate(required("mood")),
			huh.NewInput().
				Title("Duration (min)").
				Description("Optional").
				Value(&fm.Duration).
				Validate(optionalNonNegative),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
		),
	)
}

// NewQuoteForm creates the form for adding a custom quote.
func NewQuoteForm(fm *QuoteFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Quote").
				Value(&fm.Text).
				Validate(required("quote text")),
			huh.NewInput().
				Title("Author").
				Description("Leave blank for Unknown").
				Value(&fm.Author),
		),
	)
}

// NewSettingsForm creates the settings editor.
func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pack cost").
				Value(&fm.PackCost).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("pack cost is required")
					}
					return optionalNonNegative(s)
				}),
			huh.NewInput().
				Title("Cigarettes per pack").
				Value(&fm.CigarettesPerPack).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return errors.New("must be a positive whole number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Daily limit").
				Description("Leave blank for no limit").
				Value(&fm.DailyLimit).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 0 {
						return errors.New("must be a whole number, 0 or greater")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Notifications").
				Value(&fm.NotificationsEnabled),
			huh.NewConfirm().
				Title("Dark mode").
				Value(&fm.DarkMode),
		),
	)
}

func newSettingsFormModel(s models.Settings) *SettingsFormModel {
	fm := &SettingsFormModel{
		PackCost:             strconv.FormatFloat(s.PackCost, 'f', 2, 64),
		CigarettesPerPack:    strconv.Itoa(s.CigarettesPerPack),
		NotificationsEnabled: s.NotificationsEnabled,
		DarkMode:             s.DarkMode,
	}
	if s.DailyLimit != nil {
		fm.DailyLimit = strconv.Itoa(*s.DailyLimit)
	}
	return fm
}

// Update converts the form values into a settings update.
func (fm *SettingsFormModel) Update() (models.SettingsUpdate, error) {
	cost, err := strconv.ParseFloat(strings.TrimSpace(fm.PackCost), 64)
	if err != nil {
		return models.SettingsUpdate{}, fmt.Errorf("invalid pack cost: %w", err)
	}
	perPack, err := strconv.Atoi(strings.TrimSpace(fm.CigarettesPerPack))
	if err != nil {
		return models.SettingsUpdate{}, fmt.Errorf("invalid cigarettes per pack: %w", err)
	}
	notifications, dark := fm.NotificationsEnabled, fm.DarkMode
	u := models.SettingsUpdate{
		PackCost:             &cost,
		CigarettesPerPack:    &perPack,
		NotificationsEnabled: &notifications,
		DarkMode:             &dark,
	}

	if limit := strings.TrimSpace(fm.DailyLimit); limit == "" {
		u.ClearDailyLimit = true
	} else {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return models.SettingsUpdate{}, fmt.Errorf("invalid daily limit: %w", err)
		}
		u.DailyLimit = &n
	}
	return u, nil
}

// Input converts the form values into a craving input.
func (fm *CravingFormModel) Input() (models.CravingInput, error) {
	in := models.CravingInput{
		Intensity: fm.Intensity,
		Mood:      strings.TrimSpace(fm.Mood),
		Notes:     strings.TrimSpace(fm.Notes),
	}
	if d := strings.TrimSpace(fm.Duration); d != "" {
		minutes, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return models.CravingInput{}, fmt.Errorf("invalid duration: %w", err)
		}
		in.Duration = &minutes
	}
	return in, nil
}
