package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

const otherOption = "other"

// Interactive reports whether stdin is a terminal that can answer prompts.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// PromptTag asks the user to pick one of the suggestions or type their own tag.
func PromptTag(title string, suggestions []string) (string, error) {
	var choice string
	opts := huh.NewOptions(suggestions...)
	opts = append(opts, huh.NewOption("Something else...", otherOption))

	if err := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&choice).
		Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	if choice != otherOption {
		return choice, nil
	}

	var custom string
	if err := huh.NewInput().
		Title(title).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("a value is required")
			}
			return nil
		}).
		Value(&custom).
		Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return strings.TrimSpace(custom), nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
