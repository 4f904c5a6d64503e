package events

import (
	"strings"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/constants"
)

type SmokeCmd struct {
	Trigger  string `help:"What triggered it (stress, social, boredom, habit, coffee, driving, or anything else)." short:"t"`
	Mood     string `help:"How you felt (happy, neutral, sad, stressed, or anything else)." short:"m"`
	Notes    string `help:"Free-form notes." short:"n"`
	NoPrompt bool   `help:"Never prompt for a blank trigger or mood."`
}

func (c *SmokeCmd) Run(ctx *cli.Context) error {
	if err := c.fillBlanks(); err != nil {
		return err
	}

	event, err := ctx.Ledger.AddSmokeEvent(c.Trigger, c.Mood, c.Notes)
	if err != nil {
		return err
	}

	today := ctx.Ledger.TodayStats()
	ctx.Printf("Logged cigarette at %s (trigger: %s, mood: %s)\n",
		cli.FormatWhen(event.Timestamp, ctx.Ledger.Location()), event.Trigger, event.Mood)
	ctx.Printf("Today: %d cigarette(s)\n", today.CigaretteCount)
	if limit := ctx.Ledger.Settings().DailyLimit; limit != nil && today.CigaretteCount > *limit {
		cli.Warning.Fprintf(ctx.Writer(), "Over your daily limit of %d\n", *limit)
	}
	return ctx.CheckAchievements()
}

func (c *SmokeCmd) fillBlanks() error {
	if c.NoPrompt || !cli.Interactive() {
		return nil
	}
	var err error
	if strings.TrimSpace(c.Trigger) == "" {
		if c.Trigger, err = cli.PromptTag("What triggered it?", constants.SuggestedTriggers); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Mood) == "" {
		if c.Mood, err = cli.PromptTag("How are you feeling?", constants.SuggestedMoods); err != nil {
			return err
		}
	}
	return nil
}

type UndoCmd struct{}

func (c *UndoCmd) Run(ctx *cli.Context) error {
	removed, err := ctx.Ledger.UndoLastSmokeEvent()
	if err != nil {
		return err
	}
	if !removed {
		ctx.Println("Nothing to undo.")
		return nil
	}
	ctx.Printf("Removed the most recent cigarette. Today: %d\n", ctx.Ledger.TodayStats().CigaretteCount)
	return nil
}
