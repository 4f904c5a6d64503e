package events

import (
	"strings"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
)

type CraveCmd struct {
	Intensity int      `help:"Craving intensity from 1 (mild) to 5 (overwhelming)." short:"i" required:""`
	Mood      string   `help:"How you felt." short:"m"`
	Notes     string   `help:"Free-form notes." short:"n"`
	Duration  *float64 `help:"How long the craving lasted, in minutes." short:"d"`
	NoPrompt  bool     `help:"Never prompt for a blank mood."`
}

func (c *CraveCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.Mood) == "" && !c.NoPrompt && cli.Interactive() {
		mood, err := cli.PromptTag("How are you feeling?", constants.SuggestedMoods)
		if err != nil {
			return err
		}
		c.Mood = mood
	}

	event, err := ctx.Ledger.AddCravingEvent(models.CravingInput{
		Intensity: c.Intensity,
		Mood:      c.Mood,
		Notes:     c.Notes,
		Duration:  c.Duration,
	})
	if err != nil {
		return err
	}

	cli.Success.Fprintf(ctx.Writer(), "Craving resisted (intensity %d/5). Well done.\n", event.Intensity)
	ctx.Printf("Cravings resisted today: %d\n", ctx.Ledger.TodayStats().CravingsResisted)
	return ctx.CheckAchievements()
}
