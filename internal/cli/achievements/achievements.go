package achievements

import (
	"errors"
	"fmt"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/ledger"
)

type AchievementListCmd struct{}

func (c *AchievementListCmd) Run(ctx *cli.Context) error {
	loc := ctx.Ledger.Location()
	total, unlocked := 0, 0
	for _, a := range ctx.Ledger.Achievements() {
		total++
		if a.IsUnlocked() {
			unlocked++
			cli.Success.Fprintf(ctx.Writer(), "%s %s", cli.Glyph(a.Icon), a.Name)
			ctx.Printf(" - %s (unlocked %s)\n", a.Description, cli.FormatWhen(*a.UnlockedAt, loc))
			continue
		}
		cli.Faint.Fprintf(ctx.Writer(), "   %s - %s [%s]\n", a.Name, a.Description, a.ID)
	}
	ctx.Printf("\n%d of %d unlocked\n", unlocked, total)
	return nil
}

type AchievementUnlockCmd struct {
	ID string `arg:"" help:"Achievement id."`
}

func (c *AchievementUnlockCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Ledger.UnlockAchievement(c.ID)
	if errors.Is(err, ledger.ErrNotFound) {
		return fmt.Errorf("achievement %q is unknown or already unlocked: %w", c.ID, err)
	}
	if err != nil {
		return err
	}
	cli.Success.Fprintf(ctx.Writer(), "%s Achievement unlocked: %s\n", cli.Glyph(a.Icon), a.Name)
	return nil
}

// AchievementCheckCmd runs the evaluation pass on demand.
type AchievementCheckCmd struct{}

func (c *AchievementCheckCmd) Run(ctx *cli.Context) error {
	before := countUnlocked(ctx)
	if err := ctx.CheckAchievements(); err != nil {
		return err
	}
	if countUnlocked(ctx) == before {
		ctx.Println("No new achievements.")
	}
	return nil
}

func countUnlocked(ctx *cli.Context) int {
	n := 0
	for _, a := range ctx.Ledger.Achievements() {
		if a.IsUnlocked() {
			n++
		}
	}
	return n
}
