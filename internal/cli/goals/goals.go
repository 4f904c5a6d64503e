package goals

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/models"
)

type GoalAddCmd struct {
	Type     string  `arg:"" help:"Goal type." enum:"smoke-free-days,reduce-cigarettes,money-target"`
	Target   float64 `arg:"" help:"Target value (days, cigarettes per day, or money)."`
	Duration float64 `help:"How long the goal runs." default:"7"`
	Unit     string  `help:"Unit of the duration." enum:"days,weeks,months" default:"days"`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Ledger.AddGoal(models.GoalInput{
		Type:     c.Type,
		Target:   c.Target,
		Duration: c.Duration,
		Unit:     c.Unit,
	})
	if err != nil {
		return err
	}
	cli.Success.Fprintf(ctx.Writer(), "Goal added: %s\n", goal.ID)
	ctx.Printf("  %s, target %g, ends %s\n", goal.Type, goal.Target, cli.FormatWhen(goal.EndDate, ctx.Ledger.Location()))
	return nil
}

type GoalListCmd struct {
	All bool `help:"Include completed goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals := ctx.Ledger.Goals()
	if len(goals) == 0 {
		ctx.Println("No goals yet. Add one with 'quitwise goal add'.")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTARGET\tPROGRESS\tREMAINING\tSTATUS")
	for _, g := range goals {
		if g.Completed && !c.All {
			continue
		}
		status := "active"
		if g.Completed {
			status = "completed"
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%.0f%%\t%s\t%s\n", g.ID, g.Type, g.Target,
			ctx.Ledger.GoalProgress(g), remaining(ctx.Ledger.GoalRemaining(g)), status)
	}
	return w.Flush()
}

func remaining(d time.Duration) string {
	if d <= 0 {
		return "ended"
	}
	now := time.Now()
	return humanize.RelTime(now, now.Add(d), "left", "")
}

type GoalUpdateCmd struct {
	ID        string   `arg:"" help:"Goal id."`
	Target    *float64 `help:"New target value."`
	Completed *bool    `help:"Mark the goal completed (or not)."`
	Progress  *float64 `help:"Record progress in percent."`
}

func (c *GoalUpdateCmd) Run(ctx *cli.Context) error {
	update := models.GoalUpdate{
		Target:    c.Target,
		Completed: c.Completed,
		Progress:  c.Progress,
	}
	goal, err := ctx.Ledger.UpdateGoal(c.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update goal %s: %w", c.ID, err)
	}
	cli.Success.Fprintf(ctx.Writer(), "Goal %s updated\n", goal.ID)
	return nil
}
