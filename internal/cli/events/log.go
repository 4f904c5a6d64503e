package events

import (
	"fmt"
	"text/tabwriter"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/models"
)

// LogCmd lists logged events, newest last.
type LogCmd struct {
	Smoke    bool   `help:"Only show cigarettes." xor:"kind"`
	Cravings bool   `help:"Only show cravings." xor:"kind"`
	From     string `help:"First day to include (YYYY-MM-DD)."`
	To       string `help:"Last day to include (YYYY-MM-DD)."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	r, err := c.timeRange(ctx)
	if err != nil {
		return err
	}
	loc := ctx.Ledger.Location()

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	if !c.Cravings {
		smokes := ctx.Ledger.SmokeEvents(r)
		cli.Bold.Fprintf(ctx.Writer(), "Cigarettes (%d)\n", len(smokes))
		for _, e := range smokes {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", cli.FormatWhen(e.Timestamp, loc), e.Trigger, e.Mood, e.Notes)
		}
		w.Flush()
	}
	if !c.Smoke {
		cravings := ctx.Ledger.CravingEvents(r)
		cli.Bold.Fprintf(ctx.Writer(), "Cravings (%d)\n", len(cravings))
		for _, e := range cravings {
			duration := ""
			if e.Duration != nil {
				duration = fmt.Sprintf("%.0f min", *e.Duration)
			}
			fmt.Fprintf(w, "  %s\t%d/5\t%s\t%s\t%s\n", cli.FormatWhen(e.Timestamp, loc), e.Intensity, e.Mood, duration, e.Notes)
		}
		w.Flush()
	}
	return nil
}

func (c *LogCmd) timeRange(ctx *cli.Context) (models.TimeRange, error) {
	loc := ctx.Ledger.Location()
	start, err := cli.ParseDateFlag(c.From, loc)
	if err != nil {
		return models.TimeRange{}, err
	}
	end, err := cli.ParseDateFlag(c.To, loc)
	if err != nil {
		return models.TimeRange{}, err
	}
	if !end.IsZero() {
		// include the whole of the last day
		end = end.AddDate(0, 0, 1).Add(-1)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return models.TimeRange{}, fmt.Errorf("--to must not be before --from")
	}
	return models.TimeRange{Start: start, End: end}, nil
}
