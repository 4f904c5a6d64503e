package stats

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/ledger"
)

const barWidth = 20

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	today := ctx.Ledger.TodayStats()
	diff := ctx.Ledger.Comparison()

	cli.Bold.Fprintf(ctx.Writer(), "Today (%s)\n", today.Date)
	ctx.Printf("  Cigarettes:        %d\n", today.CigaretteCount)
	ctx.Printf("  Cravings resisted: %d\n", today.CravingsResisted)
	ctx.Printf("  Money saved:       %s\n", cli.FormatMoney(today.MoneySaved))
	switch {
	case diff < 0:
		cli.Success.Fprintf(ctx.Writer(), "  %d fewer than yesterday\n", -diff)
	case diff > 0:
		cli.Warning.Fprintf(ctx.Writer(), "  %d more than yesterday\n", diff)
	default:
		ctx.Println("  Same as yesterday")
	}
	if limit := ctx.Ledger.Settings().DailyLimit; limit != nil {
		ctx.Printf("  Daily limit:       %d (%d left)\n", *limit, max(0, *limit-today.CigaretteCount))
	}
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	streak := ctx.Ledger.CurrentStreak()
	suffix := ""
	if streak >= constants.StreakCapDays {
		suffix = "+"
	}
	cli.Success.Fprintf(ctx.Writer(), "%d%s smoke-free day(s)\n", streak, suffix)
	return nil
}

type SummaryCmd struct {
	Days int `help:"Days to average over." default:"30"`
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	stats := ctx.Ledger.DailyStats(c.Days)

	cli.Bold.Fprintln(ctx.Writer(), "Progress")
	ctx.Printf("  Current streak:       %d day(s)\n", ctx.Ledger.CurrentStreak())
	ctx.Printf("  Cigarettes avoided:   %s\n", humanize.Comma(int64(ctx.Ledger.TotalCigarettesAvoided())))
	ctx.Printf("  Money saved:          %s\n", cli.FormatMoney(ctx.Ledger.TotalMoneySaved()))
	ctx.Printf("  Average per day:      %.1f (last %d tracked day(s))\n", ledger.AverageCigarettesPerDay(stats), len(stats))
	if best, ok := ledger.BestDay(stats); ok {
		ctx.Printf("  Best day:             %s (%d)\n", best.Date, best.CigaretteCount)
	}
	if goal, ok := ctx.Ledger.CurrentGoal(); ok {
		ctx.Printf("  Current goal:         %s %.0f%% complete\n", goal.Type, ctx.Ledger.GoalProgress(goal))
	}
	return nil
}

type DailyCmd struct {
	Days int `help:"Number of days to show, ending today." default:"7"`
}

func (c *DailyCmd) Run(ctx *cli.Context) error {
	series := ctx.Ledger.DailySeries(c.Days)
	peak := 0
	for _, s := range series {
		peak = max(peak, s.CigaretteCount)
	}

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCIGS\tCRAVINGS\tSAVED\t")
	for _, s := range series {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", s.Date, s.CigaretteCount, s.CravingsResisted, cli.FormatMoney(s.MoneySaved), bar(s.CigaretteCount, peak))
	}
	return w.Flush()
}

func bar(v, peak int) string {
	if peak == 0 || v == 0 {
		return ""
	}
	n := v * barWidth / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

type TriggersCmd struct{}

func (c *TriggersCmd) Run(ctx *cli.Context) error {
	counts := ledger.SortTriggers(ctx.Ledger.TriggerAnalysis())
	if len(counts) == 0 {
		ctx.Println("No cigarettes logged yet.")
		return nil
	}

	total := 0
	for _, tc := range counts {
		total += tc.Count
	}
	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIGGER\tCOUNT\tSHARE")
	for _, tc := range counts {
		fmt.Fprintf(w, "%s\t%d\t%.0f%%\n", tc.Trigger, tc.Count, float64(tc.Count)/float64(total)*100)
	}
	return w.Flush()
}
