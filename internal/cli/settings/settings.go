package settings

import (
	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	PackCost      *float64 `help:"Price of one pack." name:"pack-cost"`
	PerPack       *int     `help:"Cigarettes in one pack." name:"per-pack"`
	Notifications *bool    `help:"Enable or disable achievement notifications." negatable:""`
	DarkMode      *bool    `help:"Use the dark TUI theme." name:"dark-mode" negatable:""`
	DailyLimit    *int     `help:"Daily cigarette limit shown on the dashboard." name:"daily-limit"`
	NoDailyLimit  bool     `help:"Remove the daily limit." name:"no-daily-limit"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.List {
		printSettings(ctx, ctx.Ledger.Settings())
		return nil
	}

	update := models.SettingsUpdate{
		PackCost:             c.PackCost,
		CigarettesPerPack:    c.PerPack,
		NotificationsEnabled: c.Notifications,
		DarkMode:             c.DarkMode,
		DailyLimit:           c.DailyLimit,
		ClearDailyLimit:      c.NoDailyLimit,
	}
	if update.IsEmpty() {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	settings, err := ctx.Ledger.UpdateSettings(update)
	if err != nil {
		return err
	}
	cli.Success.Fprintln(ctx.Writer(), "Settings updated successfully.")
	printSettings(ctx, settings)
	return nil
}

func printSettings(ctx *cli.Context, s models.Settings) {
	ctx.Println("Current Settings:")
	ctx.Printf("  Pack Cost:             %s\n", cli.FormatMoney(s.PackCost))
	ctx.Printf("  Cigarettes Per Pack:   %d\n", s.CigarettesPerPack)
	ctx.Printf("  Cost Per Cigarette:    %s\n", cli.FormatMoney(s.CostPerCigarette()))
	ctx.Printf("  Notifications Enabled: %v\n", s.NotificationsEnabled)
	ctx.Printf("  Dark Mode:             %v\n", s.DarkMode)
	if s.DailyLimit != nil {
		ctx.Printf("  Daily Limit:           %d\n", *s.DailyLimit)
	} else {
		ctx.Println("  Daily Limit:           none")
	}
}
