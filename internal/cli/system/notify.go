package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/quitwise/internal/cli"
)

// NotifyCmd sends a progress toast: streak, money saved and today's quote. It is meant
// to be run from a scheduler such as cron.
type NotifyCmd struct {
	DryRun bool `help:"Print the notification instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.Ledger.Settings().NotificationsEnabled {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	title := fmt.Sprintf("%d smoke-free day(s)", ctx.Ledger.CurrentStreak())
	text := fmt.Sprintf("Saved so far: %s", cli.FormatMoney(ctx.Ledger.TotalMoneySaved()))
	if q, err := ctx.Ledger.DailyQuote(); err == nil {
		text += "\n" + q.Text
	}

	if c.DryRun {
		ctx.Printf("[DRY RUN] %s: %s\n", title, text)
		return nil
	}

	nctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctx.Notifier.Notify(nctx, title, text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
