package quotes

import (
	"errors"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/ledger"
	"github.com/julianstephens/quitwise/internal/models"
)

type QuoteTodayCmd struct{}

func (c *QuoteTodayCmd) Run(ctx *cli.Context) error {
	q, err := ctx.Ledger.DailyQuote()
	if errors.Is(err, ledger.ErrNotFound) {
		ctx.Println("No quotes available.")
		return nil
	}
	if err != nil {
		return err
	}
	printQuote(ctx, q)
	return nil
}

type QuoteListCmd struct {
	Favorites bool `help:"Only show favorites."`
	Custom    bool `help:"Only show quotes you added."`
}

func (c *QuoteListCmd) Run(ctx *cli.Context) error {
	for _, q := range ctx.Ledger.Quotes() {
		if (c.Favorites && !q.IsFavorite) || (c.Custom && !q.IsCustom) {
			continue
		}
		star := " "
		if q.IsFavorite {
			star = "*"
		}
		ctx.Printf("%s [%s] ", star, q.ID)
		printQuote(ctx, q)
	}
	return nil
}

type QuoteAddCmd struct {
	Text   string `arg:"" help:"Quote text."`
	Author string `help:"Who said it."`
}

func (c *QuoteAddCmd) Run(ctx *cli.Context) error {
	q, err := ctx.Ledger.AddCustomQuote(c.Text, c.Author)
	if err != nil {
		return err
	}
	cli.Success.Fprintf(ctx.Writer(), "Quote added: %s\n", q.ID)
	return nil
}

type QuoteFavCmd struct {
	ID string `arg:"" help:"Quote id."`
}

func (c *QuoteFavCmd) Run(ctx *cli.Context) error {
	q, err := ctx.Ledger.ToggleQuoteFavorite(c.ID)
	if err != nil {
		return err
	}
	if q.IsFavorite {
		ctx.Printf("Added %s to favorites\n", q.ID)
	} else {
		ctx.Printf("Removed %s from favorites\n", q.ID)
	}
	return nil
}

func printQuote(ctx *cli.Context, q models.Quote) {
	cli.Bold.Fprintf(ctx.Writer(), "%q", q.Text)
	if q.Author != "" {
		ctx.Printf(" - %s", q.Author)
	}
	ctx.Println()
}
