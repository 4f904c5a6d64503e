package data

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/validation"
)

type ExportCmd struct {
	File string `arg:"" optional:"" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	blob, err := ctx.Ledger.Export()
	if err != nil {
		return err
	}
	if c.File == "" {
		_, err := ctx.Writer().Write(append(blob, '\n'))
		return err
	}
	if err := os.WriteFile(c.File, blob, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	cli.Success.Fprintf(ctx.Writer(), "Exported data to %s\n", c.File)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"JSON export to import, or - for stdin."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	blob, err := readInput(c.File)
	if err != nil {
		return err
	}

	// snapshot so a bad merge can be undone with 'backup restore'
	ctx.PerformAutomaticBackup()

	if err := ctx.Ledger.Import(blob); err != nil {
		var derr *validation.DocumentError
		if errors.As(err, &derr) {
			ctx.Println(derr.Result.FormatReport())
		}
		return err
	}
	cli.Success.Fprintf(ctx.Writer(), "Imported data from %s\n", c.File)
	return ctx.CheckAchievements()
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return blob, nil
}

type ResetCmd struct {
	Yes bool `help:"Do not ask for confirmation." short:"y"`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		if !cli.Interactive() {
			return fmt.Errorf("refusing to reset without --yes")
		}
		ok, err := cli.Confirm("Delete all logged data and restore defaults?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Ledger.Reset(); err != nil {
		return err
	}
	cli.Success.Fprintln(ctx.Writer(), "All data reset to defaults.")
	return nil
}
