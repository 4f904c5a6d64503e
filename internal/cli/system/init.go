package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/config"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/ledger"
	"github.com/julianstephens/quitwise/internal/storage"
	"github.com/julianstephens/quitwise/internal/storage/sqlite"
	"github.com/julianstephens/quitwise/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Discard any existing data before initialization."`
	Source string `help:"Path or connection string of another quitwise store to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path, isFile := filePath(ctx.Store)

	if c.Force && isFile {
		if c.Source != "" && samePath(c.Source, path) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.InitLedger(); err != nil {
		return err
	}

	if err := c.seed(ctx, isFile); err != nil {
		return err
	}
	cli.Success.Fprintf(ctx.Writer(), "Initialized quitwise storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		cli.Success.Fprintln(ctx.Writer(), "Migration completed successfully!")
	}
	return nil
}

// seed writes the default catalogs when the store holds no document yet. A forced init
// of a store that cannot be deleted is reset instead.
func (c *InitCmd) seed(ctx *cli.Context, isFile bool) error {
	_, err := ctx.Store.Read(constants.StateKey)
	switch {
	case errors.Is(err, storage.ErrNotFound), c.Force && !isFile:
		return ctx.Ledger.Reset()
	case err != nil:
		return fmt.Errorf("failed to read existing data: %w", err)
	}
	ctx.Println("Existing data found; keeping it.")
	return nil
}

func copyFrom(ctx *cli.Context, source string) error {
	tz := constants.DefaultTimezone
	if ctx.Config != nil && ctx.Config.Timezone != "" {
		tz = ctx.Config.Timezone
	}
	cfg := &config.Config{Data: source, Timezone: tz}
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return err
	}
	src, err := cli.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer src.Close()
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}

	srcLedger := ledger.New(src, ledger.WithLocation(loc))
	if err := srcLedger.Open(); err != nil {
		return err
	}
	if issue := srcLedger.LoadIssue(); issue != nil {
		return fmt.Errorf("source holds no usable data: %w", issue)
	}

	blob, err := srcLedger.Export()
	if err != nil {
		return err
	}
	if err := ctx.Ledger.Import(blob); err != nil {
		return err
	}

	doc := ctx.Ledger.Snapshot()
	ctx.Printf("  Copied %d cigarette(s), %d craving(s), %d goal(s)\n", len(doc.SmokeLogs), len(doc.CravingLogs), len(doc.Goals))
	return nil
}

// filePath returns the on-disk location of file-backed stores.
func filePath(store storage.Provider) (string, bool) {
	switch store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return store.GetConfigPath(), true
	default:
		return "", false
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
