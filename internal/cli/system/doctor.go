package system

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/quitwise/internal/backup"
	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/keyring"
	"github.com/julianstephens/quitwise/internal/notifier"
	"github.com/julianstephens/quitwise/internal/storage"
	"github.com/julianstephens/quitwise/internal/utils"
	"github.com/julianstephens/quitwise/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsStore checks are skipped when storage could not be loaded
	needsStore bool
	// warnOnly failures do not fail the command
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsStore: true, run: checkMigrationsComplete},
	{name: "Data validation", needsStore: true, run: checkValidation},
	{name: "Backups present", needsStore: true, warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", warnOnly: true, run: checkKeyring},
	{name: "Tray app", warnOnly: true, run: checkTrayApp},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	if err := checkStoreReachable(ctx); err != nil {
		cli.Failure.Fprintf(ctx.Writer(), "❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		reachable = false
	} else {
		cli.Success.Fprintf(ctx.Writer(), "✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsStore && !reachable {
			cli.Faint.Fprintf(ctx.Writer(), "⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			cli.Success.Fprintf(ctx.Writer(), "✓ %s: OK\n", c.name)
		case c.warnOnly:
			cli.Warning.Fprintf(ctx.Writer(), "⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			cli.Failure.Fprintf(ctx.Writer(), "❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Read(constants.StateKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read state: %w", err)
	}
	return nil
}

func versions(ctx *cli.Context) (current, latest int, ok bool, err error) {
	store, isSQL := ctx.Store.(migratable)
	if !isSQL {
		// file and memory stores have no schema
		return 0, 0, false, nil
	}
	runner, err := store.Runner()
	if err != nil {
		return 0, 0, false, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, false, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, false, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := versions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := versions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'quitwise migrate')", current, latest)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	blob, err := ctx.Store.Read(constants.StateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no data stored yet (run 'quitwise init')")
	}
	if err != nil {
		return err
	}
	v, err := validation.New()
	if err != nil {
		return err
	}
	if _, err := v.Decode(blob); err != nil {
		var derr *validation.DocumentError
		if errors.As(err, &derr) {
			err = fmt.Errorf("%w\n%s", err, derr.Result.FormatReport())
		}
		if previousValid(ctx, v) {
			err = fmt.Errorf("%w\n   The value replaced by the last write is still valid (blobs.previous_value)", err)
		}
		return err
	}
	return nil
}

// revisioned is implemented by the SQL stores, which keep the value each write replaced.
type revisioned interface {
	Previous(key string) ([]byte, error)
}

func previousValid(ctx *cli.Context, v *validation.Validator) bool {
	store, ok := ctx.Store.(revisioned)
	if !ok {
		return false
	}
	prev, err := store.Previous(constants.StateKey)
	if err != nil {
		return false
	}
	_, err = v.Decode(prev)
	return err == nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	dir, err := ctx.Dir()
	if err != nil {
		return err
	}
	mgr := backup.NewManager(dir, nil)
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s - consider creating one with 'quitwise backup create'", filepath.Clean(mgr.GetBackupDir()))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	tz := constants.DefaultTimezone
	if ctx.Config != nil {
		tz = ctx.Config.Timezone
	}
	if _, err := utils.LoadLocation(tz); err != nil {
		return err
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	status := keyring.GetStatus()
	if !status.Available {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkTrayApp(ctx *cli.Context) error {
	dir, err := notifier.GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	if !notifier.TrayRunning(dir) {
		return fmt.Errorf("%w - achievement notifications will not be shown", notifier.ErrTrayNotRunning)
	}
	return nil
}
