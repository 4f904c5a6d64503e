package system

import (
	"fmt"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/migration"
)

// migratable is implemented by the SQL-backed stores.
type migratable interface {
	Runner() (*migration.Runner, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	store, ok := ctx.Store.(migratable)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}
	runner, err := store.Runner()
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string, keyvals ...interface{}) {
		ctx.Printf("%s %v\n", msg, keyvals)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		cli.Success.Fprintf(ctx.Writer(), "\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
