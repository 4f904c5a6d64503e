package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/cli/achievements"
	"github.com/julianstephens/quitwise/internal/cli/backups"
	"github.com/julianstephens/quitwise/internal/cli/data"
	"github.com/julianstephens/quitwise/internal/cli/events"
	"github.com/julianstephens/quitwise/internal/cli/goals"
	"github.com/julianstephens/quitwise/internal/cli/quotes"
	"github.com/julianstephens/quitwise/internal/cli/settings"
	"github.com/julianstephens/quitwise/internal/cli/stats"
	"github.com/julianstephens/quitwise/internal/cli/system"
	"github.com/julianstephens/quitwise/internal/config"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/errors"
	"github.com/julianstephens/quitwise/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Data file path (.json or SQLite) or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring or QUITWISE_DB_CONNECTION instead." type:"string"`
	ConfigFile string `help:"Path to a config.yaml (defaults to ~/.config/quitwise/config.yaml)." name:"config-file" type:"path"`
	Debug      bool   `help:"Enable debug logging to stderr."`
	Timezone   string `help:"IANA timezone that defines calendar days (default UTC)."`

	Init    system.InitCmd    `cmd:"" help:"Create storage and seed the default catalogs."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`

	Smoke events.SmokeCmd `cmd:"" help:"Log a cigarette."`
	Undo  events.UndoCmd  `cmd:"" help:"Remove the most recent cigarette."`
	Crave events.CraveCmd `cmd:"" help:"Log a resisted craving."`
	Log   events.LogCmd   `cmd:"" help:"List logged events."`

	Stats struct {
		Today    stats.TodayCmd    `cmd:"" help:"Today's numbers compared with yesterday." default:"1"`
		Streak   stats.StreakCmd   `cmd:"" help:"Current smoke-free streak."`
		Summary  stats.SummaryCmd  `cmd:"" help:"Overall progress."`
		Daily    stats.DailyCmd    `cmd:"" help:"Per-day history."`
		Triggers stats.TriggersCmd `cmd:"" help:"What triggers your cigarettes."`
	} `cmd:"" help:"Show statistics."`
	Goal struct {
		Add    goals.GoalAddCmd    `cmd:"" help:"Add a goal."`
		List   goals.GoalListCmd   `cmd:"" help:"List goals." default:"1"`
		Update goals.GoalUpdateCmd `cmd:"" help:"Update a goal."`
	} `cmd:"" help:"Manage goals."`
	Achievements struct {
		List   achievements.AchievementListCmd   `cmd:"" help:"List achievements." default:"1"`
		Unlock achievements.AchievementUnlockCmd `cmd:"" help:"Unlock an achievement."`
		Check  achievements.AchievementCheckCmd  `cmd:"" help:"Unlock every achievement whose requirement is met."`
	} `cmd:"" help:"Manage achievements."`
	Quote struct {
		Today quotes.QuoteTodayCmd `cmd:"" help:"Show today's quote." default:"1"`
		List  quotes.QuoteListCmd  `cmd:"" help:"List quotes."`
		Add   quotes.QuoteAddCmd   `cmd:"" help:"Add your own quote."`
		Fav   quotes.QuoteFavCmd   `cmd:"" help:"Toggle a favorite."`
	} `cmd:"" help:"Motivational quotes."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Data     struct {
		Export data.ExportCmd `cmd:"" help:"Export all data as JSON."`
		Import data.ImportCmd `cmd:"" help:"Import a JSON export."`
		Reset  data.ResetCmd  `cmd:"" help:"Delete all data and restore defaults."`
	} `cmd:"" help:"Export, import or reset data."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send a progress notification (for schedulers)."`
}

// storeOnly commands manage storage themselves and never open the ledger.
var storeOnly = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Smoking-cessation tracker: log cigarettes and cravings, watch your streak grow."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigFile, config.Overrides{
		Data:     CLI.Config,
		Debug:    CLI.Debug,
		Timezone: CLI.Timezone,
	})
	if err != nil {
		errors.Fatal(err)
	}

	dir, err := cfg.Dir()
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, Level: cfg.LogLevel, ConfigDir: dir}); err != nil {
		errors.Fatal(err)
	}

	store, err := cli.OpenStore(cfg)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx := cli.NewContext(cfg, store)

	command := strings.Fields(kctx.Command())
	if len(command) == 0 || !storeOnly[command[0]] {
		if err := appCtx.OpenLedger(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := kctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
