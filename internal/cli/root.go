package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/julianstephens/quitwise/internal/backup"
	"github.com/julianstephens/quitwise/internal/config"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/ledger"
	"github.com/julianstephens/quitwise/internal/logger"
	"github.com/julianstephens/quitwise/internal/notifier"
	"github.com/julianstephens/quitwise/internal/storage"
	"github.com/julianstephens/quitwise/internal/utils"
)

const notifyTimeout = 5 * time.Second

var (
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Failure = color.New(color.FgRed)
	Bold    = color.New(color.Bold)
	Faint   = color.New(color.Faint)
)

var iconGlyphs = map[string]string{
	"medal":       "🏅",
	"star":        "⭐",
	"trophy":      "🏆",
	"heart":       "❤️",
	"dollar-sign": "💰",
}

// Glyph maps an achievement icon name to an emoji for terminal output.
func Glyph(icon string) string {
	if g, ok := iconGlyphs[icon]; ok {
		return g
	}
	return "🎖"
}

type Context struct {
	Config   *config.Config
	Store    storage.Provider
	Ledger   *ledger.Ledger
	Notifier notifier.Sender
	Out      io.Writer
}

// NewContext wires a context for cfg backed by store. The ledger is opened lazily.
func NewContext(cfg *config.Config, store storage.Provider) *Context {
	return &Context{
		Config:   cfg,
		Store:    store,
		Notifier: notifier.New(),
		Out:      os.Stdout,
	}
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// Writer is where command output goes.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// OpenLedger loads the store and the state document it holds. A degraded load is
// reported but not fatal; a corrupt store file is moved aside and replaced by a
// fresh one.
func (c *Context) OpenLedger() error {
	if c.Ledger != nil {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		if !errors.Is(err, storage.ErrCorrupt) {
			return err
		}
		if err := c.recoverStore(err); err != nil {
			return err
		}
	}
	return c.openLedger()
}

// recoverStore renames the unreadable store file to <path>.corrupt-<timestamp> and
// initializes an empty store in its place.
func (c *Context) recoverStore(cause error) error {
	path := c.Store.GetConfigPath()
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		return cause
	}
	if err := c.Store.Close(); err != nil {
		return fmt.Errorf("failed to close corrupt storage: %w", err)
	}

	aside := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102-150405"))
	if err := os.Rename(path, aside); err != nil {
		return fmt.Errorf("failed to move corrupt storage aside: %w", err)
	}
	logger.Warn("Corrupt storage moved aside", "path", path, "movedTo", aside, "error", cause)
	Warning.Fprintf(c.Writer(), "Warning: stored data could not be loaded, starting from defaults (%v)\n", cause)
	Warning.Fprintf(c.Writer(), "The unreadable file was kept at: %s\n", aside)

	return c.Store.Init()
}

// InitLedger creates the storage and opens the ledger in it.
func (c *Context) InitLedger() error {
	if err := c.Store.Init(); err != nil {
		return err
	}
	return c.openLedger()
}

func (c *Context) openLedger() error {
	tz := constants.DefaultTimezone
	if c.Config != nil {
		tz = c.Config.Timezone
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return err
	}

	l := ledger.New(c.Store, ledger.WithLocation(loc))
	if err := l.Open(); err != nil {
		return err
	}
	if issue := l.LoadIssue(); issue != nil {
		Warning.Fprintf(c.Writer(), "Warning: stored data could not be loaded, starting from defaults (%v)\n", issue)
	}
	c.Ledger = l
	return nil
}

// Dir is where logs and backups live.
func (c *Context) Dir() (string, error) {
	if c.Config == nil {
		return config.DefaultDir()
	}
	return c.Config.Dir()
}

// Backups returns a backup manager for the open ledger.
func (c *Context) Backups() (*backup.Manager, error) {
	if c.Ledger == nil {
		return nil, ledger.ErrNotOpen
	}
	dir, err := c.Dir()
	if err != nil {
		return nil, err
	}
	return backup.NewManager(dir, c.Ledger), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.Backups()
	if err == nil {
		_, err = mgr.CreateBackup()
	}
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// CheckAchievements runs the evaluation pass after a logging action, announces every
// newly unlocked achievement and, when enabled, sends it as a desktop notification.
func (c *Context) CheckAchievements() error {
	unlocked, err := c.Ledger.EvaluateAchievements()
	if err != nil {
		return fmt.Errorf("failed to evaluate achievements: %w", err)
	}
	if len(unlocked) == 0 {
		return nil
	}

	notify := c.Ledger.Settings().NotificationsEnabled && c.Notifier != nil
	for _, a := range unlocked {
		Success.Fprintf(c.Writer(), "%s Achievement unlocked: %s\n", Glyph(a.Icon), a.Name)
		if !notify {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		err := c.Notifier.Notify(ctx, "Achievement unlocked", Glyph(a.Icon)+" "+a.Name+": "+a.Description)
		cancel()
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			logger.Debug("Tray app not running, skipping notification", "achievement", a.ID)
		} else if err != nil {
			logger.Warn("Failed to send notification", "achievement", a.ID, "error", err)
		}
	}
	return nil
}

// FormatMoney renders an amount with thousands separators, e.g. $1,234.50.
func FormatMoney(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatWhen renders a stored timestamp as local clock time plus a relative hint.
func FormatWhen(ts string, loc *time.Location) string {
	t, err := utils.ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return fmt.Sprintf("%s (%s)", t.In(loc).Format("2006-01-02 15:04"), humanize.Time(t))
}

// ParseDateFlag parses a YYYY-MM-DD flag value as the start of that day in loc.
func ParseDateFlag(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseDateInLocation(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}
