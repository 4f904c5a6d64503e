package system

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/quitwise/internal/cli"
	"github.com/julianstephens/quitwise/internal/cli/clitest"
	"github.com/julianstephens/quitwise/internal/config"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/storage/sqlite"
)

// newSQLiteContext returns an uninitialized context over a SQLite file in a temp dir.
func newSQLiteContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	gokeyring.MockInit()
	dbPath := filepath.Join(t.TempDir(), "quitwise.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(&config.Config{Data: dbPath, Timezone: "UTC"}, store)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.Notifier = &clitest.Recorder{}
	return ctx, dbPath, out
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, out := newSQLiteContext(t)

	require.NoError(t, (&InitCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Initialized quitwise storage at: "+dbPath)

	_, err := os.Stat(dbPath)
	require.NoError(t, err, "database file was created")

	blob, err := ctx.Store.Read(constants.StateKey)
	require.NoError(t, err, "defaults are seeded")
	assert.Contains(t, string(blob), `"quotes"`)
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{}).Run(ctx))
	_, err := ctx.Ledger.AddSmokeEvent("coffee", "neutral", "")
	require.NoError(t, err)

	ctx.Ledger = nil
	out.Reset()
	require.NoError(t, (&InitCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Existing data found; keeping it.")
	assert.Len(t, ctx.Ledger.SmokeEvents(models.TimeRange{}), 1)
}

func TestInitCmd_Force(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{}).Run(ctx))
	_, err := ctx.Ledger.AddSmokeEvent("coffee", "neutral", "")
	require.NoError(t, err)

	ctx.Ledger = nil
	out.Reset()
	require.NoError(t, (&InitCmd{Force: true}).Run(ctx))
	assert.Contains(t, out.String(), "Deleted existing storage")
	assert.Empty(t, ctx.Ledger.SmokeEvents(models.TimeRange{}))
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	ctx, dbPath, _ := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{}).Run(ctx))

	ctx.Ledger = nil
	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	assert.ErrorContains(t, err, "source and destination are the same")
}

func TestInitCmd_CopyFromSource(t *testing.T) {
	src, _, _ := clitest.NewContext(t)
	_, err := src.Ledger.AddSmokeEvent("stress", "sad", "")
	require.NoError(t, err)
	_, err = src.Ledger.AddCravingEvent(models.CravingInput{Intensity: 3, Mood: "neutral"})
	require.NoError(t, err)

	ctx, _, out := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{Source: src.Store.GetConfigPath()}).Run(ctx))
	assert.Contains(t, out.String(), "Copied 1 cigarette(s), 1 craving(s), 0 goal(s)")
	assert.Len(t, ctx.Ledger.SmokeEvents(models.TimeRange{}), 1)
}

func TestInitCmd_CopyFromEmptySource(t *testing.T) {
	ctx, _, _ := newSQLiteContext(t)
	err := (&InitCmd{Source: filepath.Join(t.TempDir(), "missing.json")}).Run(ctx)
	assert.Error(t, err)
}

func TestInitCmd_CopyFromNewerSchemaSource(t *testing.T) {
	src, srcPath, _ := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{}).Run(src))
	_, err := src.Store.(*sqlite.Store).GetDB().Exec("UPDATE schema_version SET version = 999")
	require.NoError(t, err)

	ctx, _, _ := newSQLiteContext(t)
	err = (&InitCmd{Source: srcPath}).Run(ctx)
	assert.ErrorContains(t, err, "newer than supported")
}

func TestCopyFrom_UsesConfiguredTimezone(t *testing.T) {
	src, _, _ := clitest.NewContext(t)
	_, err := src.Ledger.AddSmokeEvent("stress", "sad", "")
	require.NoError(t, err)

	ctx, _, _ := newSQLiteContext(t)
	ctx.Config.Timezone = "America/New_York"
	require.NoError(t, (&InitCmd{}).Run(ctx))
	require.NoError(t, copyFrom(ctx, src.Store.GetConfigPath()))
	assert.Len(t, ctx.Ledger.SmokeEvents(models.TimeRange{}), 1)

	ctx.Config.Timezone = "Nowhere/Special"
	assert.Error(t, copyFrom(ctx, src.Store.GetConfigPath()))
}

func TestMigrateCmd(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{}).Run(ctx))

	out.Reset()
	require.NoError(t, (&MigrateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Database is up to date.")
}

func TestMigrateCmd_FileStore(t *testing.T) {
	ctx, _, _ := clitest.NewContext(t)
	assert.ErrorContains(t, (&MigrateCmd{}).Run(ctx), "only supports")
}

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{}).Run(ctx))

	out.Reset()
	require.NoError(t, (&DoctorCmd{}).Run(ctx), out.String())
	assert.Contains(t, out.String(), "✓ Storage reachable: OK")
	assert.Contains(t, out.String(), "✓ Schema version: OK")
	assert.Contains(t, out.String(), "✓ Data validation: OK")
	assert.Contains(t, out.String(), "⚠ Backups present: WARNING", "missing backups only warn")
}

func TestDoctorCmd_NotInitialized(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)

	require.Error(t, (&DoctorCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "❌ Storage reachable: FAIL")
	assert.Contains(t, out.String(), "⊘ Schema version: SKIPPED")
}

func TestDoctorCmd_NewerSchema(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{}).Run(ctx))

	store := ctx.Store.(*sqlite.Store)
	_, err := store.GetDB().Exec("UPDATE schema_version SET version = 999")
	require.NoError(t, err)

	out.Reset()
	require.Error(t, (&DoctorCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "❌ Schema version: FAIL")
}

func TestDoctorCmd_InvalidDocument(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)
	require.NoError(t, (&InitCmd{}).Run(ctx))
	require.NoError(t, ctx.Store.Write(constants.StateKey, []byte(`{"settings": {"cigarettesPerPack": 0}}`)))

	out.Reset()
	require.Error(t, (&DoctorCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "❌ Data validation: FAIL")
	assert.Contains(t, out.String(), "settings.cigarettesPerPack")
	assert.Contains(t, out.String(), "replaced by the last write is still valid")
}

func TestNotifyCmd(t *testing.T) {
	ctx, out, rec := clitest.NewContext(t)

	require.NoError(t, (&NotifyCmd{DryRun: true}).Run(ctx))
	assert.Contains(t, out.String(), "[DRY RUN] 365 smoke-free day(s)")
	assert.Empty(t, rec.Toasts)

	require.NoError(t, (&NotifyCmd{}).Run(ctx))
	require.Len(t, rec.Toasts, 1)
	assert.Contains(t, rec.Toasts[0].Text, "Saved so far: $0.00")

	off := false
	_, err := ctx.Ledger.UpdateSettings(models.SettingsUpdate{NotificationsEnabled: &off})
	require.NoError(t, err)
	require.NoError(t, (&NotifyCmd{}).Run(ctx))
	assert.Len(t, rec.Toasts, 1, "disabled notifications send nothing")
}
