package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", Overrides{})
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "quitwise", "quitwise.db"), cfg.Data)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.IsPostgres())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, "data: /tmp/from-file.json\ntimezone: Europe/Paris\nlog_level: warn\n")

	tests := []struct {
		name         string
		env          map[string]string
		overrides    Overrides
		wantData     string
		wantTimezone string
	}{
		{
			name:         "file",
			wantData:     "/tmp/from-file.json",
			wantTimezone: "Europe/Paris",
		},
		{
			name:         "env beats file",
			env:          map[string]string{"QUITWISE_DATA": "/tmp/from-env.db"},
			wantData:     "/tmp/from-env.db",
			wantTimezone: "Europe/Paris",
		},
		{
			name:         "flags beat env",
			env:          map[string]string{"QUITWISE_DATA": "/tmp/from-env.db", "QUITWISE_TIMEZONE": "Asia/Tokyo"},
			overrides:    Overrides{Data: "/tmp/from-flag.db", Timezone: "America/New_York"},
			wantData:     "/tmp/from-flag.db",
			wantTimezone: "America/New_York",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(path, tt.overrides)
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, cfg.Data)
			assert.Equal(t, tt.wantTimezone, cfg.Timezone)
			assert.Equal(t, "warn", cfg.LogLevel)
		})
	}
}

func TestLoad_DebugAndConnectionFromEnv(t *testing.T) {
	path := writeConfig(t, "data: postgres://db.example.com/quitwise\n")
	t.Setenv("QUITWISE_DEBUG", "true")
	t.Setenv("QUITWISE_DB_CONNECTION", "host=db.example.com dbname=quitwise")

	cfg, err := Load(path, Overrides{})
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.IsPostgres())
	assert.Equal(t, "postgres://db.example.com/quitwise", cfg.Data, "postgres URLs are not path-expanded")
	assert.Equal(t, "host=db.example.com dbname=quitwise", cfg.DBConnection)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "bad yaml", path: writeConfig(t, "data: [unterminated\n")},
		{name: "bad timezone", path: writeConfig(t, "timezone: Mars/Olympus\n")},
		{name: "missing explicit file", path: filepath.Join(t.TempDir(), "nope.yaml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, Overrides{})
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: home},
		{in: "~/data/q.json", want: filepath.Join(home, "data", "q.json")},
		{in: "/abs/q.db", want: "/abs/q.db"},
		{in: "relative.db", want: "relative.db"},
		{in: "~other/q.db", want: "~other/q.db"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	def, err := DefaultDir()
	require.NoError(t, err)

	tests := []struct {
		data string
		want string
	}{
		{data: "/var/lib/quitwise/state.json", want: "/var/lib/quitwise"},
		{data: "postgresql://db/quitwise", want: def},
		{data: ":memory:", want: def},
	}
	for _, tt := range tests {
		dir, err := (&Config{Data: tt.data}).Dir()
		require.NoError(t, err)
		assert.Equal(t, tt.want, dir, tt.data)
	}
}
