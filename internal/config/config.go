package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/utils"
)

// EnvPrefix is prepended to every environment variable, e.g. QUITWISE_DATA.
const EnvPrefix = "QUITWISE"

type Config struct {
	// Data is a file path (.json or SQLite) or a PostgreSQL URL.
	Data     string `mapstructure:"data"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"timezone"`
	// DBConnection is a PostgreSQL connection string supplied out of band.
	DBConnection string `mapstructure:"db_connection"`
}

// Overrides are values set on the command line. Empty fields leave the loaded value alone.
type Overrides struct {
	Data     string
	Debug    bool
	Timezone string
}

// DefaultDir returns ~/.config/quitwise.
func DefaultDir() (string, error) {
	return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load reads configFile (or config.yaml in the default directory when empty), then the
// QUITWISE_* environment, then applies overrides.
func Load(configFile string, overrides Overrides) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	v.SetDefault("data", constants.DefaultConfigPath)
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", constants.DefaultTimezone)

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"data", "debug", "log_level", "timezone", "db_connection"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s_%s environment variable: %w", EnvPrefix, strings.ToUpper(key), err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if overrides.Data != "" {
		cfg.Data = overrides.Data
	}
	if overrides.Debug {
		cfg.Debug = true
	}
	if overrides.Timezone != "" {
		cfg.Timezone = overrides.Timezone
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the timezone and expands a ~ in a file data path.
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.Data == "" {
		return fmt.Errorf("data location must not be empty")
	}
	if !c.IsPostgres() {
		expanded, err := ExpandPath(c.Data)
		if err != nil {
			return err
		}
		c.Data = expanded
	}
	return nil
}

// IsPostgres reports whether Data names a PostgreSQL database.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.Data, "postgres://") || strings.HasPrefix(c.Data, "postgresql://")
}

// Dir is the directory holding logs and backups. Postgres configurations use the
// default directory.
func (c *Config) Dir() (string, error) {
	if c.IsPostgres() || c.Data == storageMemory {
		return DefaultDir()
	}
	return filepath.Dir(c.Data), nil
}

const storageMemory = ":memory:"
