package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/quitwise/internal/config"
	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/keyring"
	"github.com/julianstephens/quitwise/internal/logger"
	"github.com/julianstephens/quitwise/internal/storage"
	"github.com/julianstephens/quitwise/internal/storage/postgres"
	"github.com/julianstephens/quitwise/internal/storage/sqlite"
)

// MemoryLocation selects a throwaway in-memory store.
const MemoryLocation = ":memory:"

// OpenStore picks the backing store for cfg:
//   - QUITWISE_DB_CONNECTION, when set, names a PostgreSQL database
//   - a postgres:// URL in Data, which must not embed a password
//   - the keyring connection string, when Data was left at its default
//   - ":memory:", a .json file, or otherwise a SQLite file
func OpenStore(cfg *config.Config) (storage.Provider, error) {
	return openStore(cfg, keyring.GetConnectionString)
}

func openStore(cfg *config.Config, lookup func() (string, error)) (storage.Provider, error) {
	if cfg.DBConnection != "" {
		return trustedPostgres(cfg.DBConnection, "environment")
	}

	if cfg.IsPostgres() {
		if err := postgres.ValidateConnString(cfg.Data); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; "+
					"store it with '%s keyring set' or export %s_DB_CONNECTION instead", constants.AppName, config.EnvPrefix)
			}
			return nil, err
		}
		return postgres.New(cfg.Data), nil
	}

	if isDefaultLocation(cfg.Data) {
		connStr, err := lookup()
		switch {
		case err == nil:
			return trustedPostgres(connStr, "keyring")
		case errors.Is(err, keyring.ErrNotFound):
		default:
			logger.Debug("Keyring lookup failed, using local storage", "error", err)
		}
	}

	switch {
	case cfg.Data == MemoryLocation:
		return storage.NewMemoryStore(), nil
	case strings.EqualFold(filepath.Ext(cfg.Data), ".json"):
		return storage.NewJSONStore(cfg.Data), nil
	default:
		return sqlite.NewStore(cfg.Data), nil
	}
}

// trustedPostgres accepts connection strings from secure sources, where a password is allowed.
func trustedPostgres(connStr, source string) (storage.Provider, error) {
	if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return nil, fmt.Errorf("invalid connection string from %s: %w", source, err)
	}
	logger.Debug("Using PostgreSQL storage", "source", source)
	return postgres.New(connStr), nil
}

func isDefaultLocation(data string) bool {
	def, err := config.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return false
	}
	return filepath.Clean(data) == filepath.Clean(def)
}
