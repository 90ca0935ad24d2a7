package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/storage/postgres"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

// Kind names the backend a config string resolves to.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
)

// keyringLookup is swapped in tests.
var keyringLookup = keyring.GetConnectionString

// Open picks a provider for config without touching the database:
//
//	postgres://… or postgresql://…  PostgreSQL
//	host=… (a DSN)                 PostgreSQL
//	keyring                         PostgreSQL, connection string from the OS keyring
//	*.json                          JSON document
//	anything else                   SQLite file, ~ expanded
//
// Connection strings carrying a password are rejected.
func Open(config string) (Provider, error) {
	config = strings.TrimSpace(config)
	if config == "" {
		config = constants.DefaultConfigPath
	}

	if strings.EqualFold(config, constants.KeyringConfigValue) {
		connStr, err := keyringLookup()
		if err != nil {
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		config = connStr
	}

	switch KindOf(config) {
	case KindPostgres:
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	case KindJSON:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return NewJSONStore(path), nil
	default:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

func KindOf(config string) Kind {
	switch {
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		return KindPostgres
	case strings.Contains(config, "host=") || strings.Contains(config, "dbname="):
		return KindPostgres
	case strings.EqualFold(filepath.Ext(config), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// ExpandPath resolves a leading ~ to the user's home directory.
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
