package storage

import (
	"strings"

	"github.com/timeblock-app/timeblock/internal/storage/postgres"
	"github.com/timeblock-app/timeblock/internal/storage/sqlite"
)

// NewProvider picks a backend from the config path: a postgres:// or
// postgresql:// DSN selects PostgreSQL, a .json suffix the JSON store, and
// anything else SQLite.
func NewProvider(configPath string) Provider {
	switch {
	case strings.HasPrefix(configPath, "postgres://") || strings.HasPrefix(configPath, "postgresql://"):
		return postgres.New(configPath)
	case strings.HasSuffix(configPath, ".json"):
		return NewJSONStore(configPath)
	default:
		return sqlite.NewStore(configPath)
	}
}
