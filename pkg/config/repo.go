package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/cidgate/cidgate/pkg/routestore"
)

// DatabaseConfig picks the route-index backend, mirroring the teacher's
// sqlite/postgres duality in pkg/config's DatabaseConfig (§9 "DB
// concurrency" names Postgres as the documented escape hatch from the
// single-writer SQLite default).
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"omitempty,oneof=sqlite postgres" toml:"type,omitempty"`
	DSN  string `mapstructure:"dsn" validate:"required_if=Type postgres" toml:"dsn,omitempty"`
}

func (d DatabaseConfig) Validate() error {
	return validateConfig(d)
}

// RepoConfig is the persisted-state layout of §6: a data directory
// holding the signing key and, unless Postgres is configured, the
// single-file embedded database.
type RepoConfig struct {
	DataDir  string         `mapstructure:"data_dir" validate:"required" toml:"data_dir"`
	Database DatabaseConfig `mapstructure:"database" toml:"database,omitempty"`
}

func (r RepoConfig) Validate() error {
	return validateConfig(r)
}

// KeyPath is the path of the raw 32-byte ed25519 secret key file, per
// §6's "a binary ed25519 secret key file (32 bytes raw)".
func (r RepoConfig) KeyPath() string {
	return filepath.Join(r.DataDir, "identity.key")
}

func (r RepoConfig) dbPath() string {
	return filepath.Join(r.DataDir, "routes.db")
}

// OpenStore ensures the repo directory exists and opens the configured
// route index, lazily creating the SQLite file if this is the default
// backend (§6 "Key and DB are created lazily if missing").
func (r RepoConfig) OpenStore() (*routestore.Store, error) {
	if err := os.MkdirAll(r.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating repo directory %s: %w", r.DataDir, err)
	}

	var (
		db  *gorm.DB
		err error
	)
	if r.Database.Type == "postgres" {
		db, err = routestore.OpenPostgres(r.Database.DSN)
	} else {
		db, err = routestore.OpenSQLite(r.dbPath())
	}
	if err != nil {
		return nil, err
	}
	return routestore.New(db)
}
