// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"time"
)

// StructuredConfig is the top-level configuration container for
// pass-the-salt. It is populated by merging defaults, an optional JSON file,
// environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
//
// Every variable is additionally prefixed with [EnvPrefix].
type StructuredConfig struct {
	// App holds the owner, the non-interactive master password and logging
	// settings.
	App App `envPrefix:"APP_"`

	// Storage selects where the store document is persisted.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the PTS_CONFIG environment variable or the -c / -config
	// flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Owner is recorded in new stores and mixed into the master key.
	// Env: PTS_APP_OWNER
	Owner string `env:"OWNER" json:"owner"`

	// Master is the master password for non-interactive use. When empty the
	// client prompts for it.
	// Env: PTS_APP_MASTER
	Master string `env:"MASTER" json:"-"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: PTS_APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" json:"log_level"`

	// LogFile receives JSON log lines. Empty disables logging.
	// Env: PTS_APP_LOG_FILE
	LogFile string `env:"LOG_FILE" json:"log_file"`
}

// Storage groups the persistence settings.
type Storage struct {
	// Path is the store document used by the file backend.
	// Env: PTS_STORAGE_PATH
	Path string `env:"PATH" json:"path"`

	// Name identifies the store row in the database backend.
	// Env: PTS_STORAGE_NAME
	Name string `env:"NAME" json:"name"`

	// DB enables the database backend when DSN is set.
	DB DB `envPrefix:"DB_" json:"db"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN is the SQLite file path or PostgreSQL connection string.
	// Env: PTS_STORAGE_DB_DSN
	DSN string `env:"DSN" json:"dsn"`

	// Driver is "sqlite3" or "pgx".
	// Env: PTS_STORAGE_DB_DRIVER
	Driver string `env:"DRIVER" json:"driver"`
}

// Workers holds configuration for background workers.
type Workers struct {
	// ClipboardClearAfter is how long a copied secret stays on the
	// clipboard.
	// Env: PTS_WORKERS_CLIPBOARD_CLEAR_AFTER
	ClipboardClearAfter time.Duration `env:"CLIPBOARD_CLEAR_AFTER" json:"clipboard_clear_after"`
}

const (
	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "PTS_"

	// DriverSQLite selects the SQLite database backend.
	DriverSQLite = "sqlite3"

	// DriverPostgres selects the PostgreSQL database backend.
	DriverPostgres = "pgx"
)

// Defaults returns the configuration used when no source sets a field.
func Defaults() *StructuredConfig {
	path := ".passthesalt"
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, ".passthesalt")
	}

	return &StructuredConfig{
		App: App{
			LogLevel: "info",
		},
		Storage: Storage{
			Path: path,
			Name: "default",
			DB: DB{
				Driver: DriverSQLite,
			},
		},
		Workers: Workers{
			ClipboardClearAfter: 30 * time.Second,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration. args
// are the command-line arguments without the program name; the arguments
// left after flag parsing are returned.
//
// Priority, lowest first: defaults, .env file, JSON file, environment
// variables, flags.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withDefaults().
		withDotEnv(".env").
		withEnv().
		withFlags(args).
		withJSON()

	cfg, err := b.build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, b.args, nil
}
