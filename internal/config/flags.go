package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// ParseFlags parses the global flags that precede the command. Parsing
// stops at the first non-flag argument; the remaining arguments are
// returned untouched.
//
// Flags:
//
//	-c/-config json file path with configs
//	-o/-owner owner recorded in new stores
//	-p/-path store document path
//	-d/-dsn database DSN
//	-driver database driver (sqlite3 or pgx)
//	-name store name in the database
//	-log-level log level (debug, info, warn, error)
//	-log-file log file path
//	-clear-after clipboard clearing delay (e.g., "30s", "1m")
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var jsonConfigPath string
	var owner string
	var storePath string
	var databaseDSN string
	var driver string
	var name string
	var logLevel string
	var logFile string
	var clearAfter time.Duration

	fs := flag.NewFlagSet("pts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&owner, "o", "", "Store owner")
	fs.StringVar(&owner, "owner", "", "Store owner (alias)")
	fs.StringVar(&storePath, "p", "", "Store document path")
	fs.StringVar(&storePath, "path", "", "Store document path (alias)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDSN, "dsn", "", "Database DSN (alias)")
	fs.StringVar(&driver, "driver", "", "Database driver (sqlite3, pgx)")
	fs.StringVar(&name, "name", "", "Store name in the database")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.DurationVar(&clearAfter, "clear-after", 0, "Clipboard clearing delay (e.g., 30s, 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Owner:    owner,
			LogLevel: logLevel,
			LogFile:  logFile,
		},
		Storage: Storage{
			Path: storePath,
			Name: name,
			DB: DB{
				DSN:    databaseDSN,
				Driver: driver,
			},
		},
		Workers: Workers{
			ClipboardClearAfter: clearAfter,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
