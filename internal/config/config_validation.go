// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" && cfg.Storage.Path == "" {
		return fmt.Errorf("%w: a store path or a database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.DB.DSN != "" {
		switch cfg.Storage.DB.Driver {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
		if cfg.Storage.Name == "" {
			return fmt.Errorf("%w: a store name is required", ErrInvalidStorageConfigs)
		}
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel)
	}

	if cfg.Workers.ClipboardClearAfter < 0 {
		return fmt.Errorf("%w: clipboard clear delay must not be negative", ErrInvalidWorkerConfigs)
	}

	return nil
}
