package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/pass-the-salt/internal/config"
	"github.com/MKhiriev/pass-the-salt/internal/logger"
)

// NewRepository selects the backend described by cfg: the database when a
// DSN is configured, the JSON file at cfg.Path otherwise. Database schemas
// are migrated before the repository is returned.
func NewRepository(ctx context.Context, cfg config.Storage, log *logger.Logger) (Repository, error) {
	if cfg.DB.DSN == "" {
		return NewFileRepository(cfg.Path, log), nil
	}

	var (
		db  *DB
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite, "":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewRepository").Msg("failed to migrate database")
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return NewDBRepository(db, cfg.Name, log), nil
}
