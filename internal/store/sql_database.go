package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/MKhiriev/pass-the-salt/migrations"
)

// DB wraps a database handle with the dialect specific pieces the
// repositories need.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// retries is the number of extra attempts for retryable failures.
	retries int
	backoff time.Duration
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// withRetry runs op until it succeeds, fails with a non-retryable error, or
// the attempts are used up. Exhausted retries are reported as
// ErrStorageUnavailable.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		if attempt >= db.retries {
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}

		db.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("retryable database error")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(db.backoff * time.Duration(attempt+1)):
		}
	}
}
