// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/MKhiriev/pass-the-salt/models"
)

// dbRepository keeps the store document as one row of the stores table,
// keyed by the store name.
type dbRepository struct {
	db     *DB
	name   string
	now    func() time.Time
	logger *logger.Logger
}

// NewDBRepository constructs a [Repository] for the store called name.
func NewDBRepository(db *DB, name string, log *logger.Logger) Repository {
	log.Debug().Str("name", name).Str("driver", db.driver).Msg("creating database repository")
	return &dbRepository{
		db:     db,
		name:   name,
		now:    func() time.Time { return time.Now().UTC() },
		logger: log,
	}
}

func (r *dbRepository) Load(ctx context.Context) (models.StoreRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectStoreQuery(r.db.driver, r.name)
	if err != nil {
		return models.StoreRecord{}, err
	}

	var document string
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&document)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StoreRecord{}, fmt.Errorf("%w: %q", ErrStoreNotFound, r.name)
		}
		log.Err(err).Str("func", "*dbRepository.Load").Str("name", r.name).Msg("failed to query store")
		return models.StoreRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	record, err := models.UnmarshalDocument([]byte(document))
	if err != nil {
		log.Err(err).Str("func", "*dbRepository.Load").Str("name", r.name).Msg("failed to decode store document")
		return models.StoreRecord{}, err
	}
	return record, nil
}

func (r *dbRepository) Save(ctx context.Context, record models.StoreRecord) error {
	log := logger.FromContext(ctx)

	document, err := models.MarshalDocument(record)
	if err != nil {
		return err
	}

	query, args, err := buildUpsertStoreQuery(r.db.driver, r.name, document, record.Version, r.now())
	if err != nil {
		return err
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "*dbRepository.Save").
			Str("name", r.name).
			Str("pg_code", postgresError(err)).
			Msg("failed to upsert store")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Str("func", "*dbRepository.Save").Str("name", r.name).Int("secrets", len(record.Secrets)).Msg("store saved")
	return nil
}

func (r *dbRepository) Exists(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountStoreQuery(r.db.driver, r.name)
	if err != nil {
		return false, err
	}

	var count int
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "*dbRepository.Exists").Str("name", r.name).Msg("failed to count stores")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count > 0, nil
}

func (r *dbRepository) Close() error {
	return r.db.Close()
}
