// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/pass-the-salt/internal/config"
)

const storesTable = "stores"

// upsertStoreSuffix turns the insert into an upsert keyed by name. Both
// SQLite and PostgreSQL accept this form.
const upsertStoreSuffix = `ON CONFLICT (name) DO UPDATE SET
		document   = excluded.document,
		version    = excluded.version,
		updated_at = excluded.updated_at`

// placeholderFor returns the placeholder format of driver.
func placeholderFor(driver string) sq.PlaceholderFormat {
	if driver == config.DriverPostgres {
		return sq.Dollar
	}
	return sq.Question
}

func buildSelectStoreQuery(driver, name string) (string, []any, error) {
	query, args, err := sq.
		Select("document").
		From(storesTable).
		Where(sq.Eq{"name": name}).
		PlaceholderFormat(placeholderFor(driver)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCountStoreQuery(driver, name string) (string, []any, error) {
	query, args, err := sq.
		Select("COUNT(*)").
		From(storesTable).
		Where(sq.Eq{"name": name}).
		PlaceholderFormat(placeholderFor(driver)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertStoreQuery(driver, name string, document []byte, version string, updatedAt time.Time) (string, []any, error) {
	query, args, err := sq.
		Insert(storesTable).
		Columns("name", "document", "version", "updated_at").
		Values(name, string(document), version, updatedAt).
		Suffix(upsertStoreSuffix).
		PlaceholderFormat(placeholderFor(driver)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
