// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildSelectStoreQuery(t *testing.T) {
	tests := []struct {
		driver      string
		placeholder string
	}{
		{driver: "sqlite3", placeholder: "name = ?"},
		{driver: "pgx", placeholder: "name = $1"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			query, args, err := buildSelectStoreQuery(tt.driver, "work")
			require.NoError(t, err)

			assert.Equal(t, []any{"work"}, args)
			assert.Contains(t, query, "SELECT document FROM stores")
			assert.Contains(t, query, tt.placeholder)
		})
	}
}

func Test_buildCountStoreQuery(t *testing.T) {
	query, args, err := buildCountStoreQuery("pgx", "work")
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM stores WHERE name = $1", query)
	assert.Equal(t, []any{"work"}, args)
}

func Test_buildUpsertStoreQuery(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildUpsertStoreQuery("pgx", "work", []byte(`{"k":1}`), "1.0.0", at)
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 4)
	assert.Equal(t, "work", args[0])
	assert.Equal(t, `{"k":1}`, args[1])
	assert.Equal(t, "1.0.0", args[2])
	assert.Equal(t, at, args[3])

	// query checks (contains parts)
	q := strings.ToLower(query)
	assert.Contains(t, q, "insert into stores (name,document,version,updated_at)")
	assert.Contains(t, q, "values ($1,$2,$3,$4)")
	assert.Contains(t, q, "on conflict (name) do update set")
	assert.Contains(t, q, "document   = excluded.document")

	query, _, err = buildUpsertStoreQuery("sqlite3", "work", nil, "", at)
	require.NoError(t, err)
	assert.Contains(t, query, "VALUES (?,?,?,?)")
}
