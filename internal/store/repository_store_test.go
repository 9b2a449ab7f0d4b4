package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/pass-the-salt/internal/logger"
	"github.com/MKhiriev/pass-the-salt/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDBRepo(t *testing.T, driver string) (*dbRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var classifier ErrorClassificator = NewSQLiteErrorClassifier()
	if driver == "pgx" {
		classifier = NewPostgresErrorClassifier()
	}

	l := logger.Nop()
	repo := NewDBRepository(&DB{
		DB:                 db,
		driver:             driver,
		errorClassificator: classifier,
		logger:             l,
		retries:            2,
		backoff:            time.Millisecond,
	}, "default", l).(*dbRepository)
	repo.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestDBRepository_Load_Success(t *testing.T) {
	repo, mock := newTestDBRepo(t, "sqlite3")

	document, err := models.MarshalDocument(sampleRecord())
	require.NoError(t, err)

	mock.ExpectQuery("SELECT document FROM stores WHERE name").
		WithArgs("default").
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(string(document)))

	rec, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Load_NotFound(t *testing.T) {
	repo, mock := newTestDBRepo(t, "pgx")

	mock.ExpectQuery(`SELECT document FROM stores WHERE name = \$1`).
		WithArgs("default").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrStoreNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Load_CorruptedDocument(t *testing.T) {
	repo, mock := newTestDBRepo(t, "sqlite3")

	mock.ExpectQuery("SELECT document FROM stores").
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow("[]"))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStoreNotFound)
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestDBRepository_Save_Success(t *testing.T) {
	repo, mock := newTestDBRepo(t, "pgx")

	rec := sampleRecord()
	document, err := models.MarshalDocument(rec)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO stores \(name,document,version,updated_at\) VALUES \(\$1,\$2,\$3,\$4\) ON CONFLICT \(name\) DO UPDATE`).
		WithArgs("default", string(document), "1.0.0", repo.now()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Save_RetriesBusy(t *testing.T) {
	repo, mock := newTestDBRepo(t, "sqlite3")

	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	mock.ExpectExec("INSERT INTO stores").WillReturnError(busy)
	mock.ExpectExec("INSERT INTO stores").WillReturnError(busy)
	mock.ExpectExec("INSERT INTO stores").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), sampleRecord()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Save_RetriesExhausted(t *testing.T) {
	repo, mock := newTestDBRepo(t, "pgx")

	for range 3 {
		mock.ExpectExec("INSERT INTO stores").WillReturnError(pgError(pgerrcode.SerializationFailure))
	}

	err := repo.Save(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Save_NonRetryable(t *testing.T) {
	repo, mock := newTestDBRepo(t, "pgx")

	mock.ExpectExec("INSERT INTO stores").WillReturnError(pgError(pgerrcode.UndefinedTable))

	err := repo.Save(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Save_ContextCancelled(t *testing.T) {
	repo, mock := newTestDBRepo(t, "sqlite3")
	repo.db.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	mock.ExpectExec("INSERT INTO stores").WillReturnError(sqlite3.Error{Code: sqlite3.ErrLocked})
	cancel()

	err := repo.Save(ctx, sampleRecord())
	assert.ErrorIs(t, err, context.Canceled)
}

// ── Exists ───────────────────────────────────────────────────────────────────

func TestDBRepository_Exists(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{name: "present", count: 1, want: true},
		{name: "absent", count: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestDBRepo(t, "sqlite3")
			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM stores WHERE name = \?`).
				WithArgs("default").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := repo.Exists(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDBRepository_Exists_Error(t *testing.T) {
	repo, mock := newTestDBRepo(t, "sqlite3")
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Exists(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestDBRepository_Close(t *testing.T) {
	repo, mock := newTestDBRepo(t, "sqlite3")
	mock.ExpectClose()

	require.NoError(t, repo.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
