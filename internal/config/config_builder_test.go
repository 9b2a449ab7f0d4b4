package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// clearEnv unsets every variable the config reads for the duration of t.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PTS_CONFIG", "PTS_APP_OWNER", "PTS_APP_MASTER", "PTS_APP_LOG_LEVEL", "PTS_APP_LOG_FILE",
		"PTS_STORAGE_PATH", "PTS_STORAGE_NAME", "PTS_STORAGE_DB_DSN", "PTS_STORAGE_DB_DRIVER",
		"PTS_WORKERS_CLIPBOARD_CLEAR_AFTER",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Nil(t, b.defaults)
	assert.Nil(t, b.json)
	assert.Nil(t, b.env)
	assert.Nil(t, b.flags)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
	assert.NotNil(t, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_Priority verifies that later sources override earlier non-zero
// fields and zero fields never override.
func TestBuild_Priority(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.json = &StructuredConfig{App: App{Owner: "json", LogLevel: "debug"}, Storage: Storage{Path: "/json"}}
	b.env = &StructuredConfig{App: App{Owner: "env"}, Storage: Storage{Path: "/env"}}
	b.flags = &StructuredConfig{Storage: Storage{Path: "/flags"}}

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "env", cfg.App.Owner)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "/flags", cfg.Storage.Path)
	assert.Equal(t, "default", cfg.Storage.Name)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, 30*time.Second, cfg.Workers.ClipboardClearAfter)
}

// ── withJSON ─────────────────────────────────────────────────────────────────

func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder().withJSON()
	assert.NoError(t, b.err)
	assert.Nil(t, b.json)
}

func TestWithJSON_FlagWinsOverEnv(t *testing.T) {
	fromEnv := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"owner": "env-file"}})
	fromFlag := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"owner": "flag-file"}})

	b := newConfigBuilder()
	b.env = &StructuredConfig{JSONFilePath: fromEnv}
	b.flags = &StructuredConfig{JSONFilePath: fromFlag}
	b.withJSON()

	require.NoError(t, b.err)
	require.NotNil(t, b.json)
	assert.Equal(t, "flag-file", b.json.App.Owner)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.flags = &StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "missing.json")}
	b.withJSON()

	assert.Error(t, b.err)
	_, err := b.build()
	assert.Error(t, err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_AllSources(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	jsonPath := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"owner": "from-json", "log_level": "warn"},
		"storage": map[string]any{"name": "json-store"},
	})
	t.Setenv("PTS_CONFIG", jsonPath)
	t.Setenv("PTS_APP_MASTER", "env-master")
	t.Setenv("PTS_STORAGE_NAME", "env-store")

	cfg, rest, err := GetStructuredConfig([]string{"-p", "/tmp/store.json", "get", "mail"})
	require.NoError(t, err)

	assert.Equal(t, []string{"get", "mail"}, rest)
	assert.Equal(t, "from-json", cfg.App.Owner)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "env-master", cfg.App.Master)
	assert.Equal(t, "env-store", cfg.Storage.Name)
	assert.Equal(t, "/tmp/store.json", cfg.Storage.Path)
}

func TestGetStructuredConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PTS_APP_OWNER=dotenv-owner\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PTS_APP_OWNER") })

	cfg, _, err := GetStructuredConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-owner", cfg.App.Owner)
}

func TestGetStructuredConfig_InvalidFlag(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, _, err := GetStructuredConfig([]string{"-unknown"})
	assert.Error(t, err)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(*StructuredConfig) {}},
		{
			name:    "no path and no dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Path = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:   "dsn without path",
			mutate: func(cfg *StructuredConfig) { cfg.Storage.Path = ""; cfg.Storage.DB.DSN = "pts.db" },
		},
		{
			name: "unsupported driver",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.DB.DSN = "pts.db"
				cfg.Storage.DB.Driver = "mysql"
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "dsn without name",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.DB.DSN = "pts.db"
				cfg.Storage.Name = ""
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "bad log level",
			mutate:  func(cfg *StructuredConfig) { cfg.App.LogLevel = "loud" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "negative clipboard delay",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.ClipboardClearAfter = -time.Second },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
