package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/sectorfs/backend/memory"
	"github.com/mwantia/sectorfs/backend/sqlite"
	"github.com/mwantia/sectorfs/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, "index.txt", cfg.IndexName)
	assert.Equal(t, BackendLocal, cfg.Backend.Type)
	assert.Equal(t, "/usd", cfg.Backend.Local.Path)
	assert.Nil(t, cfg.AtomicRewrite)
}

func TestParse_Backend(t *testing.T) {
	cfg, err := Parse([]byte(`
index_name: vfs.idx
atomic_rewrite: false
backend:
  type: s3
  s3:
    endpoint: localhost:9000
    bucket: sectors
    prefix: robot
    use_ssl: true
log:
  level: debug
  json: true
`))
	require.NoError(t, err)

	assert.Equal(t, "vfs.idx", cfg.IndexName)
	require.NotNil(t, cfg.AtomicRewrite)
	assert.False(t, *cfg.AtomicRewrite)
	assert.Equal(t, S3Config{
		Endpoint: "localhost:9000",
		Bucket:   "sectors",
		Prefix:   "robot",
		UseSSL:   true,
	}, cfg.Backend.S3)
	assert.True(t, cfg.Log.JSON)
	assert.Len(t, cfg.Options(nil), 3)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SECTORFS_TEST_DSN", "postgres://vfs@localhost/vfs")

	cfg, err := Parse([]byte(`
backend:
  type: postgres
  postgres:
    conn_string: ${SECTORFS_TEST_DSN}
`))
	require.NoError(t, err)
	assert.Equal(t, "postgres://vfs@localhost/vfs", cfg.Backend.Postgres.ConnString)
}

func TestParse_Invalid(t *testing.T) {
	for name, content := range map[string]string{
		"unknown backend":   "backend:\n  type: floppy\n",
		"numeric index":     "index_name: \"3\"\n",
		"missing s3 bucket": "backend:\n  type: s3\n  s3:\n    endpoint: localhost\n",
		"unknown log level": "log:\n  level: loud\n",
		"missing postgres":  "backend:\n  type: postgres\n",
		"malformed yaml":    "backend: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sectorfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  type: memory\n  memory:\n    max_object_size: 1024\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	b, err := cfg.NewBackend(t.Context())
	require.NoError(t, err)
	require.IsType(t, &memory.MemoryBackend{}, b)
	assert.Equal(t, int64(1024), b.GetCapabilities().MaxObjectSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewBackend_SQLite(t *testing.T) {
	cfg := Default()
	cfg.Backend.Type = BackendSQLite
	cfg.Backend.SQLite.Path = filepath.Join(t.TempDir(), "sectors.db")

	b, err := cfg.NewBackend(t.Context())
	require.NoError(t, err)
	defer b.Close(t.Context())

	assert.IsType(t, &sqlite.SQLiteBackend{}, b)
}

func TestNewBackend_ReadOnly(t *testing.T) {
	cfg, err := Parse([]byte("backend:\n  type: memory\n  read_only: true\n"))
	require.NoError(t, err)

	b, err := cfg.NewBackend(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "readonly:memory", b.GetName())
	assert.ErrorIs(t, b.WriteObject(t.Context(), "0", nil), data.ErrReadOnly)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"
	cfg.Log.NoTerminal = true
	cfg.Log.File = filepath.Join(t.TempDir(), "sectorfs.log")

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.NoColor)
	assert.Equal(t, "sectorfs", logger.Name)
}
