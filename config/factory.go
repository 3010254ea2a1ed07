package config

import (
	"context"
	"fmt"

	"github.com/mwantia/sectorfs"
	"github.com/mwantia/sectorfs/backend"
	"github.com/mwantia/sectorfs/backend/consul"
	"github.com/mwantia/sectorfs/backend/local"
	"github.com/mwantia/sectorfs/backend/memory"
	"github.com/mwantia/sectorfs/backend/postgres"
	"github.com/mwantia/sectorfs/backend/readonly"
	"github.com/mwantia/sectorfs/backend/s3"
	"github.com/mwantia/sectorfs/backend/sqlite"
	"github.com/mwantia/sectorfs/log"
)

const (
	BackendLocal    = "local"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendConsul   = "consul"
)

// NewBackend constructs the configured sector backend, wrapped read-only
// if requested.
func (c *Config) NewBackend(ctx context.Context) (backend.VirtualSectorBackend, error) {
	b, err := c.newBackend(ctx)
	if err != nil {
		return nil, err
	}

	if c.Backend.ReadOnly {
		return readonly.NewReadOnlyBackend(b), nil
	}
	return b, nil
}

func (c *Config) newBackend(ctx context.Context) (backend.VirtualSectorBackend, error) {
	cfg := c.Backend

	switch cfg.Type {
	case BackendLocal:
		return local.NewLocalBackend(cfg.Local.Path), nil
	case BackendMemory:
		if cfg.Memory.MaxObjectSize > 0 {
			return memory.NewLimitedMemoryBackend(cfg.Memory.MaxObjectSize), nil
		}
		return memory.NewMemoryBackend(), nil
	case BackendSQLite:
		return sqlite.NewSQLiteBackend(cfg.SQLite.Path)
	case BackendPostgres:
		return postgres.NewPostgresBackend(ctx, cfg.Postgres.ConnString)
	case BackendS3:
		return s3.NewS3Backend(cfg.S3.Endpoint, cfg.S3.Bucket, cfg.S3.Prefix, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.UseSSL)
	case BackendConsul:
		consulConfig := cfg.Consul
		return consul.NewConsulBackend(&consulConfig)
	default:
		return nil, fmt.Errorf("unknown backend type '%s'", cfg.Type)
	}
}

// NewLogger constructs the configured logger.
func (c *Config) NewLogger() (*log.Logger, error) {
	level, err := log.Parse(c.Log.Level)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogger("sectorfs", level, c.Log.File, c.Log.NoTerminal)
	logger.JSON = c.Log.JSON
	if c.Log.NoColor {
		logger.NoColor = true
	}

	return logger, nil
}

// Options converts the config into filesystem options.
func (c *Config) Options(logger *log.Logger) []sectorfs.VirtualFileSystemOption {
	opts := []sectorfs.VirtualFileSystemOption{
		sectorfs.WithLogger(logger),
		sectorfs.WithIndexName(c.IndexName),
	}

	if c.AtomicRewrite != nil && !*c.AtomicRewrite {
		opts = append(opts, sectorfs.WithoutAtomicRewrite())
	}

	return opts
}
