package config

import (
	"fmt"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/data/errors"
	"github.com/mwantia/sectorfs/log"
)

// Validate checks that the selected backend is fully configured.
func (c *Config) Validate() error {
	errs := &errors.Errors{}

	if c.IndexName == "" || data.IsSectorName(c.IndexName) {
		errs.Add(fmt.Errorf("index_name '%s' is empty or collides with sector names", c.IndexName))
	}

	if _, err := log.Parse(c.Log.Level); err != nil {
		errs.Add(err)
	}

	switch c.Backend.Type {
	case BackendLocal:
		if c.Backend.Local.Path == "" {
			errs.Add(fmt.Errorf("backend.local.path is required"))
		}
	case BackendMemory:
		if c.Backend.Memory.MaxObjectSize < 0 {
			errs.Add(fmt.Errorf("backend.memory.max_object_size must not be negative"))
		}
	case BackendSQLite:
		if c.Backend.SQLite.Path == "" {
			errs.Add(fmt.Errorf("backend.sqlite.path is required"))
		}
	case BackendPostgres:
		if c.Backend.Postgres.ConnString == "" {
			errs.Add(fmt.Errorf("backend.postgres.conn_string is required"))
		}
	case BackendS3:
		if c.Backend.S3.Endpoint == "" || c.Backend.S3.Bucket == "" {
			errs.Add(fmt.Errorf("backend.s3.endpoint and backend.s3.bucket are required"))
		}
	case BackendConsul:
		// Consul falls back to a local agent
	default:
		errs.Add(fmt.Errorf("unknown backend type '%s'", c.Backend.Type))
	}

	return errs.Errors()
}
