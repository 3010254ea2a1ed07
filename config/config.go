package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mwantia/sectorfs/backend/consul"
)

// Config describes which backend holds the sectors and how the filesystem logs.
// Values of the form ${NAME} are expanded from the environment before parsing.
type Config struct {
	IndexName     string `yaml:"index_name"`
	AtomicRewrite *bool  `yaml:"atomic_rewrite"`

	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"log"`
}

type BackendConfig struct {
	Type     string `yaml:"type"`
	ReadOnly bool   `yaml:"read_only"`

	Local    LocalConfig                `yaml:"local"`
	Memory   MemoryConfig               `yaml:"memory"`
	SQLite   SQLiteConfig               `yaml:"sqlite"`
	Postgres PostgresConfig             `yaml:"postgres"`
	S3       S3Config                   `yaml:"s3"`
	Consul   consul.ConsulBackendConfig `yaml:"consul"`
}

type LocalConfig struct {
	Path string `yaml:"path"`
}

type MemoryConfig struct {
	MaxObjectSize int64 `yaml:"max_object_size"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	ConnString string `yaml:"conn_string"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	JSON       bool   `yaml:"json"`
	NoColor    bool   `yaml:"no_color"`
	NoTerminal bool   `yaml:"no_terminal"`
}

// Default returns the configuration used without a config file: sectors
// stored as plain files on an SD card mounted at /usd.
func Default() *Config {
	return &Config{
		IndexName: "index.txt",
		Backend: BackendConfig{
			Type: BackendLocal,
			Local: LocalConfig{
				Path: "/usd",
			},
			SQLite: SQLiteConfig{
				Path: "sectorfs.db",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and validates the config file at path on top of Default.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", path, err)
	}

	return cfg, nil
}

// Parse decodes and validates YAML content on top of Default.
func Parse(content []byte) (*Config, error) {
	cfg := Default()

	expanded := os.ExpandEnv(string(content))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
