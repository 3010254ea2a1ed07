package sectorfs

import "github.com/mwantia/sectorfs/log"

// DefaultIndexName is the backend object holding the index. It can never be
// mistaken for a sector, which are named by plain decimal numbers.
const DefaultIndexName = "index.txt"

type VirtualFileSystemOptions struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	Logger        *log.Logger

	IndexName     string
	AtomicRewrite bool
}

type VirtualFileSystemOption func(*VirtualFileSystemOptions) error

func newDefaultVirtualFileSystemOptions() *VirtualFileSystemOptions {
	return &VirtualFileSystemOptions{
		LogLevel:      log.Info,
		IndexName:     DefaultIndexName,
		AtomicRewrite: true,
	}
}

func WithLogLevel(logLevel log.LogLevel) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

// WithLogger replaces the logger otherwise built from the log options.
func WithLogger(logger *log.Logger) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Logger = logger
		return nil
	}
}

func WithIndexName(indexName string) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.IndexName = indexName
		return nil
	}
}

// WithoutAtomicRewrite always rewrites the index in place, even if the
// backend could replace it through a rename.
func WithoutAtomicRewrite() VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.AtomicRewrite = false
		return nil
	}
}
