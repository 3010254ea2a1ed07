package cmd

import (
	"context"
	"io"

	"github.com/mwantia/sectorfs/data"
)

// API is the subset of VirtualFileSystem used by commands.
type API interface {
	// Init creates an empty index if none exists yet.
	Init(ctx context.Context) error

	// GetSector returns the sector holding path and whether path exists.
	GetSector(ctx context.Context, path string) (data.Sector, bool, error)

	// ListDirectory returns the names below path, collapsed to their first
	// segment unless recursive is set.
	ListDirectory(ctx context.Context, path string, recursive bool) ([]string, error)

	FileExists(ctx context.Context, path string) (bool, error)

	// CreateFile allocates a sector for path and returns it.
	// An existing file is replaced only if overwrite is set.
	CreateFile(ctx context.Context, path string, overwrite bool) (data.Sector, error)

	DeleteFile(ctx context.Context, path string) error

	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, buffer []byte) error
	AppendFile(ctx context.Context, path string, buffer []byte) error

	// Verify reports inconsistencies between the index and the stored sectors.
	Verify(ctx context.Context) ([]string, error)
}

// Command represents an executable command on top of the API.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls -r [path]")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
