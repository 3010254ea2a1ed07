package data

import (
	"errors"

	vfserrors "github.com/mwantia/sectorfs/data/errors"
)

// Standard errors that sector backends should use.
var (
	ErrNotExist   = errors.New("vfs: object does not exist")
	ErrPermission = errors.New("vfs: permission denied")
	ErrReadOnly   = errors.New("vfs: read-only backend")
	ErrTooLarge   = errors.New("vfs: object exceeds backend size limit")
	ErrInvalid    = errors.New("vfs: invalid argument")
	ErrNotMounted = errors.New("vfs: backend not mounted")
	ErrConflict   = errors.New("vfs: concurrent modification")
	ErrClosed     = errors.New("vfs: stream closed")
)

// Error kinds surfaced by the filesystem, see data/errors.
var (
	ErrInitialization    = vfserrors.ErrInitialization
	ErrIndexUnavailable  = vfserrors.ErrIndexUnavailable
	ErrIndexCorrupt      = vfserrors.ErrIndexCorrupt
	ErrFileNotFound      = vfserrors.ErrFileNotFound
	ErrFileAlreadyExists = vfserrors.ErrFileAlreadyExists
	ErrCannotOpenFile    = vfserrors.ErrCannotOpenFile
	ErrInvalidPath       = vfserrors.ErrInvalidPath
)
