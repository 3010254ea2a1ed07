package sectorfs

import "github.com/mwantia/sectorfs/data"

// Error kinds returned by VirtualFileSystem. Match them with errors.Is.
var (
	ErrInitialization    = data.ErrInitialization
	ErrIndexUnavailable  = data.ErrIndexUnavailable
	ErrIndexCorrupt      = data.ErrIndexCorrupt
	ErrFileNotFound      = data.ErrFileNotFound
	ErrFileAlreadyExists = data.ErrFileAlreadyExists
	ErrCannotOpenFile    = data.ErrCannotOpenFile
	ErrInvalidPath       = data.ErrInvalidPath
)
