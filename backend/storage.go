package backend

import (
	"context"
)

// VirtualSectorBackend stores flat, named objects. The filesystem keeps one
// object per sector, named by the sector's decimal identifier, plus the index.
// Implementations acquire and release any underlying handle within each call.
type VirtualSectorBackend interface {
	VirtualBackend

	// ReadObject returns the full content of name or data.ErrNotExist.
	ReadObject(ctx context.Context, name string) ([]byte, error)

	// WriteObject creates name or truncates it, then writes buffer.
	WriteObject(ctx context.Context, name string, buffer []byte) error

	// AppendObject appends buffer to name, creating it if absent.
	AppendObject(ctx context.Context, name string, buffer []byte) error

	// ExistsObject reports whether name exists.
	ExistsObject(ctx context.Context, name string) (bool, error)

	// DeleteObject removes name or returns data.ErrNotExist.
	DeleteObject(ctx context.Context, name string) error
}

// VirtualRenameBackend is implemented by backends that can replace one object
// by another in a single step. Backends advertise it with CapabilityRename.
type VirtualRenameBackend interface {
	VirtualSectorBackend

	// RenameObject moves from onto to, replacing to if it exists.
	RenameObject(ctx context.Context, from, to string) error
}

// AsRenameBackend returns the rename extension of vsb if it is advertised.
func AsRenameBackend(vsb VirtualSectorBackend) (VirtualRenameBackend, bool) {
	caps := vsb.GetCapabilities()
	if caps == nil || !caps.Contains(CapabilityRename) {
		return nil, false
	}

	rb, ok := vsb.(VirtualRenameBackend)
	return rb, ok
}
