package readonly

import (
	"context"

	"github.com/mwantia/sectorfs/backend"
	"github.com/mwantia/sectorfs/data"
)

// ReadOnlyBackend wraps any sector backend to make it read-only.
// Reads are passed through to the underlying backend, every write returns
// data.ErrReadOnly.
type ReadOnlyBackend struct {
	backend backend.VirtualSectorBackend
}

func NewReadOnlyBackend(b backend.VirtualSectorBackend) *ReadOnlyBackend {
	return &ReadOnlyBackend{
		backend: b,
	}
}

func (rob *ReadOnlyBackend) GetName() string {
	return "readonly:" + rob.backend.GetName()
}

func (rob *ReadOnlyBackend) Open(ctx context.Context) error {
	return rob.backend.Open(ctx)
}

func (rob *ReadOnlyBackend) Close(ctx context.Context) error {
	return rob.backend.Close(ctx)
}

// GetCapabilities hides the capabilities that only matter for writes.
func (rob *ReadOnlyBackend) GetCapabilities() *backend.VirtualBackendCapabilities {
	inner := rob.backend.GetCapabilities()

	caps := &backend.VirtualBackendCapabilities{
		MaxObjectSize: inner.MaxObjectSize,
	}
	for _, capability := range inner.Capabilities {
		if capability == backend.CapabilityRename || capability == backend.CapabilityNativeAppend {
			continue
		}
		caps.Capabilities = append(caps.Capabilities, capability)
	}

	return caps
}

func (rob *ReadOnlyBackend) ReadObject(ctx context.Context, name string) ([]byte, error) {
	return rob.backend.ReadObject(ctx, name)
}

func (rob *ReadOnlyBackend) ExistsObject(ctx context.Context, name string) (bool, error) {
	return rob.backend.ExistsObject(ctx, name)
}

func (rob *ReadOnlyBackend) WriteObject(ctx context.Context, name string, buffer []byte) error {
	return data.ErrReadOnly
}

func (rob *ReadOnlyBackend) AppendObject(ctx context.Context, name string, buffer []byte) error {
	return data.ErrReadOnly
}

func (rob *ReadOnlyBackend) DeleteObject(ctx context.Context, name string) error {
	return data.ErrReadOnly
}
