package memory

import (
	"context"
	"sync"

	"github.com/mwantia/sectorfs/backend"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps all objects in an ordered in-memory map. Content is
// lost on Close.
type MemoryBackend struct {
	mu sync.RWMutex

	objects *btree.Map[string, []byte]
	// Optional limit applied to every object, 0 means unlimited
	maxObjectSize int64
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		objects: btree.NewMap[string, []byte](0),
	}
}

// NewLimitedMemoryBackend emulates a small medium that rejects objects
// larger than maxObjectSize.
func NewLimitedMemoryBackend(maxObjectSize int64) *MemoryBackend {
	mb := NewMemoryBackend()
	mb.maxObjectSize = maxObjectSize

	return mb
}

// Returns the identifier name defined for this backend
func (*MemoryBackend) GetName() string {
	return "memory"
}

// Open is part of the lifecycle behavious and gets called when opening this backend.
func (mb *MemoryBackend) Open(ctx context.Context) error {
	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (mb *MemoryBackend) Close(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.objects.Clear()
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (mb *MemoryBackend) GetCapabilities() *backend.VirtualBackendCapabilities {
	return &backend.VirtualBackendCapabilities{
		Capabilities: []backend.VirtualBackendCapability{
			backend.CapabilitySectorStorage,
			backend.CapabilityRename,
			backend.CapabilityNativeAppend,
		},
		MaxObjectSize: mb.maxObjectSize,
	}
}

// Names returns all object names in ascending order.
func (mb *MemoryBackend) Names() []string {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	return mb.objects.Keys()
}
