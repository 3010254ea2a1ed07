package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mwantia/sectorfs/backend"
	"github.com/mwantia/sectorfs/data"
)

// LocalBackend stores every object as a file directly inside one host
// directory, e.g. the mount point of an SD card.
type LocalBackend struct {
	mu   sync.RWMutex
	path string
}

func NewLocalBackend(path string) *LocalBackend {
	return &LocalBackend{
		path: filepath.Clean(path),
	}
}

// Returns the identifier name defined for this backend
func (*LocalBackend) GetName() string {
	return "local"
}

// Open is part of the lifecycle behavious and gets called when opening this backend.
func (lb *LocalBackend) Open(ctx context.Context) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	// Verify the root directory exists
	info, err := os.Stat(lb.path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return data.ErrPermission
		}

		return fmt.Errorf("%w: %s", data.ErrNotMounted, lb.path)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", data.ErrNotMounted, lb.path)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (lb *LocalBackend) Close(ctx context.Context) error {
	// The underlying filesystem persists independently
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (lb *LocalBackend) GetCapabilities() *backend.VirtualBackendCapabilities {
	return &backend.VirtualBackendCapabilities{
		Capabilities: []backend.VirtualBackendCapability{
			backend.CapabilitySectorStorage,
			backend.CapabilityRename,
			backend.CapabilityNativeAppend,
			backend.CapabilityPersistent,
		},
	}
}

// resolvePath joins the backend path with a flat object name.
func (lb *LocalBackend) resolvePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: object name '%s'", data.ErrInvalid, name)
	}

	return filepath.Join(lb.path, name), nil
}

func toBackendError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return data.ErrNotExist
	}
	if errors.Is(err, fs.ErrPermission) {
		return data.ErrPermission
	}

	return err
}
