package sectorfs

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mwantia/sectorfs/backend"
	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/data/errors"
	"github.com/mwantia/sectorfs/index"
	"github.com/mwantia/sectorfs/log"
)

// VirtualFileSystem exposes hierarchical virtual files on top of a backend
// that only stores flat, numbered sector objects and one index object.
//
// Every operation reads the whole index from the backend, works on a fresh
// index.Directory and writes the index back if it changed. Nothing is cached
// between calls, so the backend always holds the only source of truth.
// Operations on one VirtualFileSystem are serialized; separate processes
// sharing the same backend are not coordinated.
type VirtualFileSystem struct {
	mu sync.Mutex

	log   *log.Logger
	store backend.VirtualSectorBackend

	indexName     string
	atomicRewrite bool
}

func NewVfs(store backend.VirtualSectorBackend, opts ...VirtualFileSystemOption) (*VirtualFileSystem, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: backend cannot be nil", data.ErrInvalid)
	}

	options := newDefaultVirtualFileSystemOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if options.IndexName == "" || data.IsSectorName(options.IndexName) {
		return nil, fmt.Errorf("%w: index name '%s' collides with sector names", data.ErrInvalid, options.IndexName)
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("vfs", options.LogLevel, options.LogFile, options.NoTerminalLog)
	}

	return &VirtualFileSystem{
		log:           logger.Named(store.GetName()),
		store:         store,
		indexName:     options.IndexName,
		atomicRewrite: options.AtomicRewrite,
	}, nil
}

// Init opens the backend and creates an empty index if none exists yet.
func (vfs *VirtualFileSystem) Init(ctx context.Context) error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	if err := vfs.store.Open(ctx); err != nil {
		vfs.log.Error("Failed to open backend '%s': %v", vfs.store.GetName(), err)
		return errors.Initialization(err, vfs.indexName)
	}

	exists, err := vfs.store.ExistsObject(ctx, vfs.indexName)
	if err != nil {
		vfs.log.Error("Failed to check index '%s': %v", vfs.indexName, err)
		return errors.Initialization(err, vfs.indexName)
	}

	if exists {
		vfs.log.Debug("Using existing index '%s' on backend '%s'", vfs.indexName, vfs.store.GetName())
		return nil
	}

	if err := vfs.store.WriteObject(ctx, vfs.indexName, nil); err != nil {
		vfs.log.Error("Failed to create index '%s': %v", vfs.indexName, err)
		return errors.Initialization(err, vfs.indexName)
	}

	vfs.log.Info("Created empty index '%s' on backend '%s'", vfs.indexName, vfs.store.GetName())
	return nil
}

// Close releases the backend.
func (vfs *VirtualFileSystem) Close(ctx context.Context) error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	return vfs.store.Close(ctx)
}

// ReadIndex returns all index entries in index order.
// An empty index is valid and yields no entries.
func (vfs *VirtualFileSystem) ReadIndex(ctx context.Context) ([]data.IndexEntry, error) {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	dir, err := vfs.readDirectory(ctx)
	if err != nil {
		return nil, err
	}

	return dir.Entries(), nil
}

func (vfs *VirtualFileSystem) readDirectory(ctx context.Context) (*index.Directory, error) {
	content, err := vfs.store.ReadObject(ctx, vfs.indexName)
	if err != nil {
		vfs.log.Warn("Failed to read index '%s': %v", vfs.indexName, err)
		return nil, errors.IndexUnavailable(err, vfs.indexName)
	}

	entries, err := index.DecodeBytes(content)
	if err != nil {
		vfs.log.Error("Failed to decode index '%s': %v", vfs.indexName, err)
		return nil, err
	}

	return index.NewDirectory(entries), nil
}

// writeDirectory replaces the stored index with the entries of dir. If the
// backend supports renames, the new index is written under a temporary name
// first so a failed write never truncates the index.
func (vfs *VirtualFileSystem) writeDirectory(ctx context.Context, dir *index.Directory) error {
	content := index.Encode(dir.Entries())

	rb, ok := backend.AsRenameBackend(vfs.store)
	if !vfs.atomicRewrite || !ok {
		if err := vfs.store.WriteObject(ctx, vfs.indexName, content); err != nil {
			vfs.log.Error("Failed to rewrite index '%s': %v", vfs.indexName, err)
			return errors.CannotOpenFile(err, vfs.indexName)
		}
		return nil
	}

	tmpName := fmt.Sprintf("%s.%s.tmp", vfs.indexName, uuid.NewString())
	if err := rb.WriteObject(ctx, tmpName, content); err != nil {
		vfs.log.Error("Failed to write temporary index '%s': %v", tmpName, err)
		return errors.CannotOpenFile(err, tmpName)
	}

	if err := rb.RenameObject(ctx, tmpName, vfs.indexName); err != nil {
		vfs.log.Error("Failed to replace index '%s': %v", vfs.indexName, err)
		if err := rb.DeleteObject(ctx, tmpName); err != nil {
			vfs.log.Warn("Failed to remove temporary index '%s': %v", tmpName, err)
		}
		return errors.CannotOpenFile(err, vfs.indexName)
	}

	return nil
}
