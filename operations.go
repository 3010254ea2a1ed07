package sectorfs

import (
	"context"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/data/errors"
	"github.com/mwantia/sectorfs/index"
)

// GetSector returns the sector holding the virtual file at path.
// A missing file is reported through the boolean, not as an error.
func (vfs *VirtualFileSystem) GetSector(ctx context.Context, path string) (data.Sector, bool, error) {
	path, err := data.ToAbsolutePath(path)
	if err != nil {
		return 0, false, err
	}

	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	dir, err := vfs.readDirectory(ctx)
	if err != nil {
		return 0, false, err
	}

	sector, exists := dir.Lookup(path)
	return sector, exists, nil
}

// ListDirectory returns the names of all virtual files below path. Without
// recursion, files in subdirectories are collapsed into "name/" entries.
func (vfs *VirtualFileSystem) ListDirectory(ctx context.Context, path string, recursive bool) ([]string, error) {
	path, err := data.ToAbsolutePath(path)
	if err != nil {
		return nil, err
	}

	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	dir, err := vfs.readDirectory(ctx)
	if err != nil {
		return nil, err
	}

	return dir.List(path, recursive), nil
}

// FileExists reports whether a virtual file exists at path.
func (vfs *VirtualFileSystem) FileExists(ctx context.Context, path string) (bool, error) {
	path, err := data.ToAbsolutePath(path)
	if err != nil {
		return false, err
	}

	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	dir, err := vfs.readDirectory(ctx)
	if err != nil {
		return false, err
	}

	return dir.Exists(path), nil
}

// DeleteFile empties the sector of the virtual file at path and removes it
// from the index. The sector object itself stays on the backend and becomes
// free for the next allocation.
func (vfs *VirtualFileSystem) DeleteFile(ctx context.Context, path string) error {
	path, err := data.ToAbsolutePath(path)
	if err != nil {
		return err
	}

	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	dir, err := vfs.readDirectory(ctx)
	if err != nil {
		return err
	}

	return vfs.deleteFile(ctx, dir, path)
}

// CreateFile allocates the first free sector for path, records it in the
// index and creates the empty sector object. An existing file is replaced if
// overwrite is set and reported as ErrFileAlreadyExists otherwise.
func (vfs *VirtualFileSystem) CreateFile(ctx context.Context, path string, overwrite bool) (data.Sector, error) {
	path, err := data.ToAbsolutePath(path)
	if err != nil {
		return 0, err
	}

	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	dir, err := vfs.readDirectory(ctx)
	if err != nil {
		return 0, err
	}

	if dir.Exists(path) {
		if !overwrite {
			vfs.log.Debug("Refusing to overwrite '%s'", path)
			return 0, errors.FileAlreadyExists(nil, path)
		}

		if err := vfs.deleteFile(ctx, dir, path); err != nil {
			return 0, err
		}
	}

	entry := data.NewIndexEntry(path, dir.Allocate())
	if err := vfs.store.AppendObject(ctx, vfs.indexName, index.EncodeEntry(entry)); err != nil {
		vfs.log.Error("Failed to append '%s' to index '%s': %v", path, vfs.indexName, err)
		return 0, errors.CannotOpenFile(err, vfs.indexName)
	}

	name := entry.Sector.String()
	if err := vfs.store.WriteObject(ctx, name, nil); err != nil {
		vfs.log.Error("Failed to create sector '%s' for '%s': %v", name, path, err)
		return 0, errors.CannotOpenFile(err, name)
	}

	vfs.log.Debug("Created '%s' in sector %s", path, name)
	return entry.Sector, nil
}

// deleteFile removes path from dir and persists the result. Must be called with lock held.
func (vfs *VirtualFileSystem) deleteFile(ctx context.Context, dir *index.Directory, path string) error {
	sector, exists := dir.Lookup(path)
	if !exists {
		return errors.FileNotFound(nil, path)
	}

	name := sector.String()
	if err := vfs.store.WriteObject(ctx, name, nil); err != nil {
		vfs.log.Error("Failed to truncate sector '%s' of '%s': %v", name, path, err)
		return errors.CannotOpenFile(err, name)
	}

	dir.Remove(path)
	if err := vfs.writeDirectory(ctx, dir); err != nil {
		return err
	}

	vfs.log.Debug("Deleted '%s' from sector %s", path, name)
	return nil
}
