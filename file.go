package sectorfs

import (
	"context"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/data/errors"
)

// ReadFile returns the content of the virtual file at path.
func (vfs *VirtualFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	_, sector, err := vfs.lookupSector(ctx, path)
	if err != nil {
		return nil, err
	}

	name := sector.String()
	buffer, err := vfs.store.ReadObject(ctx, name)
	if err != nil {
		vfs.log.Warn("Failed to read sector '%s': %v", name, err)
		return nil, errors.CannotOpenFile(err, name)
	}

	return buffer, nil
}

// WriteFile replaces the content of the existing virtual file at path.
func (vfs *VirtualFileSystem) WriteFile(ctx context.Context, path string, buffer []byte) error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	_, sector, err := vfs.lookupSector(ctx, path)
	if err != nil {
		return err
	}

	name := sector.String()
	if err := vfs.store.WriteObject(ctx, name, buffer); err != nil {
		vfs.log.Error("Failed to write sector '%s': %v", name, err)
		return errors.CannotOpenFile(err, name)
	}

	return nil
}

// AppendFile appends to the content of the existing virtual file at path.
func (vfs *VirtualFileSystem) AppendFile(ctx context.Context, path string, buffer []byte) error {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	_, sector, err := vfs.lookupSector(ctx, path)
	if err != nil {
		return err
	}

	return vfs.appendSector(ctx, sector, buffer)
}

func (vfs *VirtualFileSystem) appendSector(ctx context.Context, sector data.Sector, buffer []byte) error {
	name := sector.String()
	if err := vfs.store.AppendObject(ctx, name, buffer); err != nil {
		vfs.log.Error("Failed to append to sector '%s': %v", name, err)
		return errors.CannotOpenFile(err, name)
	}

	return nil
}

// lookupSector resolves path to its absolute form and the sector holding it.
// Must be called with lock held, and the lock must stay held while the
// sector is accessed so no delete can free it in between.
func (vfs *VirtualFileSystem) lookupSector(ctx context.Context, path string) (string, data.Sector, error) {
	path, err := data.ToAbsolutePath(path)
	if err != nil {
		return "", 0, err
	}

	dir, err := vfs.readDirectory(ctx)
	if err != nil {
		return "", 0, err
	}

	sector, exists := dir.Lookup(path)
	if !exists {
		return "", 0, errors.FileNotFound(nil, path)
	}

	return path, sector, nil
}
