package sectorfs

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/data/errors"
)

// SectorReader provides read and seek access to a snapshot of one virtual file,
// taken when the reader was opened.
type SectorReader struct {
	mu     sync.Mutex
	ctx    context.Context
	reader *bytes.Reader
	sector data.Sector
	closed bool
}

// SectorWriter streams bytes into the sector of one virtual file.
// Every Write is appended to the sector object right away, as long as path
// still refers to the same sector.
type SectorWriter struct {
	mu      sync.Mutex
	ctx     context.Context
	vfs     *VirtualFileSystem
	path    string
	sector  data.Sector
	written int64
	closed  bool
}

// OpenReader loads the content of path and returns a reader over it.
func (vfs *VirtualFileSystem) OpenReader(ctx context.Context, path string) (*SectorReader, error) {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	_, sector, err := vfs.lookupSector(ctx, path)
	if err != nil {
		return nil, err
	}

	name := sector.String()
	content, err := vfs.store.ReadObject(ctx, name)
	if err != nil {
		vfs.log.Warn("Failed to read sector '%s': %v", name, err)
		return nil, errors.CannotOpenFile(err, name)
	}

	return &SectorReader{
		ctx:    ctx,
		reader: bytes.NewReader(content),
		sector: sector,
	}, nil
}

// OpenWriter creates path like CreateFile and returns a writer appending to
// its empty sector.
func (vfs *VirtualFileSystem) OpenWriter(ctx context.Context, path string, overwrite bool) (*SectorWriter, error) {
	path, err := data.ToAbsolutePath(path)
	if err != nil {
		return nil, err
	}

	sector, err := vfs.CreateFile(ctx, path, overwrite)
	if err != nil {
		return nil, err
	}

	return &SectorWriter{
		ctx:    ctx,
		vfs:    vfs,
		path:   path,
		sector: sector,
	}, nil
}

// Read reads up to len(p) bytes from the current offset.
func (sr *SectorReader) Read(p []byte) (int, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.closed {
		return 0, data.ErrClosed
	}

	// Check context cancellation
	select {
	case <-sr.ctx.Done():
		return 0, sr.ctx.Err()
	default:
	}

	return sr.reader.Read(p)
}

// Seek sets the offset for the next Read and returns the new offset.
func (sr *SectorReader) Seek(offset int64, whence int) (int64, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.closed {
		return 0, data.ErrClosed
	}

	n, err := sr.reader.Seek(offset, whence)
	if err != nil {
		return 0, data.ErrInvalid
	}

	return n, nil
}

// Size returns the length of the snapshot.
func (sr *SectorReader) Size() int64 {
	return sr.reader.Size()
}

func (sr *SectorReader) Sector() data.Sector {
	return sr.sector
}

func (sr *SectorReader) Close() error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.closed {
		return data.ErrClosed
	}

	sr.closed = true
	return nil
}

// Write appends p to the sector object.
func (sw *SectorWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.closed {
		return 0, data.ErrClosed
	}

	// Check context cancellation
	select {
	case <-sw.ctx.Done():
		return 0, sw.ctx.Err()
	default:
	}

	if len(p) == 0 {
		return 0, nil
	}

	sw.vfs.mu.Lock()
	defer sw.vfs.mu.Unlock()

	_, sector, err := sw.vfs.lookupSector(sw.ctx, sw.path)
	if err != nil {
		return 0, err
	}
	if sector != sw.sector {
		// path was deleted and recreated since the writer was opened
		return 0, errors.FileNotFound(nil, sw.path)
	}

	if err := sw.vfs.appendSector(sw.ctx, sector, p); err != nil {
		return 0, err
	}

	sw.written += int64(len(p))
	return len(p), nil
}

// Written returns the number of bytes appended so far.
func (sw *SectorWriter) Written() int64 {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	return sw.written
}

func (sw *SectorWriter) Sector() data.Sector {
	return sw.sector
}

func (sw *SectorWriter) Close() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.closed {
		return data.ErrClosed
	}

	sw.closed = true
	return nil
}

var (
	_ io.ReadSeekCloser = (*SectorReader)(nil)
	_ io.WriteCloser    = (*SectorWriter)(nil)
)
