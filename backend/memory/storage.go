package memory

import (
	"context"
	"fmt"

	"github.com/mwantia/sectorfs/data"
)

func (mb *MemoryBackend) ReadObject(ctx context.Context, name string) ([]byte, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	buffer, exists := mb.objects.Get(name)
	if !exists {
		return nil, data.ErrNotExist
	}

	return append([]byte{}, buffer...), nil
}

func (mb *MemoryBackend) WriteObject(ctx context.Context, name string, buffer []byte) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if err := mb.checkSize(name, int64(len(buffer))); err != nil {
		return err
	}

	mb.objects.Set(name, append([]byte{}, buffer...))
	return nil
}

func (mb *MemoryBackend) AppendObject(ctx context.Context, name string, buffer []byte) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	existing, _ := mb.objects.Get(name)
	if err := mb.checkSize(name, int64(len(existing)+len(buffer))); err != nil {
		return err
	}

	combined := make([]byte, 0, len(existing)+len(buffer))
	combined = append(combined, existing...)
	combined = append(combined, buffer...)

	mb.objects.Set(name, combined)
	return nil
}

func (mb *MemoryBackend) ExistsObject(ctx context.Context, name string) (bool, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	_, exists := mb.objects.Get(name)
	return exists, nil
}

func (mb *MemoryBackend) DeleteObject(ctx context.Context, name string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if _, exists := mb.objects.Delete(name); !exists {
		return data.ErrNotExist
	}

	return nil
}

func (mb *MemoryBackend) RenameObject(ctx context.Context, from, to string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	buffer, exists := mb.objects.Delete(from)
	if !exists {
		return data.ErrNotExist
	}

	mb.objects.Set(to, buffer)
	return nil
}

func (mb *MemoryBackend) checkSize(name string, size int64) error {
	if mb.maxObjectSize > 0 && size > mb.maxObjectSize {
		return fmt.Errorf("%w: '%s' would grow to %d bytes", data.ErrTooLarge, name, size)
	}

	return nil
}
