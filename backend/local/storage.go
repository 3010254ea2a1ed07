package local

import (
	"context"
	"os"
)

func (lb *LocalBackend) ReadObject(ctx context.Context, name string) ([]byte, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	fullPath, err := lb.resolvePath(name)
	if err != nil {
		return nil, err
	}

	buffer, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, toBackendError(err)
	}

	return buffer, nil
}

func (lb *LocalBackend) WriteObject(ctx context.Context, name string, buffer []byte) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	fullPath, err := lb.resolvePath(name)
	if err != nil {
		return err
	}

	return lb.writeFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, buffer)
}

func (lb *LocalBackend) AppendObject(ctx context.Context, name string, buffer []byte) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	fullPath, err := lb.resolvePath(name)
	if err != nil {
		return err
	}

	return lb.writeFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, buffer)
}

func (lb *LocalBackend) ExistsObject(ctx context.Context, name string) (bool, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	fullPath, err := lb.resolvePath(name)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, toBackendError(err)
	}

	return true, nil
}

func (lb *LocalBackend) DeleteObject(ctx context.Context, name string) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	fullPath, err := lb.resolvePath(name)
	if err != nil {
		return err
	}

	return toBackendError(os.Remove(fullPath))
}

func (lb *LocalBackend) RenameObject(ctx context.Context, from, to string) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	fromPath, err := lb.resolvePath(from)
	if err != nil {
		return err
	}

	toPath, err := lb.resolvePath(to)
	if err != nil {
		return err
	}

	return toBackendError(os.Rename(fromPath, toPath))
}

// writeFile opens fullPath with flags and writes buffer, closing the handle on every path.
func (lb *LocalBackend) writeFile(fullPath string, flags int, buffer []byte) error {
	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return toBackendError(err)
	}

	if _, err := file.Write(buffer); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
