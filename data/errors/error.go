package errors

import (
	"errors"
	"fmt"
	"sync"
)

// Error kinds surfaced by the virtual filesystem. Every error returned by the
// filesystem wraps exactly one of these, so callers can match with errors.Is.
var (
	ErrInitialization    = errors.New("vfs: initialization failed")
	ErrIndexUnavailable  = errors.New("vfs: index unavailable")
	ErrIndexCorrupt      = errors.New("vfs: index corrupt")
	ErrFileNotFound      = errors.New("vfs: file not found")
	ErrFileAlreadyExists = errors.New("vfs: file already exists")
	ErrCannotOpenFile    = errors.New("vfs: cannot open file")
	ErrInvalidPath       = errors.New("vfs: invalid path")
)

// VirtualError attaches the offending path or file name and the underlying
// cause to one of the error kinds above.
type VirtualError struct {
	Kind error
	Name string
	Err  error
}

func (ve *VirtualError) Error() string {
	text := fmt.Sprintf("%s (%s)", ve.Kind, ve.Name)
	if ve.Err != nil {
		text = fmt.Sprintf("%s: %v", text, ve.Err)
	}

	return text
}

func (ve *VirtualError) Unwrap() []error {
	if ve.Err == nil {
		return []error{ve.Kind}
	}

	return []error{ve.Kind, ve.Err}
}

type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}

func newError(kind error, err error, name string) error {
	return &VirtualError{
		Kind: kind,
		Name: name,
		Err:  err,
	}
}
