package data

import (
	"fmt"
	"strings"

	"github.com/mwantia/sectorfs/data/errors"
)

// MaxIndexLine is the longest index line the index decoder accepts.
const MaxIndexLine = 1 << 20

// MaxPathLength leaves room in an index line for the delimiter, the largest
// sector identifier and the line ending.
const MaxPathLength = MaxIndexLine - 64

// ToAbsolutePath ensures the path always starts with a leading slash.
// Paths that cannot be stored as a single index line are rejected.
func ToAbsolutePath(path string) (string, error) {
	if len(path) == 0 {
		return "", errors.InvalidPath(nil, path)
	}

	if strings.ContainsAny(path, "\r\n") {
		return "", errors.InvalidPath(fmt.Errorf("line break in path"), path)
	}

	if !strings.HasPrefix(path, "/") {
		path = fmt.Sprintf("/%s", path)
	}

	if len(path) > MaxPathLength {
		return "", errors.InvalidPath(fmt.Errorf("path exceeds %d bytes", MaxPathLength), path[:64]+"...")
	}

	return path, nil
}

// HasPrefix checks if path has the given prefix.
// Both paths should be absolute before calling.
func HasPrefix(path, prefix string) bool {
	// Root matches everything
	if prefix == "" || prefix == "/" {
		return strings.HasPrefix(path, "/")
	}

	return strings.HasPrefix(path, prefix)
}

// ToRelativePath removes the prefix from path.
func ToRelativePath(path, prefix string) string {
	if prefix == "" {
		return path
	}

	return strings.TrimPrefix(path, prefix)
}
