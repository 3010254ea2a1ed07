package sectorfs

import (
	"context"
	"fmt"

	"github.com/mwantia/sectorfs/data/errors"
)

// Verify checks the index against the backend and returns one message per
// inconsistency found: duplicate paths, sectors shared by several paths and
// sectors whose object is missing. Interrupted creates or deletes leave such
// traces, since index and sector updates are not atomic together.
func (vfs *VirtualFileSystem) Verify(ctx context.Context) ([]string, error) {
	vfs.mu.Lock()
	defer vfs.mu.Unlock()

	dir, err := vfs.readDirectory(ctx)
	if err != nil {
		return nil, err
	}

	issues := make([]string, 0)
	paths := make(map[string]int)
	sectors := make(map[string]string)

	for _, entry := range dir.Entries() {
		paths[entry.Path]++
		if paths[entry.Path] == 2 {
			issues = append(issues, fmt.Sprintf("duplicate path '%s'", entry.Path))
		}

		name := entry.Sector.String()
		if other, exists := sectors[name]; exists {
			if other != entry.Path {
				issues = append(issues, fmt.Sprintf("sector %s shared by '%s' and '%s'", name, other, entry.Path))
			}
			continue
		}
		sectors[name] = entry.Path

		exists, err := vfs.store.ExistsObject(ctx, name)
		if err != nil {
			vfs.log.Error("Failed to check sector '%s': %v", name, err)
			return nil, errors.CannotOpenFile(err, name)
		}

		if !exists {
			issues = append(issues, fmt.Sprintf("sector %s of '%s' is missing", name, entry.Path))
		}
	}

	if len(issues) > 0 {
		vfs.log.Warn("Index '%s' has %d inconsistencies", vfs.indexName, len(issues))
	}

	return issues, nil
}
