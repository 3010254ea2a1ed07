package index

import (
	"strings"

	"github.com/mwantia/sectorfs/data"
	"github.com/tidwall/btree"
)

// Directory is the in-memory view of one index snapshot. It is built fresh
// for every filesystem operation and never outlives it.
//
// Entries keep the order of the index file, so rewriting the index after a
// removal only drops the removed line. Two B-trees back the queries:
//
//   - paths maps every virtual path to its sector (first occurrence wins)
//   - sectors holds every referenced sector for first-fit allocation
type Directory struct {
	entries []data.IndexEntry
	paths   *btree.Map[string, data.Sector]
	sectors *btree.Set[data.Sector]
}

// NewDirectory builds a directory from decoded index entries.
func NewDirectory(entries []data.IndexEntry) *Directory {
	dir := &Directory{
		entries: make([]data.IndexEntry, 0, len(entries)),
		paths:   btree.NewMap[string, data.Sector](0),
		sectors: &btree.Set[data.Sector]{},
	}

	for _, entry := range entries {
		dir.Add(entry)
	}

	return dir
}

// Len returns the number of entries, duplicates included.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Entries returns a copy of all entries in index order.
func (d *Directory) Entries() []data.IndexEntry {
	entries := make([]data.IndexEntry, len(d.entries))
	copy(entries, d.entries)

	return entries
}

// Lookup returns the sector for an exact path match.
func (d *Directory) Lookup(path string) (data.Sector, bool) {
	return d.paths.Get(path)
}

// Exists reports whether path is present in the index.
func (d *Directory) Exists(path string) bool {
	_, exists := d.paths.Get(path)
	return exists
}

// Add appends an entry. Uniqueness of paths is enforced by the caller.
func (d *Directory) Add(entry data.IndexEntry) {
	d.entries = append(d.entries, entry)
	d.sectors.Insert(entry.Sector)

	if _, exists := d.paths.Get(entry.Path); !exists {
		d.paths.Set(entry.Path, entry.Sector)
	}
}

// Remove drops every entry matching path and reports whether any did.
func (d *Directory) Remove(path string) bool {
	if _, exists := d.paths.Delete(path); !exists {
		return false
	}

	kept := d.entries[:0]
	for _, entry := range d.entries {
		if entry.Path != path {
			kept = append(kept, entry)
		}
	}
	d.entries = kept

	// Duplicate sectors may still be referenced by other paths
	d.sectors = &btree.Set[data.Sector]{}
	for _, entry := range d.entries {
		d.sectors.Insert(entry.Sector)
	}

	return true
}

// Allocate returns the smallest sector not referenced by any entry.
func (d *Directory) Allocate() data.Sector {
	var next data.Sector
	d.sectors.Scan(func(sector data.Sector) bool {
		if sector != next {
			return false
		}

		next++
		return true
	})

	return next
}

// List returns the names below dir. Without recursion, nested entries are
// collapsed into their first segment followed by a slash. Names are unique
// and ordered by first occurrence in the index.
func (d *Directory) List(dir string, recursive bool) []string {
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	seen := make(map[string]struct{})
	names := make([]string, 0)

	for _, entry := range d.entries {
		if !data.HasPrefix(entry.Path, dir) {
			continue
		}

		name := data.ToRelativePath(entry.Path, dir)
		if !recursive {
			if pos := strings.Index(name, "/"); pos >= 0 {
				name = name[:pos+1]
			}
		}

		if _, exists := seen[name]; exists {
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
