package index

import (
	"testing"

	"github.com/mwantia/sectorfs/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory() *Directory {
	return NewDirectory([]data.IndexEntry{
		data.NewIndexEntry("/a/b.txt", 0),
		data.NewIndexEntry("/a/c.txt", 1),
		data.NewIndexEntry("/d.txt", 2),
		data.NewIndexEntry("/a/e/f.txt", 3),
	})
}

func TestDirectory_Lookup(t *testing.T) {
	dir := newTestDirectory()

	sector, exists := dir.Lookup("/a/c.txt")
	require.True(t, exists)
	assert.Equal(t, data.Sector(1), sector)

	_, exists = dir.Lookup("/a")
	assert.False(t, exists)
	assert.False(t, dir.Exists("a/c.txt"))
	assert.True(t, dir.Exists("/d.txt"))
}

func TestDirectory_LookupFirstDuplicateWins(t *testing.T) {
	dir := NewDirectory([]data.IndexEntry{
		data.NewIndexEntry("/x", 4),
		data.NewIndexEntry("/x", 9),
	})

	sector, exists := dir.Lookup("/x")
	require.True(t, exists)
	assert.Equal(t, data.Sector(4), sector)

	require.True(t, dir.Remove("/x"))
	assert.Equal(t, 0, dir.Len())
	assert.False(t, dir.Exists("/x"))
}

func TestDirectory_ListRoot(t *testing.T) {
	dir := newTestDirectory()

	assert.ElementsMatch(t, []string{"a/", "d.txt"}, dir.List("/", false))
	assert.ElementsMatch(t, []string{"a/b.txt", "a/c.txt", "d.txt", "a/e/f.txt"}, dir.List("/", true))
}

func TestDirectory_ListSubdirectory(t *testing.T) {
	dir := newTestDirectory()

	assert.Equal(t, []string{"b.txt", "c.txt", "e/"}, dir.List("/a/", false))
	assert.Equal(t, []string{"b.txt", "c.txt", "e/f.txt"}, dir.List("/a/", true))
	assert.Empty(t, dir.List("/missing/", true))
}

func TestDirectory_ListWithoutTrailingSlash(t *testing.T) {
	dir := newTestDirectory()
	dir.Add(data.NewIndexEntry("/ab.txt", 5))

	assert.Equal(t, []string{"b.txt", "c.txt", "e/"}, dir.List("/a", false))
	assert.ElementsMatch(t, []string{"b.txt", "c.txt", "e/f.txt"}, dir.List("/a", true))
}

func TestDirectory_AllocateFirstFit(t *testing.T) {
	dir := NewDirectory(nil)
	assert.Equal(t, data.Sector(0), dir.Allocate())

	dir.Add(data.NewIndexEntry("/a", 0))
	assert.Equal(t, data.Sector(1), dir.Allocate())

	dir.Add(data.NewIndexEntry("/b", 1))
	dir.Add(data.NewIndexEntry("/c", 3))
	assert.Equal(t, data.Sector(2), dir.Allocate())

	require.True(t, dir.Remove("/a"))
	assert.Equal(t, data.Sector(0), dir.Allocate())
}

func TestDirectory_AllocateOutOfOrder(t *testing.T) {
	dir := NewDirectory([]data.IndexEntry{
		data.NewIndexEntry("/z", 2),
		data.NewIndexEntry("/y", 0),
		data.NewIndexEntry("/x", 1),
	})

	assert.Equal(t, data.Sector(3), dir.Allocate())
}

func TestDirectory_RemoveKeepsOrder(t *testing.T) {
	dir := newTestDirectory()

	require.True(t, dir.Remove("/a/c.txt"))
	require.False(t, dir.Remove("/a/c.txt"))

	assert.Equal(t, []data.IndexEntry{
		data.NewIndexEntry("/a/b.txt", 0),
		data.NewIndexEntry("/d.txt", 2),
		data.NewIndexEntry("/a/e/f.txt", 3),
	}, dir.Entries())
	assert.Equal(t, data.Sector(1), dir.Allocate())
}
