package sectorfs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mwantia/sectorfs/backend"
	"github.com/mwantia/sectorfs/backend/local"
	"github.com/mwantia/sectorfs/backend/memory"
	"github.com/mwantia/sectorfs/backend/readonly"
	"github.com/mwantia/sectorfs/backend/sqlite"
	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/log"
)

// TestBackendFactory creates a new backend instance for testing.
type TestBackendFactory func(t *testing.T) backend.VirtualSectorBackend

// GetTestBackendFactories returns all backend implementations to test.
func GetTestBackendFactories() map[string]TestBackendFactory {
	return map[string]TestBackendFactory{
		"memory": func(t *testing.T) backend.VirtualSectorBackend {
			return memory.NewMemoryBackend()
		},
		"local": func(t *testing.T) backend.VirtualSectorBackend {
			return local.NewLocalBackend(t.TempDir())
		},
		"sqlite": func(t *testing.T) backend.VirtualSectorBackend {
			sb, err := sqlite.NewSQLiteBackend(":memory:")
			if err != nil {
				t.Fatalf("Backend init failed: %v", err)
			}
			return sb
		},
	}
}

func newTestVfs(t *testing.T, store backend.VirtualSectorBackend, opts ...VirtualFileSystemOption) *VirtualFileSystem {
	t.Helper()

	opts = append([]VirtualFileSystemOption{WithLogger(log.NewDiscardLogger())}, opts...)
	fs, err := NewVfs(store, opts...)
	if err != nil {
		t.Fatalf("NewVfs failed: %v", err)
	}

	if err := fs.Init(t.Context()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() {
		fs.Close(t.Context())
	})

	return fs
}

// forAllBackends runs test once per backend implementation.
func forAllBackends(t *testing.T, test func(t *testing.T, fs *VirtualFileSystem)) {
	for name, factory := range GetTestBackendFactories() {
		t.Run(name, func(t *testing.T) {
			test(t, newTestVfs(t, factory(t)))
		})
	}
}

func TestVfs_InitCreatesEmptyIndex(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		entries, err := fs.ReadIndex(t.Context())
		if err != nil {
			t.Fatalf("ReadIndex failed: %v", err)
		}

		if len(entries) != 0 {
			t.Errorf("Expected empty index, got %v", entries)
		}

		// A second Init keeps the existing index
		if _, err := fs.CreateFile(t.Context(), "/a.txt", false); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
		if err := fs.Init(t.Context()); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if exists, _ := fs.FileExists(t.Context(), "/a.txt"); !exists {
			t.Error("Init must not reset an existing index")
		}
	})
}

func TestVfs_InitFailsWithoutMedium(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "not-mounted")

	fs, err := NewVfs(local.NewLocalBackend(missing), WithLogger(log.NewDiscardLogger()))
	if err != nil {
		t.Fatalf("NewVfs failed: %v", err)
	}

	err = fs.Init(t.Context())
	if !errors.Is(err, ErrInitialization) {
		t.Fatalf("Expected ErrInitialization, got %v", err)
	}

	if !errors.Is(err, data.ErrNotMounted) {
		t.Errorf("Expected cause ErrNotMounted, got %v", err)
	}
}

func TestVfs_IndexUnavailable(t *testing.T) {
	fs, err := NewVfs(memory.NewMemoryBackend(), WithLogger(log.NewDiscardLogger()))
	if err != nil {
		t.Fatalf("NewVfs failed: %v", err)
	}

	// Without Init there is no index to read
	if _, err := fs.ReadIndex(t.Context()); !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Expected ErrIndexUnavailable from ReadIndex, got %v", err)
	}

	if _, err := fs.CreateFile(t.Context(), "/a", true); !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Expected ErrIndexUnavailable from CreateFile, got %v", err)
	}

	if _, err := fs.ListDirectory(t.Context(), "/", false); !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Expected ErrIndexUnavailable from ListDirectory, got %v", err)
	}
}

func TestVfs_CreateThenExists(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		for _, path := range []string{"/a.txt", "/dir/b.txt", "relative/c.txt"} {
			if _, err := fs.CreateFile(ctx, path, true); err != nil {
				t.Fatalf("CreateFile %s failed: %v", path, err)
			}

			exists, err := fs.FileExists(ctx, path)
			if err != nil {
				t.Fatalf("FileExists %s failed: %v", path, err)
			}
			if !exists {
				t.Errorf("Expected %s to exist", path)
			}
		}

		// Relative paths are stored as absolute paths
		if exists, _ := fs.FileExists(ctx, "/relative/c.txt"); !exists {
			t.Error("Expected normalized path /relative/c.txt to exist")
		}
	})
}

func TestVfs_DeleteThenNotFound(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		if _, err := fs.CreateFile(ctx, "/a.txt", true); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}

		if err := fs.DeleteFile(ctx, "a.txt"); err != nil {
			t.Fatalf("DeleteFile failed: %v", err)
		}

		exists, err := fs.FileExists(ctx, "/a.txt")
		if err != nil {
			t.Fatalf("FileExists failed: %v", err)
		}
		if exists {
			t.Error("Expected /a.txt to be deleted")
		}

		err = fs.DeleteFile(ctx, "/a.txt")
		if !errors.Is(err, ErrFileNotFound) {
			t.Fatalf("Expected ErrFileNotFound, got %v", err)
		}

		if !strings.Contains(err.Error(), "/a.txt") {
			t.Errorf("Expected error to name the path, got %q", err)
		}
	})
}

func TestVfs_GetSectorMatchesCreate(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		created := make(map[string]data.Sector)
		for _, path := range []string{"/x", "/y/z", "/y/w"} {
			sector, err := fs.CreateFile(ctx, path, true)
			if err != nil {
				t.Fatalf("CreateFile %s failed: %v", path, err)
			}
			created[path] = sector
		}

		for path, expected := range created {
			sector, exists, err := fs.GetSector(ctx, path)
			if err != nil {
				t.Fatalf("GetSector %s failed: %v", path, err)
			}
			if !exists || sector != expected {
				t.Errorf("GetSector %s: expected %d, got %d (exists=%v)", path, expected, sector, exists)
			}
		}

		if _, exists, err := fs.GetSector(ctx, "/missing"); err != nil || exists {
			t.Errorf("Expected missing file to be absent without error, got exists=%v err=%v", exists, err)
		}
	})
}

func TestVfs_FirstFitAllocation(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		first, err := fs.CreateFile(ctx, "/first", true)
		if err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
		second, err := fs.CreateFile(ctx, "/second", true)
		if err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}

		if first != 0 || second != 1 {
			t.Fatalf("Expected sectors 0 and 1, got %d and %d", first, second)
		}

		if err := fs.DeleteFile(ctx, "/first"); err != nil {
			t.Fatalf("DeleteFile failed: %v", err)
		}

		third, err := fs.CreateFile(ctx, "/third", true)
		if err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
		if third != 0 {
			t.Errorf("Expected freed sector 0 to be reused, got %d", third)
		}

		fourth, err := fs.CreateFile(ctx, "/fourth", true)
		if err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
		if fourth != 2 {
			t.Errorf("Expected sector 2, got %d", fourth)
		}
	})
}

func TestVfs_CreateWithoutOverwrite(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		if _, err := fs.CreateFile(ctx, "a", false); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}

		_, err := fs.CreateFile(ctx, "a", false)
		if !errors.Is(err, ErrFileAlreadyExists) {
			t.Fatalf("Expected ErrFileAlreadyExists, got %v", err)
		}

		entries, err := fs.ReadIndex(ctx)
		if err != nil {
			t.Fatalf("ReadIndex failed: %v", err)
		}

		if len(entries) != 1 || entries[0].Path != "/a" {
			t.Errorf("Expected exactly one entry for /a, got %v", entries)
		}
	})
}

func TestVfs_OverwriteKeepsSingleEntry(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		if _, err := fs.CreateFile(ctx, "/other", true); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}

		for i := 0; i < 2; i++ {
			if _, err := fs.CreateFile(ctx, "/p", true); err != nil {
				t.Fatalf("CreateFile #%d failed: %v", i, err)
			}
		}

		entries, err := fs.ReadIndex(ctx)
		if err != nil {
			t.Fatalf("ReadIndex failed: %v", err)
		}

		count := 0
		for _, entry := range entries {
			if entry.Path == "/p" {
				count++
			}
		}

		if count != 1 || len(entries) != 2 {
			t.Errorf("Expected one entry for /p among two, got %v", entries)
		}
	})
}

func TestVfs_OverwriteClearsContent(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		if _, err := fs.CreateFile(ctx, "/p", true); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
		if err := fs.WriteFile(ctx, "/p", []byte("old")); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		if _, err := fs.CreateFile(ctx, "/p", true); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}

		got, err := fs.ReadFile(ctx, "/p")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Expected empty file after overwrite, got %q", got)
		}
	})
}

func TestVfs_ListDirectory(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		for _, path := range []string{"/a/b.txt", "/a/c.txt", "/d.txt"} {
			if _, err := fs.CreateFile(ctx, path, true); err != nil {
				t.Fatalf("CreateFile %s failed: %v", path, err)
			}
		}

		root, err := fs.ListDirectory(ctx, "/", false)
		if err != nil {
			t.Fatalf("ListDirectory failed: %v", err)
		}
		slices.Sort(root)
		if !slices.Equal(root, []string{"a/", "d.txt"}) {
			t.Errorf("Expected [a/ d.txt], got %v", root)
		}

		sub, err := fs.ListDirectory(ctx, "/a", true)
		if err != nil {
			t.Fatalf("ListDirectory failed: %v", err)
		}
		slices.Sort(sub)
		if !slices.Equal(sub, []string{"b.txt", "c.txt"}) {
			t.Errorf("Expected [b.txt c.txt], got %v", sub)
		}

		// Relative directory names are normalized as well
		rel, err := fs.ListDirectory(ctx, "a/", false)
		if err != nil {
			t.Fatalf("ListDirectory failed: %v", err)
		}
		slices.Sort(rel)
		if !slices.Equal(rel, []string{"b.txt", "c.txt"}) {
			t.Errorf("Expected [b.txt c.txt], got %v", rel)
		}
	})
}

func TestVfs_FileContent(t *testing.T) {
	forAllBackends(t, func(t *testing.T, fs *VirtualFileSystem) {
		ctx := t.Context()

		if _, err := fs.CreateFile(ctx, "/log.txt", true); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}

		if err := fs.WriteFile(ctx, "/log.txt", []byte("hello")); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := fs.AppendFile(ctx, "/log.txt", []byte(" world")); err != nil {
			t.Fatalf("AppendFile failed: %v", err)
		}

		got, err := fs.ReadFile(ctx, "/log.txt")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, []byte("hello world")) {
			t.Errorf("Expected %q, got %q", "hello world", got)
		}

		if _, err := fs.ReadFile(ctx, "/missing"); !errors.Is(err, ErrFileNotFound) {
			t.Errorf("Expected ErrFileNotFound, got %v", err)
		}
		if err := fs.WriteFile(ctx, "/missing", nil); !errors.Is(err, ErrFileNotFound) {
			t.Errorf("Expected ErrFileNotFound, got %v", err)
		}
	})
}

func TestVfs_DeleteTruncatesSector(t *testing.T) {
	store := memory.NewMemoryBackend()
	fs := newTestVfs(t, store)
	ctx := t.Context()

	if _, err := fs.CreateFile(ctx, "/a", true); err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if err := fs.WriteFile(ctx, "/a", []byte("content")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := fs.DeleteFile(ctx, "/a"); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}

	buffer, err := store.ReadObject(ctx, "0")
	if err != nil {
		t.Fatalf("Sector object should remain after delete: %v", err)
	}
	if len(buffer) != 0 {
		t.Errorf("Expected emptied sector, got %q", buffer)
	}

	// The rename based rewrite leaves no temporary objects behind
	if names := store.Names(); !slices.Equal(names, []string{"0", DefaultIndexName}) {
		t.Errorf("Unexpected backend objects %v", names)
	}
}

func TestVfs_InPlaceRewrite(t *testing.T) {
	store := memory.NewMemoryBackend()
	fs := newTestVfs(t, store, WithoutAtomicRewrite(), WithIndexName("vfs.idx"))
	ctx := t.Context()

	for _, path := range []string{"/a", "/b"} {
		if _, err := fs.CreateFile(ctx, path, true); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
	}
	if err := fs.DeleteFile(ctx, "/a"); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}

	content, err := store.ReadObject(ctx, "vfs.idx")
	if err != nil {
		t.Fatalf("ReadObject failed: %v", err)
	}
	if string(content) != "/b/1\n" {
		t.Errorf("Unexpected index content %q", content)
	}
}

func TestVfs_LocalIndexFormat(t *testing.T) {
	dir := t.TempDir()
	fs := newTestVfs(t, local.NewLocalBackend(dir))
	ctx := t.Context()

	for _, path := range []string{"/a/b.txt", "/d.txt", "/a/c.txt"} {
		if _, err := fs.CreateFile(ctx, path, true); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
	}
	if err := fs.WriteFile(ctx, "/d.txt", []byte("raw bytes")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.DeleteFile(ctx, "/a/b.txt"); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, DefaultIndexName))
	if err != nil {
		t.Fatalf("Index not created on disk: %v", err)
	}
	if string(content) != "/d.txt/1\n/a/c.txt/2\n" {
		t.Errorf("Unexpected index content %q", content)
	}

	sector, err := os.ReadFile(filepath.Join(dir, "1"))
	if err != nil {
		t.Fatalf("Sector not created on disk: %v", err)
	}
	if string(sector) != "raw bytes" {
		t.Errorf("Expected raw sector content, got %q", sector)
	}

	// The freed sector file stays on disk, emptied
	info, err := os.Stat(filepath.Join(dir, "0"))
	if err != nil || info.Size() != 0 {
		t.Errorf("Expected empty sector file 0, got info=%v err=%v", info, err)
	}
}

func TestVfs_ReadsExternalIndexEdits(t *testing.T) {
	dir := t.TempDir()
	fs := newTestVfs(t, local.NewLocalBackend(dir))
	ctx := t.Context()

	if err := os.WriteFile(filepath.Join(dir, DefaultIndexName), []byte("/x/3\n\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sector, exists, err := fs.GetSector(ctx, "/x")
	if err != nil || !exists || sector != 3 {
		t.Fatalf("Expected /x in sector 3, got %d exists=%v err=%v", sector, exists, err)
	}

	next, err := fs.CreateFile(ctx, "/y", true)
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if next != 0 {
		t.Errorf("Expected sector 0, got %d", next)
	}
}

func TestVfs_CannotOpenFile(t *testing.T) {
	// Index objects above 16 bytes are rejected by the backend
	store := memory.NewLimitedMemoryBackend(16)
	fs := newTestVfs(t, store)
	ctx := t.Context()

	if _, err := fs.CreateFile(ctx, "/a", true); err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	_, err := fs.CreateFile(ctx, "/a/much/longer/path", true)
	if !errors.Is(err, ErrCannotOpenFile) {
		t.Fatalf("Expected ErrCannotOpenFile, got %v", err)
	}
	if !errors.Is(err, data.ErrTooLarge) {
		t.Errorf("Expected cause ErrTooLarge, got %v", err)
	}

	entries, err := fs.ReadIndex(ctx)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected failed create to leave the index untouched, got %v", entries)
	}
}

func TestVfs_CorruptIndex(t *testing.T) {
	store := memory.NewMemoryBackend()
	fs := newTestVfs(t, store)
	ctx := t.Context()

	if err := store.WriteObject(ctx, DefaultIndexName, []byte("/a/0\nbroken\n")); err != nil {
		t.Fatalf("WriteObject failed: %v", err)
	}

	if _, err := fs.FileExists(ctx, "/a"); !errors.Is(err, ErrIndexCorrupt) {
		t.Errorf("Expected ErrIndexCorrupt, got %v", err)
	}
}

func TestVfs_InvalidPath(t *testing.T) {
	fs := newTestVfs(t, memory.NewMemoryBackend())
	ctx := t.Context()

	for _, path := range []string{"", "/a\nb", "/a\r"} {
		if _, err := fs.CreateFile(ctx, path, true); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("CreateFile(%q): expected ErrInvalidPath, got %v", path, err)
		}
	}

	long := "/" + strings.Repeat("x", 2<<20)
	if _, err := fs.CreateFile(ctx, long, true); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("CreateFile(long path): expected ErrInvalidPath, got %v", err)
	}

	// Rejected paths must never reach the index
	if _, err := fs.FileExists(ctx, "/other"); err != nil {
		t.Errorf("Expected readable index, got %v", err)
	}
}

func TestVfs_InvalidIndexName(t *testing.T) {
	for _, name := range []string{"", "0", "17"} {
		if _, err := NewVfs(memory.NewMemoryBackend(), WithIndexName(name)); !errors.Is(err, data.ErrInvalid) {
			t.Errorf("WithIndexName(%q): expected ErrInvalid, got %v", name, err)
		}
	}

	if _, err := NewVfs(nil); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for nil backend, got %v", err)
	}
}

func TestVfs_Verify(t *testing.T) {
	store := memory.NewMemoryBackend()
	fs := newTestVfs(t, store)
	ctx := t.Context()

	for _, path := range []string{"/a", "/b"} {
		if _, err := fs.CreateFile(ctx, path, true); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
	}

	issues, err := fs.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("Expected consistent index, got %v", issues)
	}

	if err := store.DeleteObject(ctx, "1"); err != nil {
		t.Fatalf("DeleteObject failed: %v", err)
	}
	if err := store.AppendObject(ctx, DefaultIndexName, []byte("/a/0\n/c/0\n")); err != nil {
		t.Fatalf("AppendObject failed: %v", err)
	}

	issues, err = fs.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if len(issues) != 3 {
		t.Errorf("Expected 3 issues, got %v", issues)
	}
}

func TestVfs_ConcurrentCreates(t *testing.T) {
	fs := newTestVfs(t, memory.NewMemoryBackend())
	ctx := t.Context()

	var wg sync.WaitGroup
	sectors := make([]data.Sector, 16)
	errs := make([]error, len(sectors))

	for i := range sectors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sectors[i], errs[i] = fs.CreateFile(ctx, filepath.Join("/c", string(rune('a'+i))), false)
		}(i)
	}
	wg.Wait()

	seen := make(map[data.Sector]bool)
	for i, sector := range sectors {
		if errs[i] != nil {
			t.Fatalf("CreateFile #%d failed: %v", i, errs[i])
		}
		if seen[sector] {
			t.Errorf("Sector %d allocated twice", sector)
		}
		seen[sector] = true
	}

	entries, err := fs.ReadIndex(ctx)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}
	if len(entries) != len(sectors) {
		t.Errorf("Expected %d entries, got %d", len(sectors), len(entries))
	}
}

// hookBackend intercepts writes and existence checks of the wrapped backend.
// It does not advertise renames, so the index is rewritten in place.
type hookBackend struct {
	backend.VirtualSectorBackend

	onWrite  func(name string, buffer []byte) error
	onExists func(name string) error
}

func (hb *hookBackend) GetCapabilities() *backend.VirtualBackendCapabilities {
	return &backend.VirtualBackendCapabilities{
		Capabilities: []backend.VirtualBackendCapability{backend.CapabilitySectorStorage},
	}
}

func (hb *hookBackend) WriteObject(ctx context.Context, name string, buffer []byte) error {
	if hb.onWrite != nil {
		if err := hb.onWrite(name, buffer); err != nil {
			return err
		}
	}
	return hb.VirtualSectorBackend.WriteObject(ctx, name, buffer)
}

func (hb *hookBackend) ExistsObject(ctx context.Context, name string) (bool, error) {
	if hb.onExists != nil {
		if err := hb.onExists(name); err != nil {
			return false, err
		}
	}
	return hb.VirtualSectorBackend.ExistsObject(ctx, name)
}

func TestVfs_WriteFileSerializedWithDelete(t *testing.T) {
	store := &hookBackend{VirtualSectorBackend: memory.NewMemoryBackend()}
	fs := newTestVfs(t, store)
	ctx := t.Context()

	if _, err := fs.CreateFile(ctx, "/a", false); err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	// While the content of /a is written, another caller deletes /a and
	// creates /b, which would reuse the freed sector 0.
	var once sync.Once
	done := make(chan struct{})
	store.onWrite = func(name string, buffer []byte) error {
		if name != "0" || len(buffer) == 0 {
			return nil
		}

		once.Do(func() {
			go func() {
				defer close(done)
				if err := fs.DeleteFile(ctx, "/a"); err != nil {
					t.Errorf("DeleteFile failed: %v", err)
				}
				if _, err := fs.CreateFile(ctx, "/b", false); err != nil {
					t.Errorf("CreateFile failed: %v", err)
				}
			}()

			select {
			case <-done:
			case <-time.After(100 * time.Millisecond):
			}
		})
		return nil
	}

	if err := fs.WriteFile(ctx, "/a", []byte("secret-for-a")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	<-done

	content, err := fs.ReadFile(ctx, "/b")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("Expected /b to start empty, got %q", content)
	}
}

func TestVfs_SectorWriterAfterDelete(t *testing.T) {
	fs := newTestVfs(t, memory.NewMemoryBackend())
	ctx := t.Context()

	w, err := fs.OpenWriter(ctx, "a", false)
	if err != nil {
		t.Fatalf("OpenWriter failed: %v", err)
	}
	defer w.Close()

	if err := fs.DeleteFile(ctx, "/a"); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if _, err := fs.CreateFile(ctx, "/b", false); err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	if _, err := w.Write([]byte("stale")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}

	content, err := fs.ReadFile(ctx, "/b")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("Expected /b to stay empty, got %q", content)
	}
}

func TestVfs_DeleteCannotOpenFile(t *testing.T) {
	t.Run("truncate", func(t *testing.T) {
		mem := memory.NewMemoryBackend()
		fs := newTestVfs(t, mem)
		ctx := t.Context()

		if _, err := fs.CreateFile(ctx, "/a", false); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}
		if err := fs.WriteFile(ctx, "/a", []byte("keep")); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		rofs := newTestVfs(t, readonly.NewReadOnlyBackend(mem))
		err := rofs.DeleteFile(ctx, "/a")
		if !errors.Is(err, ErrCannotOpenFile) {
			t.Fatalf("Expected ErrCannotOpenFile, got %v", err)
		}
		if !errors.Is(err, data.ErrReadOnly) {
			t.Errorf("Expected cause ErrReadOnly, got %v", err)
		}

		entries, err := fs.ReadIndex(ctx)
		if err != nil {
			t.Fatalf("ReadIndex failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Path != "/a" {
			t.Errorf("Expected failed delete to leave the index untouched, got %v", entries)
		}

		content, err := fs.ReadFile(ctx, "/a")
		if err != nil || string(content) != "keep" {
			t.Errorf("Expected content 'keep', got %q (%v)", content, err)
		}
	})

	t.Run("index rewrite", func(t *testing.T) {
		store := &hookBackend{VirtualSectorBackend: memory.NewMemoryBackend()}
		fs := newTestVfs(t, store)
		ctx := t.Context()

		if _, err := fs.CreateFile(ctx, "/a", false); err != nil {
			t.Fatalf("CreateFile failed: %v", err)
		}

		store.onWrite = func(name string, buffer []byte) error {
			if name == DefaultIndexName {
				return data.ErrPermission
			}
			return nil
		}

		err := fs.DeleteFile(ctx, "/a")
		if !errors.Is(err, ErrCannotOpenFile) {
			t.Fatalf("Expected ErrCannotOpenFile, got %v", err)
		}
		if !errors.Is(err, data.ErrPermission) {
			t.Errorf("Expected cause ErrPermission, got %v", err)
		}

		exists, err := fs.FileExists(ctx, "/a")
		if err != nil || !exists {
			t.Errorf("Expected /a to remain in the index, got %v (%v)", exists, err)
		}
	})
}

func TestVfs_VerifyCannotOpenFile(t *testing.T) {
	store := &hookBackend{VirtualSectorBackend: memory.NewMemoryBackend()}
	fs := newTestVfs(t, store)
	ctx := t.Context()

	if _, err := fs.CreateFile(ctx, "/a", false); err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}

	store.onExists = func(name string) error {
		if data.IsSectorName(name) {
			return data.ErrPermission
		}
		return nil
	}

	if _, err := fs.Verify(ctx); !errors.Is(err, ErrCannotOpenFile) {
		t.Errorf("Expected ErrCannotOpenFile, got %v", err)
	}
}

func TestVfs_LogsWithBackendName(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWriterLogger("sectorfs", log.Debug, &buf)

	fs, err := NewVfs(memory.NewMemoryBackend(), WithLogger(logger))
	if err != nil {
		t.Fatalf("NewVfs failed: %v", err)
	}
	if err := fs.Init(t.Context()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer fs.Close(t.Context())

	if !strings.Contains(buf.String(), "[sectorfs/memory] Created empty index 'index.txt'") {
		t.Errorf("Expected backend-named log line, got %q", buf.String())
	}
}
