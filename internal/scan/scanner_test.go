package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/michaelscutari/pathfold/internal/entry"
)

func TestScannerListsDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "file.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "nested.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write nested: %v", err)
	}

	listing, err := NewScanner(DefaultOptions().WithWorkers(2)).Run(context.Background(), root+"/")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(listing.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", listing.Errors)
	}
	if len(listing.Entries) != 2 {
		t.Fatalf("expected 2 entries (single level), got %d", len(listing.Entries))
	}

	sort.Slice(listing.Entries, func(i, j int) bool { return listing.Entries[i].Name < listing.Entries[j].Name })
	file, sub := listing.Entries[0], listing.Entries[1]
	if file.Name != "file.txt" || file.Kind != entry.KindFile || file.Size != 5 {
		t.Fatalf("unexpected file entry: %+v", file)
	}
	if sub.Kind != entry.KindDir {
		t.Fatalf("expected sub to be a dir, got %s", sub.Kind)
	}
	if want := filepath.ToSlash(filepath.Join(root, "sub")); sub.Path != want {
		t.Fatalf("sub path = %q, want %q", sub.Path, want)
	}
}

func TestScannerExcludes(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"keep.txt", "skip.log"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	opts := DefaultOptions()
	if err := opts.AddExcludePattern(`\.log$`); err != nil {
		t.Fatalf("pattern: %v", err)
	}
	listing, err := NewScanner(opts).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(listing.Entries) != 1 || listing.Entries[0].Name != "keep.txt" {
		t.Fatalf("unexpected entries: %+v", listing.Entries)
	}
}

func TestScannerSkipHidden(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{".hidden", "shown"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	listing, err := NewScanner(DefaultOptions()).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(listing.Entries) != 2 {
		t.Fatalf("expected hidden entries by default, got %+v", listing.Entries)
	}

	listing, err = NewScanner(DefaultOptions().WithSkipHidden(true)).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(listing.Entries) != 1 || listing.Entries[0].Name != "shown" {
		t.Fatalf("unexpected entries: %+v", listing.Entries)
	}
}

func TestScannerMaxErrors(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"l1", "l2", "l3", "l4"} {
		if err := os.Symlink(filepath.Join(root, "missing-"+name), filepath.Join(root, name)); err != nil {
			t.Fatalf("symlink %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "ok.txt"), nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	opts := DefaultOptions().WithWorkers(1).WithFollowSymlinks(true).WithMaxErrors(2)
	listing, err := NewScanner(opts).Run(context.Background(), root)
	if !errors.Is(err, ErrTooManyErrors) {
		t.Fatalf("expected ErrTooManyErrors, got %v", err)
	}
	if listing == nil {
		t.Fatalf("expected a partial listing")
	}
	if len(listing.Errors) > opts.MaxErrors {
		t.Fatalf("error budget exceeded: %d errors recorded, budget %d", len(listing.Errors), opts.MaxErrors)
	}
	if len(listing.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(listing.Errors))
	}
}

func TestScannerMissingDirectory(t *testing.T) {
	_, err := NewScanner(nil).Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestScannerCanceled(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a"), nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewScanner(nil).Run(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestInvalidExcludePattern(t *testing.T) {
	if err := DefaultOptions().AddExcludePattern("("); err == nil {
		t.Fatalf("expected compile error")
	}
}
