package probe

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/michaelscutari/pathfold/internal/entry"
)

func TestClockAt(t *testing.T) {
	at := time.Date(2024, 3, 1, 1, 2, 3, 500000000, time.Local)
	if got, want := clockAt(at), 3723.5; got != want {
		t.Fatalf("clockAt = %v, want %v", got, want)
	}
}

func TestClockWithinDay(t *testing.T) {
	c := Clock()
	if c < 0 || c >= 86400 {
		t.Fatalf("clock out of range: %v", c)
	}
}

func TestSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := Sleep(ctx, time.Hour); err == nil {
		t.Fatalf("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("sleep ignored cancellation")
	}
}

func TestSleepMicros(t *testing.T) {
	if err := SleepMicros(context.Background(), 0); err != nil {
		t.Fatalf("sleep: %v", err)
	}
	start := time.Now()
	if err := SleepMicros(context.Background(), 2000); err != nil {
		t.Fatalf("sleep: %v", err)
	}
	if time.Since(start) < 2*time.Millisecond {
		t.Fatalf("slept too little")
	}
}

func TestKindProbes(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	if err := os.WriteFile(file, []byte("hello"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !IsDir(root) || IsFile(root) {
		t.Fatalf("root should be a directory")
	}
	if !IsFile(file) || IsDir(file) {
		t.Fatalf("file should be a file")
	}
	missing := filepath.Join(root, "missing")
	if IsFile(missing) || IsDir(missing) {
		t.Fatalf("missing path reported as existing")
	}
}

func TestTimesAndStat(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	if err := os.WriteFile(file, []byte("hello"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(file, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	times, err := Times(file)
	if err != nil {
		t.Fatalf("times: %v", err)
	}
	if !times.Modified.Equal(mtime) {
		t.Fatalf("modified = %v, want %v", times.Modified, mtime)
	}
	if times.Changed.IsZero() || times.Accessed.IsZero() {
		t.Fatalf("expected accessed and changed times, got %+v", times)
	}

	e, err := Stat(file)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if e.Kind != entry.KindFile || e.Size != 5 || e.Name != "file.txt" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	if _, err := Times(filepath.Join(root, "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLstatSymlink(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	e, err := Lstat(link)
	if err != nil {
		t.Fatalf("lstat: %v", err)
	}
	if e.Kind != entry.KindSymlink {
		t.Fatalf("lstat kind = %s, want symlink", e.Kind)
	}
	e, err = Stat(link)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if e.Kind != entry.KindDir {
		t.Fatalf("stat kind = %s, want dir", e.Kind)
	}
}

func TestList(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b", "a", "c"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	names, err := List(root)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sort.Strings(names)
	if len(names) != 3 || names[0] != "a" || names[2] != "c" {
		t.Fatalf("unexpected names: %v", names)
	}

	if _, err := List(filepath.Join(root, "missing")); err == nil {
		t.Fatalf("expected error listing missing dir")
	}
}
