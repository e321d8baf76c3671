// Package probe wraps the operating system calls pathfold reports on:
// clock and sleep, working directory, file kind, timestamps and
// single-level directory listings. Each function is one call deep.
package probe

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/michaelscutari/pathfold/internal/entry"
)

// Clock returns the local wall-clock time of day in seconds since midnight,
// with microsecond resolution.
func Clock() float64 {
	return clockAt(time.Now())
}

func clockAt(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h*3600+m*60+s) + float64(t.Nanosecond()/1000)/1e6
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SleepMicros sleeps for n microseconds; non-positive n sleeps for one.
func SleepMicros(ctx context.Context, n int64) error {
	if n <= 0 {
		n = 1
	}
	return Sleep(ctx, time.Duration(n)*time.Microsecond)
}

// Getwd returns the absolute working directory.
func Getwd() (string, error) {
	return os.Getwd()
}

// IsDir reports whether p exists and is a directory.
func IsDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// IsFile reports whether p exists and is not a directory.
func IsFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// Times returns the modified, accessed and changed times of p.
func Times(p string) (entry.Times, error) {
	info, err := os.Stat(p)
	if err != nil {
		return entry.Times{}, err
	}
	return timesOf(info), nil
}

// Stat describes p, following symlinks.
func Stat(p string) (entry.Entry, error) {
	info, err := os.Stat(p)
	if err != nil {
		return entry.Entry{}, err
	}
	return entryOf(p, info), nil
}

// Lstat describes p without following a final symlink.
func Lstat(p string) (entry.Entry, error) {
	info, err := os.Lstat(p)
	if err != nil {
		return entry.Entry{}, err
	}
	return entryOf(p, info), nil
}

func entryOf(p string, info os.FileInfo) entry.Entry {
	var blocks int64
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		blocks = int64(stat.Blocks) * 512 // st_blocks is in 512-byte units
	}
	return entry.Entry{
		Path:   p,
		Name:   info.Name(),
		Kind:   entry.KindFromMode(info.Mode()),
		Size:   info.Size(),
		Blocks: blocks,
		Times:  timesOf(info),
	}
}

// List returns the entry names of dir in the order the OS enumerates them.
// The names are neither sorted nor filtered.
func List(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}
