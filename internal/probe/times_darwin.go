//go:build darwin

package probe

import (
	"os"
	"syscall"
	"time"

	"github.com/michaelscutari/pathfold/internal/entry"
)

func timesOf(info os.FileInfo) entry.Times {
	t := entry.Times{Modified: info.ModTime(), Accessed: info.ModTime(), Changed: info.ModTime()}
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		t.Accessed = time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
		t.Changed = time.Unix(stat.Ctimespec.Sec, stat.Ctimespec.Nsec)
	}
	return t
}
