//go:build linux

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
		t.Accessed = time.Unix(int64(stat.Atim.Sec), int64(stat.Atim.Nsec))
		t.Changed = time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
	}
	return t
}
