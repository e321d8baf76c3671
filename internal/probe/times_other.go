//go:build !linux && !darwin

package probe

import (
	"os"

	"github.com/michaelscutari/pathfold/internal/entry"
)

// Platforms without a portable stat layout report mtime for all three.
func timesOf(info os.FileInfo) entry.Times {
	return entry.Times{Modified: info.ModTime(), Accessed: info.ModTime(), Changed: info.ModTime()}
}
