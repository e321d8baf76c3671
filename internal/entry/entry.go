package entry

import (
	"os"
	"time"
)

// Kind represents the type of filesystem entry.
type Kind uint8

const (
	KindFile    Kind = 0
	KindDir     Kind = 1
	KindSymlink Kind = 2
	KindOther   Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// KindFromMode derives the Kind from an os.FileMode.
func KindFromMode(mode os.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// Times holds the three timestamps reported by stat.
type Times struct {
	Modified time.Time
	Accessed time.Time
	Changed  time.Time
}

// Entry is one child of a listed directory.
type Entry struct {
	Path   string
	Name   string
	Kind   Kind
	Size   int64 // Apparent size (st_size)
	Blocks int64 // Disk usage in bytes (st_blocks * 512)
	Times
}

// ScanError represents an error encountered while listing.
type ScanError struct {
	Path    string
	Message string
}

// Listing is a single-level snapshot of a directory.
type Listing struct {
	ID         int64
	Dir        string
	RecordedAt time.Time
	Entries    []Entry
	Errors     []ScanError
}

// Summary holds aggregated statistics for a listing.
type Summary struct {
	TotalSize   int64 // Apparent size
	TotalBlocks int64 // Disk usage
	Files       int64
	Dirs        int64
	Others      int64
}

// Summarize totals the entries of a listing.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		s.TotalSize += e.Size
		s.TotalBlocks += e.Blocks
		switch e.Kind {
		case KindFile:
			s.Files++
		case KindDir:
			s.Dirs++
		default:
			s.Others++
		}
	}
	return s
}

// ListingMeta describes a recorded listing without its entries.
type ListingMeta struct {
	ID         int64
	Dir        string
	RecordedAt time.Time
	EntryCount int64
	TotalSize  int64
	ErrorCount int64
}
