package scan

import "regexp"

// ScanOptions configures how a directory listing is probed.
type ScanOptions struct {
	// Workers is the number of concurrent stat workers.
	Workers int

	// FollowSymlinks stats the symlink target instead of the link itself.
	FollowSymlinks bool

	// SkipHidden drops names starting with "." before they are probed.
	SkipHidden bool

	// MaxErrors is the maximum number of errors before aborting.
	// Zero means unlimited.
	MaxErrors int

	// ExcludePatterns are regular expressions for paths to skip.
	ExcludePatterns []*regexp.Regexp
}

// DefaultOptions returns sensible defaults for scanning.
func DefaultOptions() *ScanOptions {
	return &ScanOptions{
		Workers:   8,
		MaxErrors: 0,
	}
}

// WithWorkers sets the number of workers.
func (o *ScanOptions) WithWorkers(n int) *ScanOptions {
	o.Workers = n
	return o
}

// WithFollowSymlinks sets whether symlinks are followed.
func (o *ScanOptions) WithFollowSymlinks(follow bool) *ScanOptions {
	o.FollowSymlinks = follow
	return o
}

// WithMaxErrors sets the maximum error count.
func (o *ScanOptions) WithMaxErrors(n int) *ScanOptions {
	o.MaxErrors = n
	return o
}

// WithSkipHidden sets whether dot entries are left out of listings.
func (o *ScanOptions) WithSkipHidden(skip bool) *ScanOptions {
	o.SkipHidden = skip
	return o
}

// AddExcludePattern adds a pattern to exclude.
func (o *ScanOptions) AddExcludePattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	o.ExcludePatterns = append(o.ExcludePatterns, re)
	return nil
}

// ShouldExclude reports whether the child name of a listing, at path, is
// skipped. Patterns match against the full path.
func (o *ScanOptions) ShouldExclude(name, path string) bool {
	if o.SkipHidden && len(name) > 0 && name[0] == '.' {
		return true
	}
	for _, re := range o.ExcludePatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
