package pathutil

// Normalize returns a canonical path string.
// It removes trailing slashes, collapses "." and "..", and
// preserves relative paths when provided.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	p, err := Join("", path)
	if err != nil {
		return path
	}
	return p
}
