package pathutil

import "strings"

const separator = '/'

// lastSignificantSeparator returns the index of the rightmost separator that
// is followed by a non-separator byte. Separators at the end of p or inside a
// run are never significant.
func lastSignificantSeparator(p string) (int, bool) {
	idx, found := -1, false
	for i := 0; i+1 < len(p); i++ {
		if p[i] == separator && p[i+1] != separator {
			idx, found = i, true
		}
	}
	return idx, found
}

func rooted(p string) bool {
	return len(p) > 0 && p[0] == separator
}

// slashed rewrites backslashes the same way Buffer.Finalize does.
func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
