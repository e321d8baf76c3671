package pathutil

import "strings"

// Dirname returns the parent directory portion of p.
//
// A path without a significant separator has no parent context: a rooted
// one is returned as is and anything else yields ".". The returned prefix
// never ends in a separator unless it is the root.
func Dirname(p string) string {
	i, ok := lastSignificantSeparator(p)
	if !ok {
		if rooted(p) {
			return p
		}
		return "."
	}
	end := i
	for end > 1 && p[end-1] == separator {
		end--
	}
	if end == 0 {
		end = 1
	}
	return slashed(p[:end])
}

// Basename returns the final component of p. When suffix is non-empty
// (a leading "." is ignored) and the component ends in "."+suffix, that
// tail is removed. A bare "." suffix means no suffix.
func Basename(p, suffix string) string {
	start := 0
	if i, ok := lastSignificantSeparator(p); ok {
		start = i + 1
	}
	end := start
	for end < len(p) && p[end] != separator {
		end++
	}
	name := p[start:end]

	suffix = strings.TrimPrefix(suffix, ".")
	if suffix != "" && len(name) > len(suffix) {
		cut := len(name) - len(suffix) - 1
		if name[cut] == '.' && name[cut+1:] == suffix {
			name = name[:cut]
		}
	}
	return slashed(name)
}
