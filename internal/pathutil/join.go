package pathutil

import "strings"

// Join folds fragment onto base and returns the normalized result.
//
// Processing is purely lexical. A rooted fragment discards base, and
// separator runs in base are collapsed while it is copied. "." segments
// are dropped, ".." removes the last accumulated component but never climbs
// above the root (or below an empty relative base), and separator runs
// collapse to one. The result carries no trailing separator except for "/".
func Join(base, fragment string) (string, error) {
	b := NewBuffer()
	if rooted(fragment) {
		b.AppendByte(separator)
	} else if err := seed(b, base); err != nil {
		return "", err
	}

	f := fragment
	for {
		for len(f) > 0 && f[0] == separator {
			f = f[1:]
		}
		if f == "" {
			return finish(b)
		}

		switch {
		case isSegment(f, "."):
			f = f[1:]
		case isSegment(f, ".."):
			f = f[2:]
			pop(b)
		default:
			if b.Len() > 0 && b.LastByte() != separator {
				b.AppendByte(separator)
			}
			n := strings.IndexByte(f, separator)
			if n < 0 {
				n = len(f)
			}
			b.AppendString(f[:n])
			f = f[n:]
		}
	}
}

// seed copies base into b with every separator run reduced to one.
// Components are copied as is; "." and ".." in the base are not resolved.
func seed(b *Buffer, base string) error {
	for i := 0; i < len(base); {
		if base[i] == separator {
			if b.Len() == 0 || b.LastByte() != separator {
				b.AppendByte(separator)
			}
			i++
			continue
		}
		n := strings.IndexByte(base[i:], separator)
		if n < 0 {
			n = len(base) - i
		}
		if err := b.AppendRun([]byte(base[i:i+n]), n); err != nil {
			return err
		}
		i += n
	}
	return nil
}

// isSegment reports whether f starts with the whole segment seg.
func isSegment(f, seg string) bool {
	if !strings.HasPrefix(f, seg) {
		return false
	}
	return len(f) == len(seg) || f[len(seg)] == separator
}

// pop drops trailing separators and then the last component. A rooted
// buffer keeps its leading separator.
func pop(b *Buffer) {
	floor := 0
	if b.Len() > 0 && b.ByteAt(0) == separator {
		floor = 1
	}
	n := b.Len()
	for n > floor && b.ByteAt(n-1) == separator {
		n--
	}
	for n > floor && b.ByteAt(n-1) != separator {
		n--
	}
	b.Truncate(n)
}

// finish collapses the trailing separator run and finalizes the buffer.
// An empty relative buffer becomes ".".
func finish(b *Buffer) (string, error) {
	if b.Len() == 0 && b.Err() == nil {
		b.AppendByte('.')
		return b.Finalize()
	}
	b.AppendByte(separator)
	for b.Len() > 1 && b.LastByte() == separator {
		b.Truncate(b.Len() - 1)
	}
	return b.Finalize()
}
