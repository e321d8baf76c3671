package pathutil

import "os"

// WorkDir supplies the base path for Concat.
type WorkDir func() (string, error)

// OSWorkDir reads the process working directory.
func OSWorkDir() (string, error) {
	return os.Getwd()
}

// Concat starts from the directory reported by wd and joins each fragment
// in order. When wd is nil or fails, "." is used instead.
func Concat(wd WorkDir, fragments ...string) (string, error) {
	base := "."
	if wd != nil {
		if dir, err := wd(); err == nil && dir != "" {
			base = dir
		}
	}

	if len(fragments) == 0 {
		return Join(base, "")
	}

	var err error
	for _, f := range fragments {
		base, err = Join(base, f)
		if err != nil {
			return "", err
		}
	}
	return base, nil
}
