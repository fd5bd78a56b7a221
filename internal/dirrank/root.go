package dirrank

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ResolveRoot maps a user supplied root specifier to an absolute path for goos.
//
// On windows a bare drive letter ("c", "C:", "C:\") becomes "C:\".
// Elsewhere "~" expands to the home directory, paths starting with "." are
// resolved against the working directory and bare names such as "home" are
// treated as mount names below "/". Absolute paths are only cleaned.
func ResolveRoot(spec, goos string) (string, error) {
	spec = strings.TrimSpace(spec)
	spec = strings.Trim(spec, "'\"") // Strip quotes from pasted paths

	if spec == "" {
		return "", ErrEmptyRoot
	}

	if goos == "windows" {
		if letter, ok := driveLetter(spec); ok {
			return strings.ToUpper(letter) + `:\`, nil
		}

		return filepath.Clean(spec), nil
	}

	switch {
	case spec == "~" || strings.HasPrefix(spec, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		return filepath.Join(home, strings.TrimPrefix(spec, "~")), nil
	case strings.HasPrefix(spec, "/"):
		return path.Clean(spec), nil
	case strings.HasPrefix(spec, "."):
		return filepath.Abs(spec)
	default:
		return path.Clean("/" + spec), nil
	}
}

// driveLetter reports whether spec names a bare drive, returning its letter.
func driveLetter(spec string) (string, bool) {
	spec = strings.TrimRight(spec, `\/`)
	spec = strings.TrimSuffix(spec, ":")

	if len(spec) != 1 {
		return "", false
	}

	c := spec[0]
	if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
		return "", false
	}

	return spec, true
}
