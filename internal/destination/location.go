package destination

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// LocationFor turns a filesystem path into the file:// reference stored in
// the catalog.
func LocationFor(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// PathOf is the inverse of LocationFor. Plain paths are returned as is.
func PathOf(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid location %q: %w", location, err)
	}
	switch u.Scheme {
	case "":
		return location, nil
	case "file":
		return filepath.FromSlash(u.Path), nil
	default:
		return "", fmt.Errorf("unsupported location scheme %q", u.Scheme)
	}
}
