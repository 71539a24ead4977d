package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/lumen/pkg/logger"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// DirectoryScanner stands in for the capture library's page list: it turns
// files and directories into an ordered list of page image paths.
type DirectoryScanner struct {
	logger    *logger.Logger
	recursive bool
}

type Option func(*DirectoryScanner)

func WithRecursive(recursive bool) Option {
	return func(s *DirectoryScanner) {
		s.recursive = recursive
	}
}

func New(logger *logger.Logger, opts ...Option) *DirectoryScanner {
	s := &DirectoryScanner{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func IsPageImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindPages returns the page images under dir in natural name order, so
// page2.jpg comes before page10.jpg.
func (s *DirectoryScanner) FindPages(ctx context.Context, dir string) ([]string, error) {
	var pages []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if d.IsDir() {
			if path != dir && !s.recursive {
				return filepath.SkipDir
			}
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if !IsPageImage(path) {
			s.logger.Trace("Ignoring non-image file: %s", path)
			return nil
		}

		pages = append(pages, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no page images found in %s", dir)
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return naturalLess(pages[i], pages[j])
	})

	s.logger.Debug("Found %d page images in %s", len(pages), dir)
	return pages, nil
}

// Resolve expands directories in args and keeps explicit files in the
// order given.
func (s *DirectoryScanner) Resolve(ctx context.Context, args []string) ([]string, error) {
	var pages []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if info.IsDir() {
			found, err := s.FindPages(ctx, arg)
			if err != nil {
				return nil, err
			}
			pages = append(pages, found...)
			continue
		}
		pages = append(pages, arg)
	}
	return pages, nil
}

// naturalLess compares strings treating runs of digits as numbers.
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, cb := a[0], b[0]
		if isDigit(ca) && isDigit(cb) {
			na, ra := leadingDigits(a)
			nb, rb := leadingDigits(b)
			ta, tb := strings.TrimLeft(na, "0"), strings.TrimLeft(nb, "0")
			if len(ta) != len(tb) {
				return len(ta) < len(tb)
			}
			if ta != tb {
				return ta < tb
			}
			a, b = ra, rb
			continue
		}
		if ca != cb {
			return ca < cb
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func leadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
