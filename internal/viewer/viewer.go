package viewer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/kpauljoseph/lumen/internal/destination"
	"github.com/kpauljoseph/lumen/pkg/logger"
)

var (
	ErrFileMissing = errors.New("file not found")
	ErrNoViewer    = errors.New("no PDF viewer found")
)

type Viewer struct {
	logger   *logger.Logger
	goos     string
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

type Option func(*Viewer)

// WithPlatform overrides runtime.GOOS when picking the opener.
func WithPlatform(goos string) Option {
	return func(v *Viewer) {
		v.goos = goos
	}
}

func WithLookPath(lookPath func(string) (string, error)) Option {
	return func(v *Viewer) {
		v.lookPath = lookPath
	}
}

// WithStarter replaces launching the opener process.
func WithStarter(start func(name string, args ...string) error) Option {
	return func(v *Viewer) {
		v.start = start
	}
}

func New(logger *logger.Logger, opts ...Option) *Viewer {
	v := &Viewer{
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Open hands the document at location to the platform's default viewer.
func (v *Viewer) Open(location string) error {
	path, err := existingPath(location)
	if err != nil {
		return err
	}

	name, args := v.opener(path)
	if _, err := v.lookPath(name); err != nil {
		v.logger.Debug("Opener %s not available: %v", name, err)
		return ErrNoViewer
	}

	v.logger.Debug("Opening %s with %s", path, name)
	if err := v.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

func (v *Viewer) opener(path string) (string, []string) {
	switch v.goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Export copies the document to dst. When dst is a directory the file keeps
// its name. The written path is returned.
func (v *Viewer) Export(location, dst string) (string, error) {
	src, err := existingPath(location)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("failed to export %s: %w", src, err)
	}
	v.logger.Info("Exported %s to %s", src, dst)
	return dst, nil
}

// OpenMessage is the one-line text shown when Open fails.
func OpenMessage(err error) string {
	switch {
	case errors.Is(err, ErrFileMissing):
		return "File not found! It may have been deleted."
	case errors.Is(err, ErrNoViewer):
		return "No PDF Viewer app found!"
	default:
		return "Error: " + err.Error()
	}
}

// ExportMessage is the one-line text shown when Export fails.
func ExportMessage(err error) string {
	if errors.Is(err, ErrFileMissing) {
		return "File not found"
	}
	return "Error sharing file"
}

func existingPath(location string) (string, error) {
	path, err := destination.PathOf(location)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileMissing, path)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrFileMissing, path)
	}
	return path, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
