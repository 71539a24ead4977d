package destination

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kpauljoseph/lumen/pkg/logger"
	"github.com/kpauljoseph/lumen/pkg/models"
)

const maxNameAttempts = 1000

type Dirs struct {
	Downloads string
	Documents string
	Sandbox   string
}

// Placer writes finished PDFs into the directory a destination maps to.
type Placer struct {
	dirs   Dirs
	logger *logger.Logger
}

func NewPlacer(dirs Dirs, logger *logger.Logger) *Placer {
	return &Placer{dirs: dirs, logger: logger}
}

// DisplayName is the name a scan taken at now is saved under.
func DisplayName(now time.Time) string {
	return fmt.Sprintf("Scan_%d.pdf", now.UnixMilli())
}

// Dir returns the directory files for dest are written to. Anything that is
// not a public destination goes to the sandbox.
func (p *Placer) Dir(dest models.Destination) string {
	switch dest {
	case models.DestinationDownloads:
		return p.dirs.Downloads
	case models.DestinationDocuments:
		return p.dirs.Documents
	default:
		return p.dirs.Sandbox
	}
}

func (p *Placer) Place(data []byte, dest models.Destination, now time.Time) (*models.GeneratedPDF, error) {
	dir := p.Dir(dest)
	if dir == "" {
		return nil, fmt.Errorf("no directory configured for destination %s", dest)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	f, name, err := createUnique(dir, DisplayName(now))
	if err != nil {
		return nil, err
	}
	path := f.Name()
	p.logger.Debug("Writing %d bytes to %s (%s)", len(data), path, dest)

	n, err := f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		p.logger.Warn("Incomplete file left at %s", path)
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}

	size := int64(n)
	if dest.IsPublic() {
		info, err := os.Stat(path)
		if err != nil {
			p.logger.Warn("Incomplete file left at %s", path)
			return nil, fmt.Errorf("failed to measure %s: %w", name, err)
		}
		size = info.Size()
	}

	location, err := LocationFor(path)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Saved %s (%d bytes)", path, size)
	return &models.GeneratedPDF{
		Name:     name,
		Location: location,
		Size:     size,
	}, nil
}

// createUnique opens name in dir exclusively, appending " (n)" to the stem
// until a free name is found.
func createUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; i <= maxNameAttempts; i++ {
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("failed to create %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
	}
	return nil, "", fmt.Errorf("failed to find a free name for %s in %s", name, dir)
}
