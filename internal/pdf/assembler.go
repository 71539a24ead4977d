package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/lumen/pkg/logger"
	"github.com/kpauljoseph/lumen/pkg/models"
)

var ErrNoPages = errors.New("no pages to assemble")

// SkippedPage is an input that could not be read or decoded.
type SkippedPage struct {
	Source   string
	Position int
	Err      error
}

// Document is an assembled PDF held in memory, not yet persisted.
type Document struct {
	Data    []byte
	Pages   []CompressedPage
	Skipped []SkippedPage
}

func (d *Document) PageCount() int {
	return len(d.Pages)
}

type Assembler struct {
	logger *logger.Logger
}

func NewAssembler(logger *logger.Logger) *Assembler {
	api.DisableConfigDir()
	return &Assembler{logger: logger}
}

// Assemble compresses every page in order and writes one PDF page per
// decodable image, each page sized to its image. Undecodable pages are
// skipped; if none remain the result is ErrNoPages.
func (a *Assembler) Assemble(pagePaths []string, tier models.Tier) (*Document, error) {
	if len(pagePaths) == 0 {
		return nil, ErrNoPages
	}

	quality, width := tier.Params()
	a.logger.Debug("Assembling %d pages at %s (quality %d, width %d)", len(pagePaths), tier, quality, width)

	compressor := NewCompressor(tier, a.logger)
	doc := &Document{}

	for i, path := range pagePaths {
		position := i + 1

		data, err := os.ReadFile(path)
		if err != nil {
			a.skip(doc, path, position, fmt.Errorf("failed to read page: %w", err))
			continue
		}

		page, err := compressor.Compress(data)
		if err != nil {
			a.skip(doc, path, position, err)
			continue
		}

		page.Source = path
		page.Number = len(doc.Pages) + 1
		doc.Pages = append(doc.Pages, *page)

		a.logger.Trace("Page %d: %s %dx%d -> %dx%d (%d bytes)",
			page.Number, path, page.SourceWidth, page.SourceHeight, page.Width, page.Height, len(page.JPEG))
	}

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: all %d inputs failed to decode", ErrNoPages, len(pagePaths))
	}

	data, err := writePDF(doc.Pages)
	if err != nil {
		return nil, err
	}
	doc.Data = data

	a.logger.Debug("Assembled %d pages into %d bytes", doc.PageCount(), len(doc.Data))
	return doc, nil
}

func (a *Assembler) skip(doc *Document, path string, position int, err error) {
	a.logger.Warn("Skipping page %d (%s): %v", position, path, err)
	doc.Skipped = append(doc.Skipped, SkippedPage{Source: path, Position: position, Err: err})
}

func writePDF(pages []CompressedPage) ([]byte, error) {
	readers := make([]io.Reader, len(pages))
	for i := range pages {
		readers[i] = bytes.NewReader(pages[i].JPEG)
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.Pos = types.Full

	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, readers, imp, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to assemble PDF: %w", err)
	}
	return buf.Bytes(), nil
}
