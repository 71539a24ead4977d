package pdf

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

// Thumbnail renders a 1-based page of the PDF at path. A positive maxWidth
// scales the rendering down to that width.
func Thumbnail(path string, page int, maxWidth int) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	//Page numbers are zero indexed in the fitz package.
	index := page - 1
	if index < 0 || index >= doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d)", page, doc.NumPage())
	}

	img, err := doc.Image(index)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page, err)
	}

	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img, nil
	}

	h := max(b.Dy()*maxWidth/b.Dx(), 1)
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

func WriteThumbnail(pdfPath string, page int, maxWidth int, outPath string) error {
	img, err := Thumbnail(pdfPath, page, maxWidth)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return nil
}
