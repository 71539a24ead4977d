package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	// decoders for captured page formats
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kpauljoseph/lumen/pkg/logger"
	"github.com/kpauljoseph/lumen/pkg/models"
)

// CompressedPage is one page after downscaling and JPEG recompression.
type CompressedPage struct {
	Source       string
	Number       int
	SourceWidth  int
	SourceHeight int
	SampleSize   int
	Width        int
	Height       int
	JPEG         []byte
}

type Compressor struct {
	quality     int
	targetWidth int
	logger      *logger.Logger
}

func NewCompressor(tier models.Tier, logger *logger.Logger) *Compressor {
	quality, width := tier.Params()
	return &Compressor{
		quality:     quality,
		targetWidth: width,
		logger:      logger,
	}
}

// SampleSize returns the power-of-two divisor that brings width down to at
// most targetWidth.
func SampleSize(width, targetWidth int) int {
	size := 1
	if targetWidth <= 0 {
		return size
	}
	for width/size > targetWidth {
		size *= 2
	}
	return size
}

// Compress decodes the bounds first, picks the sample size, decodes and
// scales the full image, re-encodes it as JPEG and decodes that result to
// get the final page buffer.
func (c *Compressor) Compress(data []byte) (*CompressedPage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image bounds: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid image bounds %dx%d", cfg.Width, cfg.Height)
	}

	size := SampleSize(cfg.Width, c.targetWidth)
	c.logger.Trace("Decoding %s %dx%d with sample size %d", format, cfg.Width, cfg.Height, size)

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	scaled := downscale(src, size)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: c.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	final, err := jpeg.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode recompressed page: %w", err)
	}
	bounds := final.Bounds()

	return &CompressedPage{
		SourceWidth:  cfg.Width,
		SourceHeight: cfg.Height,
		SampleSize:   size,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		JPEG:         buf.Bytes(),
	}, nil
}

// downscale divides both sides by size and flattens transparency onto
// white, since JPEG has no alpha channel.
func downscale(src image.Image, size int) *image.RGBA {
	sb := src.Bounds()
	w := max(sb.Dx()/size, 1)
	h := max(sb.Dy()/size, 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if size == 1 {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
		return dst
	}

	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}
