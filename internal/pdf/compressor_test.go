package pdf_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lumen/internal/pdf"
	"github.com/kpauljoseph/lumen/pkg/models"
)

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("Page Compressor", func() {
	DescribeTable("SampleSize",
		func(width, target, expected int) {
			Expect(pdf.SampleSize(width, target)).To(Equal(expected))
		},
		Entry("already small", 800, 1024, 1),
		Entry("exactly the target", 1024, 1024, 1),
		Entry("just over", 1025, 1024, 2),
		Entry("3000 for low tier", 3000, 2048, 2),
		Entry("4000 for high tier", 4000, 1024, 4),
		Entry("phone camera for medium tier", 4032, 1600, 4),
		Entry("no target", 5000, 0, 1),
	)

	DescribeTable("decoded width stays within the tier target",
		func(tier models.Tier, srcWidth, srcHeight, expectedWidth, expectedHeight int) {
			c := pdf.NewCompressor(tier, pdfTestLogger())
			page, err := c.Compress(encodePNG(createTestImage(srcWidth, srcHeight)))
			Expect(err).NotTo(HaveOccurred())

			_, target := tier.Params()
			Expect(page.Width).To(BeNumerically("<=", target))
			Expect(page.Width).To(Equal(expectedWidth))
			Expect(page.Height).To(Equal(expectedHeight))
			Expect(page.SourceWidth).To(Equal(srcWidth))
		},
		Entry("high quarters a 4000px page", models.TierHigh, 4000, 1000, 1000, 250),
		Entry("low halves a 4000px page", models.TierLow, 4000, 1000, 2000, 500),
		Entry("medium keeps a small page", models.TierMedium, 600, 900, 600, 900),
	)

	It("should produce a decodable JPEG", func() {
		c := pdf.NewCompressor(models.TierMedium, pdfTestLogger())
		page, err := c.Compress(encodePNG(createTestImage(320, 200)))
		Expect(err).NotTo(HaveOccurred())

		cfg, format, err := image.DecodeConfig(bytes.NewReader(page.JPEG))
		Expect(err).NotTo(HaveOccurred())
		Expect(format).To(Equal("jpeg"))
		Expect(cfg.Width).To(Equal(320))
		Expect(cfg.Height).To(Equal(200))
	})

	It("should shrink output as the tier quality drops", func() {
		src := encodePNG(createTestImage(1000, 1400))

		low, err := pdf.NewCompressor(models.TierLow, pdfTestLogger()).Compress(src)
		Expect(err).NotTo(HaveOccurred())
		high, err := pdf.NewCompressor(models.TierHigh, pdfTestLogger()).Compress(src)
		Expect(err).NotTo(HaveOccurred())

		Expect(len(high.JPEG)).To(BeNumerically("<=", len(low.JPEG)))
	})

	It("should flatten transparency onto white", func() {
		img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
		c := pdf.NewCompressor(models.TierMedium, pdfTestLogger())
		page, err := c.Compress(encodePNG(img))
		Expect(err).NotTo(HaveOccurred())

		decoded, err := jpeg.Decode(bytes.NewReader(page.JPEG))
		Expect(err).NotTo(HaveOccurred())
		r, g, b, _ := decoded.At(8, 8).RGBA()
		white := color.White
		wr, wg, wb, _ := white.RGBA()
		Expect(r).To(BeNumerically("~", wr, 0x0400))
		Expect(g).To(BeNumerically("~", wg, 0x0400))
		Expect(b).To(BeNumerically("~", wb, 0x0400))
	})

	It("should reject data that is not an image", func() {
		c := pdf.NewCompressor(models.TierMedium, pdfTestLogger())
		_, err := c.Compress([]byte("definitely not pixels"))
		Expect(err).To(HaveOccurred())
	})
})
