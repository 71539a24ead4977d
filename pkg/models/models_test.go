package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lumen/pkg/models"
)

var _ = Describe("Models", func() {
	Context("Tier", func() {
		DescribeTable("Params",
			func(tier models.Tier, quality, width int) {
				q, w := tier.Params()
				Expect(q).To(Equal(quality))
				Expect(w).To(Equal(width))
			},
			Entry("high", models.TierHigh, 50, 1024),
			Entry("medium", models.TierMedium, 70, 1600),
			Entry("low", models.TierLow, 80, 2048),
			Entry("unknown behaves as medium", models.Tier("Ultra"), 70, 1600),
		)

		It("should never give High a larger target than Low", func() {
			_, high := models.TierHigh.Params()
			_, low := models.TierLow.Params()
			Expect(high).To(BeNumerically("<=", low))
		})

		DescribeTable("ParseTier",
			func(input string, expected models.Tier) {
				Expect(models.ParseTier(input)).To(Equal(expected))
			},
			Entry("exact", "High", models.TierHigh),
			Entry("lower case", "low", models.TierLow),
			Entry("padded", "  medium ", models.TierMedium),
			Entry("unknown", "best", models.TierMedium),
		)
	})

	Context("Destination", func() {
		DescribeTable("ParseDestination",
			func(input string, expected models.Destination, public bool) {
				d := models.ParseDestination(input)
				Expect(d).To(Equal(expected))
				Expect(d.IsPublic()).To(Equal(public))
			},
			Entry("downloads", "Downloads", models.DestinationDownloads, true),
			Entry("documents", "documents", models.DestinationDocuments, true),
			Entry("custom", "Custom", models.DestinationCustom, false),
			Entry("unknown falls back to sandbox", "/mnt/usb", models.DestinationCustom, false),
		)
	})

	Context("Theme", func() {
		It("should fall back to Autumn", func() {
			Expect(models.ParseTheme("Winter")).To(Equal(models.ThemeWinter))
			Expect(models.ParseTheme("neon")).To(Equal(models.ThemeAutumn))
		})
	})

	Context("AveragePages", func() {
		It("should be zero without documents", func() {
			Expect(models.AveragePages(0, 0)).To(BeZero())
			Expect(models.AveragePages(12, 0)).To(BeZero())
		})

		It("should divide pages by documents", func() {
			Expect(models.AveragePages(10, 3)).To(BeNumerically("~", 3.333, 0.001))
		})
	})
})
