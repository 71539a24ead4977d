package catalog_test

import (
	"context"
	"database/sql"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lumen/internal/catalog"
	"github.com/kpauljoseph/lumen/internal/storage"
	"github.com/kpauljoseph/lumen/pkg/models"
)

var _ = Describe("Catalog", func() {
	var (
		ctx context.Context
		db  *sql.DB
		cat *catalog.Catalog
		t0  time.Time
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = storage.Open(":memory:")
		Expect(err).NotTo(HaveOccurred())
		cat = catalog.New(db)
		t0 = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		db.Close()
	})

	insert := func(name string, size int64, pages int, at time.Time) *models.Document {
		doc := &models.Document{
			Name:      name,
			Location:  "file:///tmp/" + name,
			SizeBytes: size,
			PageCount: pages,
			CreatedAt: at,
		}
		Expect(cat.Insert(ctx, db, doc)).To(Succeed())
		return doc
	}

	It("should assign sequential ids and read records back", func() {
		a := insert("Scan_1.pdf", 100, 2, t0)
		b := insert("Scan_2.pdf", 200, 3, t0.Add(time.Minute))
		Expect(b.ID).To(Equal(a.ID + 1))

		got, err := cat.Get(ctx, a.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Name).To(Equal("Scan_1.pdf"))
		Expect(got.Location).To(Equal("file:///tmp/Scan_1.pdf"))
		Expect(got.SizeBytes).To(Equal(int64(100)))
		Expect(got.PageCount).To(Equal(2))
		Expect(got.CreatedAt.Equal(t0)).To(BeTrue())
	})

	It("should list newest first", func() {
		insert("old.pdf", 1, 1, t0)
		insert("new.pdf", 1, 1, t0.Add(time.Hour))
		insert("middle.pdf", 1, 1, t0.Add(time.Minute))

		docs, err := cat.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		names := []string{}
		for _, d := range docs {
			names = append(names, d.Name)
		}
		Expect(names).To(Equal([]string{"new.pdf", "middle.pdf", "old.pdf"}))
	})

	It("should rename and append the extension", func() {
		doc := insert("Scan_1.pdf", 1, 1, t0)

		renamed, err := cat.Rename(ctx, doc.ID, " Receipts ")
		Expect(err).NotTo(HaveOccurred())
		Expect(renamed.Name).To(Equal("Receipts.pdf"))
		Expect(renamed.Location).To(Equal(doc.Location))
	})

	DescribeTable("should refuse an empty name",
		func(name string) {
			doc := insert("Scan_1.pdf", 1, 1, t0)
			_, err := cat.Rename(ctx, doc.ID, name)
			Expect(err).To(HaveOccurred())

			stored, err := cat.Get(ctx, doc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("Scan_1.pdf"))
		},
		Entry("blank", "   "),
		Entry("bare extension", ".pdf"),
		Entry("upper case extension", " .PDF "),
	)

	It("should find a document by its scan id", func() {
		doc := &models.Document{Name: "Scan_9.pdf", Location: "file:///tmp/Scan_9.pdf", CreatedAt: t0, ScanID: "scan-9"}
		Expect(cat.Insert(ctx, db, doc)).To(Succeed())
		insert("Scan_10.pdf", 1, 1, t0)

		found, err := cat.GetByScan(ctx, db, "scan-9")
		Expect(err).NotTo(HaveOccurred())
		Expect(found.ID).To(Equal(doc.ID))
		Expect(found.ScanID).To(Equal("scan-9"))

		_, err = cat.GetByScan(ctx, db, "missing")
		Expect(err).To(MatchError(catalog.ErrDocumentNotFound))

		dup := &models.Document{Name: "Scan_11.pdf", Location: "file:///tmp/Scan_11.pdf", CreatedAt: t0, ScanID: "scan-9"}
		Expect(cat.Insert(ctx, db, dup)).NotTo(Succeed())
	})

	It("should delete records and report unknown ids", func() {
		doc := insert("Scan_1.pdf", 1, 1, t0)
		Expect(cat.Delete(ctx, doc.ID)).To(Succeed())

		_, err := cat.Get(ctx, doc.ID)
		Expect(err).To(MatchError(catalog.ErrDocumentNotFound))
		Expect(cat.Delete(ctx, doc.ID)).To(MatchError(catalog.ErrDocumentNotFound))
		_, err = cat.Rename(ctx, 999, "x")
		Expect(err).To(MatchError(catalog.ErrDocumentNotFound))
	})

	It("should summarize storage occupied", func() {
		s, err := cat.Summary(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(models.CatalogSummary{}))

		insert("a.pdf", 1500, 2, t0)
		insert("b.pdf", 500, 1, t0)

		s, err = cat.Summary(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Documents).To(Equal(int64(2)))
		Expect(s.TotalBytes).To(Equal(int64(2000)))
	})

	DescribeTable("NormalizeName",
		func(input, expected string) {
			Expect(catalog.NormalizeName(input)).To(Equal(expected))
		},
		Entry("adds extension", "Taxes", "Taxes.pdf"),
		Entry("keeps extension", "Taxes.pdf", "Taxes.pdf"),
		Entry("keeps upper case extension", "Taxes.PDF", "Taxes.PDF"),
	)
})
