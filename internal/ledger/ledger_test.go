package ledger_test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lumen/internal/ledger"
	"github.com/kpauljoseph/lumen/internal/settings"
	"github.com/kpauljoseph/lumen/internal/storage"
	"github.com/kpauljoseph/lumen/pkg/logger"
	"github.com/kpauljoseph/lumen/pkg/models"
)

func ledgerTestLogger() *logger.Logger {
	return logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[ledger-test] "),
		logger.WithFlags(0),
		logger.WithLevel(logger.LevelTrace),
	)
}

var _ = Describe("Ledger", func() {
	var (
		ctx  context.Context
		db   *sql.DB
		ldgr *ledger.Ledger
		t0   time.Time
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = storage.Open(":memory:")
		Expect(err).NotTo(HaveOccurred())
		ldgr = ledger.New(settings.NewStore(), ledgerTestLogger())
		t0 = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	})

	AfterEach(func() {
		db.Close()
	})

	It("should start empty with a zero average", func() {
		stats, err := ldgr.Stats(ctx, db)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats).To(Equal(models.Stats{}))
	})

	It("should accumulate 2, 5 and 3 pages into 10 over 3 documents", func() {
		for i, pages := range []int{2, 5, 3} {
			_, recorded, err := ldgr.Record(ctx, db, fmt.Sprintf("scan-%d", i), pages, t0.Add(time.Duration(i)*time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(recorded).To(BeTrue())
		}

		stats, err := ldgr.Stats(ctx, db)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.LifetimePages).To(Equal(int64(10)))
		Expect(stats.LifetimeDocuments).To(Equal(int64(3)))
		Expect(fmt.Sprintf("%.2f", stats.AveragePages)).To(Equal("3.33"))
	})

	It("should stamp the first scan time once", func() {
		first, _, err := ldgr.Record(ctx, db, "a", 1, t0)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.FirstScan.Equal(t0)).To(BeTrue())

		for i := 1; i <= 5; i++ {
			stats, _, err := ldgr.Record(ctx, db, fmt.Sprintf("later-%d", i), 2, t0.Add(time.Duration(i)*48*time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.FirstScan.Equal(t0)).To(BeTrue())
		}
	})

	It("should never decrease the counters", func() {
		var prev models.Stats
		for i, pages := range []int{4, 0, 1, 7} {
			stats, _, err := ldgr.Record(ctx, db, fmt.Sprintf("scan-%d", i), pages, t0)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.LifetimePages).To(BeNumerically(">=", prev.LifetimePages))
			Expect(stats.LifetimeDocuments).To(BeNumerically(">", prev.LifetimeDocuments))
			prev = stats
		}
	})

	It("should ignore a repeated scan id", func() {
		seen, err := ldgr.Recorded(ctx, db, "same")
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(BeFalse())

		_, recorded, err := ldgr.Record(ctx, db, "same", 3, t0)
		Expect(err).NotTo(HaveOccurred())
		Expect(recorded).To(BeTrue())

		seen, err = ldgr.Recorded(ctx, db, "same")
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(BeTrue())

		stats, recorded, err := ldgr.Record(ctx, db, "same", 3, t0.Add(time.Hour))
		Expect(err).NotTo(HaveOccurred())
		Expect(recorded).To(BeFalse())
		Expect(stats.LifetimePages).To(Equal(int64(3)))
		Expect(stats.LifetimeDocuments).To(Equal(int64(1)))
	})

	It("should leave nothing behind when the transaction rolls back", func() {
		tx, err := db.BeginTx(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		_, _, err = ldgr.Record(ctx, tx, "rolled-back", 6, t0)
		Expect(err).NotTo(HaveOccurred())
		Expect(tx.Rollback()).To(Succeed())

		stats, err := ldgr.Stats(ctx, db)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.LifetimeDocuments).To(BeZero())

		_, recorded, err := ldgr.Record(ctx, db, "rolled-back", 6, t0)
		Expect(err).NotTo(HaveOccurred())
		Expect(recorded).To(BeTrue())
	})

	It("should reject negative page counts", func() {
		_, _, err := ldgr.Record(ctx, db, "bad", -1, t0)
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("Journey",
		func(offset time.Duration, zero bool, expected string) {
			first := t0
			if zero {
				first = time.Time{}
			}
			Expect(ledger.Journey(first, t0.Add(offset))).To(Equal(expected))
		},
		Entry("never scanned", time.Duration(0), true, "Not started yet"),
		Entry("same day", 5*time.Hour, false, "Today!"),
		Entry("a few days", 3*24*time.Hour, false, "3 days ago"),
		Entry("months", 65*24*time.Hour, false, "2 months ago"),
	)
})
