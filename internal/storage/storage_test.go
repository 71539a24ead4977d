package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lumen/internal/storage"
)

var _ = Describe("Storage", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("should create the schema in a new file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "nested", "lumen.db")
		db, err := storage.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		Expect(path).To(BeAnExistingFile())
		for _, table := range []string{"documents", "settings", "ledger_entries"} {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
			Expect(err).NotTo(HaveOccurred(), "missing table %s", table)
		}
	})

	It("should reject two documents from the same scan", func() {
		db, err := storage.Open(":memory:")
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		insert := func(scanID interface{}) error {
			_, err := db.Exec(
				`INSERT INTO documents (name, location, created_at, scan_id) VALUES ('a.pdf', 'file:///a.pdf', 1, ?)`,
				scanID)
			return err
		}
		Expect(insert("scan-1")).To(Succeed())
		Expect(insert("scan-1")).NotTo(Succeed())
		Expect(insert(nil)).To(Succeed())
		Expect(insert(nil)).To(Succeed())
	})

	It("should not re-apply migrations", func() {
		path := filepath.Join(GinkgoT().TempDir(), "lumen.db")
		db, err := storage.Open(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Close()).To(Succeed())

		db, err = storage.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		versions, err := storage.NewMigrationRunner(db).Applied()
		Expect(err).NotTo(HaveOccurred())
		Expect(versions).To(Equal([]int{1, 2}))
	})

	Context("WithTx", func() {
		var db *sql.DB

		BeforeEach(func() {
			var err error
			db, err = storage.Open(":memory:")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			db.Close()
		})

		countSettings := func() int {
			var n int
			Expect(db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&n)).To(Succeed())
			return n
		}

		It("should commit when fn succeeds", func() {
			err := storage.WithTx(ctx, db, func(tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES ('a', '1')")
				return err
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(countSettings()).To(Equal(1))
		})

		It("should roll back when fn fails", func() {
			boom := errors.New("boom")
			err := storage.WithTx(ctx, db, func(tx *sql.Tx) error {
				if _, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES ('a', '1')"); err != nil {
					return err
				}
				return boom
			})
			Expect(err).To(MatchError(boom))
			Expect(countSettings()).To(Equal(0))
		})
	})
})
