package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kpauljoseph/lumen/internal/storage"
	"github.com/kpauljoseph/lumen/pkg/models"
)

var ErrDocumentNotFound = errors.New("document not found")

const pdfExt = ".pdf"

// Catalog is the local record store of created documents.
type Catalog struct {
	db storage.DBTX
}

func New(db storage.DBTX) *Catalog {
	return &Catalog{db: db}
}

// Insert stores doc through q and fills in its ID. A zero CreatedAt is set
// to the current time.
func (c *Catalog) Insert(ctx context.Context, q storage.DBTX, doc *models.Document) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	res, err := q.ExecContext(ctx,
		`INSERT INTO documents (name, location, size_bytes, page_count, created_at, scan_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		doc.Name, doc.Location, doc.SizeBytes, doc.PageCount, doc.CreatedAt.UnixMilli(),
		sql.NullString{String: doc.ScanID, Valid: doc.ScanID != ""},
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("document id: %w", err)
	}
	doc.ID = id
	return nil
}

func (c *Catalog) Get(ctx context.Context, id int64) (*models.Document, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, name, location, size_bytes, page_count, created_at, scan_id
		 FROM documents WHERE id = ?`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrDocumentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return doc, nil
}

// GetByScan returns the document created by scanID.
func (c *Catalog) GetByScan(ctx context.Context, q storage.DBTX, scanID string) (*models.Document, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, name, location, size_bytes, page_count, created_at, scan_id
		 FROM documents WHERE scan_id = ?`, scanID)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scan %s", ErrDocumentNotFound, scanID)
	}
	if err != nil {
		return nil, fmt.Errorf("get document for scan %s: %w", scanID, err)
	}
	return doc, nil
}

// List returns every document, newest first.
func (c *Catalog) List(ctx context.Context) ([]models.Document, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, location, size_bytes, page_count, created_at, scan_id
		 FROM documents ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// Rename changes the display name only; the file on disk keeps its name.
func (c *Catalog) Rename(ctx context.Context, id int64, name string) (*models.Document, error) {
	name = NormalizeName(name)
	if strings.EqualFold(name, pdfExt) {
		return nil, fmt.Errorf("rename document %d: empty name", id)
	}

	res, err := c.db.ExecContext(ctx, "UPDATE documents SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return nil, fmt.Errorf("rename document %d: %w", id, err)
	}
	if err := requireRow(res, id); err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

// Delete removes the record. Lifetime stats are kept elsewhere and are not
// affected.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	res, err := c.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	return requireRow(res, id)
}

func (c *Catalog) Summary(ctx context.Context) (models.CatalogSummary, error) {
	var s models.CatalogSummary
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(size_bytes), 0) FROM documents",
	).Scan(&s.Documents, &s.TotalBytes)
	if err != nil {
		return models.CatalogSummary{}, fmt.Errorf("summarize documents: %w", err)
	}
	return s, nil
}

// NormalizeName trims the name and makes sure it ends in .pdf.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if !strings.HasSuffix(strings.ToLower(name), pdfExt) {
		name += pdfExt
	}
	return name
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(r rowScanner) (*models.Document, error) {
	var (
		doc     models.Document
		created int64
		scanID  sql.NullString
	)
	if err := r.Scan(&doc.ID, &doc.Name, &doc.Location, &doc.SizeBytes, &doc.PageCount, &created, &scanID); err != nil {
		return nil, err
	}
	doc.CreatedAt = time.UnixMilli(created)
	doc.ScanID = scanID.String
	return &doc, nil
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrDocumentNotFound, id)
	}
	return nil
}
