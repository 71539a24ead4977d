package models

import (
	"time"
)

// Document is one catalogued PDF.
type Document struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	SizeBytes int64     `json:"size_bytes"`
	PageCount int       `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
	ScanID    string    `json:"scan_id,omitempty"`
}

// GeneratedPDF is what storage placement hands back for a written PDF.
type GeneratedPDF struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Size     int64  `json:"size"`
}

// Stats are the lifetime counters. They survive document deletion.
type Stats struct {
	LifetimePages     int64     `json:"lifetime_pages"`
	LifetimeDocuments int64     `json:"lifetime_documents"`
	FirstScan         time.Time `json:"first_scan"`
	AveragePages      float64   `json:"average_pages"`
}

// AveragePages is pages/documents, or 0 with no documents.
func AveragePages(pages, documents int64) float64 {
	if documents == 0 {
		return 0
	}
	return float64(pages) / float64(documents)
}

// CatalogSummary aggregates what is currently in the catalog.
type CatalogSummary struct {
	Documents  int64 `json:"documents"`
	TotalBytes int64 `json:"total_bytes"`
}
