package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/kpauljoseph/lumen/internal/settings"
	"github.com/kpauljoseph/lumen/internal/storage"
	"github.com/kpauljoseph/lumen/pkg/logger"
	"github.com/kpauljoseph/lumen/pkg/models"
)

// Ledger keeps the lifetime counters in flat settings. Record is meant to
// run inside the same transaction as the catalog insert.
type Ledger struct {
	settings *settings.Store
	logger   *logger.Logger
}

func New(store *settings.Store, log *logger.Logger) *Ledger {
	return &Ledger{settings: store, logger: log}
}

// Record counts one created document with the given number of pages. A
// scanID that was already recorded leaves every counter alone and returns
// recorded == false.
func (l *Ledger) Record(ctx context.Context, q storage.DBTX, scanID string, pages int, now time.Time) (models.Stats, bool, error) {
	if pages < 0 {
		return models.Stats{}, false, fmt.Errorf("negative page count %d", pages)
	}

	res, err := q.ExecContext(ctx,
		"INSERT OR IGNORE INTO ledger_entries (scan_id, pages, recorded_at) VALUES (?, ?, ?)",
		scanID, pages, now.UnixMilli(),
	)
	if err != nil {
		return models.Stats{}, false, fmt.Errorf("insert ledger entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Stats{}, false, fmt.Errorf("ledger entry rows: %w", err)
	}
	if affected == 0 {
		l.logger.Debug("Scan %s already recorded, ledger unchanged", scanID)
		stats, err := l.Stats(ctx, q)
		return stats, false, err
	}

	current, err := l.Stats(ctx, q)
	if err != nil {
		return models.Stats{}, false, err
	}

	totalPages := current.LifetimePages + int64(pages)
	totalDocs := current.LifetimeDocuments + 1

	if err := l.settings.SetInt64(ctx, q, settings.KeyLifetimePages, totalPages); err != nil {
		return models.Stats{}, false, err
	}
	if err := l.settings.SetInt64(ctx, q, settings.KeyLifetimeDocs, totalDocs); err != nil {
		return models.Stats{}, false, err
	}

	firstScan := current.FirstScan
	if firstScan.IsZero() {
		firstScan = time.UnixMilli(now.UnixMilli())
		if err := l.settings.SetInt64(ctx, q, settings.KeyFirstScanTime, firstScan.UnixMilli()); err != nil {
			return models.Stats{}, false, err
		}
	}

	l.logger.Trace("Ledger now %d pages over %d documents", totalPages, totalDocs)

	return models.Stats{
		LifetimePages:     totalPages,
		LifetimeDocuments: totalDocs,
		FirstScan:         firstScan,
		AveragePages:      models.AveragePages(totalPages, totalDocs),
	}, true, nil
}

// Recorded reports whether scanID has already been counted.
func (l *Ledger) Recorded(ctx context.Context, q storage.DBTX, scanID string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM ledger_entries WHERE scan_id = ?", scanID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("look up ledger entry: %w", err)
	}
	return n > 0, nil
}

func (l *Ledger) Stats(ctx context.Context, q storage.DBTX) (models.Stats, error) {
	pages, err := l.settings.Int64(ctx, q, settings.KeyLifetimePages, 0)
	if err != nil {
		return models.Stats{}, err
	}
	docs, err := l.settings.Int64(ctx, q, settings.KeyLifetimeDocs, 0)
	if err != nil {
		return models.Stats{}, err
	}
	first, err := l.settings.Int64(ctx, q, settings.KeyFirstScanTime, 0)
	if err != nil {
		return models.Stats{}, err
	}

	stats := models.Stats{
		LifetimePages:     pages,
		LifetimeDocuments: docs,
		AveragePages:      models.AveragePages(pages, docs),
	}
	if first != 0 {
		stats.FirstScan = time.UnixMilli(first)
	}
	return stats, nil
}
