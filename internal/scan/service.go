package scan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kpauljoseph/lumen/internal/catalog"
	"github.com/kpauljoseph/lumen/internal/ledger"
	"github.com/kpauljoseph/lumen/internal/pdf"
	"github.com/kpauljoseph/lumen/internal/settings"
	"github.com/kpauljoseph/lumen/internal/storage"
	"github.com/kpauljoseph/lumen/pkg/logger"
	"github.com/kpauljoseph/lumen/pkg/models"
)

// ErrAlreadyRecorded means the scan ID was counted before. Nothing is
// written for it a second time.
var ErrAlreadyRecorded = errors.New("scan already recorded")

// Placer persists assembled PDF bytes and reports where they went.
type Placer interface {
	Place(data []byte, dest models.Destination, now time.Time) (*models.GeneratedPDF, error)
}

type Result struct {
	Document models.Document   `json:"document"`
	Stats    models.Stats      `json:"stats"`
	Skipped  []pdf.SkippedPage `json:"-"`
}

type Service struct {
	db          *sql.DB
	assembler   pdf.DocumentAssembler
	placer      Placer
	catalog     *catalog.Catalog
	ledger      *ledger.Ledger
	preferences *settings.Preferences
	logger      *logger.Logger
	now         func() time.Time
	newID       func() string
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the random scan ID source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

func NewService(
	db *sql.DB,
	assembler pdf.DocumentAssembler,
	placer Placer,
	catalog *catalog.Catalog,
	ledger *ledger.Ledger,
	preferences *settings.Preferences,
	logger *logger.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		db:          db,
		assembler:   assembler,
		placer:      placer,
		catalog:     catalog,
		ledger:      ledger,
		preferences: preferences,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan turns one capture session into a catalogued PDF. Nothing is
// recorded unless the PDF was assembled and placed.
func (s *Service) Scan(ctx context.Context, pages []string) (*Result, error) {
	if len(pages) == 0 {
		return nil, pdf.ErrNoPages
	}

	tier, err := s.preferences.Compression(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read compression level: %w", err)
	}
	dest, err := s.preferences.Destination(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read destination: %w", err)
	}

	scanID := s.newID()
	seen, err := s.ledger.Recorded(ctx, s.db, scanID)
	if err != nil {
		return nil, err
	}
	if seen {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRecorded, scanID)
	}
	s.logger.Info("Starting scan %s: %d pages, %s quality, destination %s", scanID, len(pages), tier, dest)

	doc, err := s.assembler.Assemble(pages, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble PDF: %w", err)
	}
	for _, skipped := range doc.Skipped {
		s.logger.Warn("Page %d (%s) was skipped: %v", skipped.Position, skipped.Source, skipped.Err)
	}

	now := s.now()
	placed, err := s.placer.Place(doc.Data, dest, now)
	if err != nil {
		return nil, fmt.Errorf("failed to save PDF: %w", err)
	}

	record := models.Document{
		Name:      placed.Name,
		Location:  placed.Location,
		SizeBytes: placed.Size,
		PageCount: doc.PageCount(),
		CreatedAt: now,
		ScanID:    scanID,
	}

	var stats models.Stats
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var recorded bool
		stats, recorded, err = s.ledger.Record(ctx, tx, scanID, record.PageCount, now)
		if err != nil {
			return err
		}
		if !recorded {
			return fmt.Errorf("%w: %s", ErrAlreadyRecorded, scanID)
		}
		return s.catalog.Insert(ctx, tx, &record)
	})
	if err != nil {
		s.logger.Error("Saved %s but could not record it: %v", placed.Location, err)
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	s.logger.Info("Scan %s saved as %s (document %d)", scanID, record.Name, record.ID)
	return &Result{
		Document: record,
		Stats:    stats,
		Skipped:  doc.Skipped,
	}, nil
}
