package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/kpauljoseph/lumen/internal/ledger"
	"github.com/kpauljoseph/lumen/internal/settings"
	"github.com/kpauljoseph/lumen/pkg/models"
	"github.com/kpauljoseph/lumen/pkg/utils"
)

type statsJSON struct {
	models.Stats
	Journey      string `json:"journey"`
	Documents    int64  `json:"catalog_documents"`
	StorageBytes int64  `json:"storage_bytes"`
}

type profileJSON struct {
	settings.Profile
	Theme models.Theme `json:"theme"`
	Stats statsJSON    `json:"stats"`
}

func (c *OnboardCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.preferences.CompleteOnboarding(ctx, c.Name, c.Occupation); err != nil {
		return err
	}
	profile, err := s.preferences.Profile(ctx)
	if err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(c.app.out, profile)
	}
	fmt.Fprintf(c.app.out, "Welcome, %s!\n", profile.Name)
	return nil
}

func loadStats(ctx context.Context, s *session) (statsJSON, error) {
	stats, err := s.ledger.Stats(ctx, s.db)
	if err != nil {
		return statsJSON{}, err
	}
	summary, err := s.catalog.Summary(ctx)
	if err != nil {
		return statsJSON{}, err
	}
	return statsJSON{
		Stats:        stats,
		Journey:      ledger.Journey(stats.FirstScan, time.Now()),
		Documents:    summary.Documents,
		StorageBytes: summary.TotalBytes,
	}, nil
}

func (c *StatsCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := loadStats(context.Background(), s)
	if err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(c.app.out, stats)
	}
	writeStats(c.app, stats)
	return nil
}

func (c *ProfileCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	profile, err := s.preferences.Profile(ctx)
	if err != nil {
		return err
	}
	theme, err := s.preferences.Theme(ctx)
	if err != nil {
		return err
	}
	stats, err := loadStats(ctx, s)
	if err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(c.app.out, profileJSON{Profile: profile, Theme: theme, Stats: stats})
	}

	w := c.app.out
	fmt.Fprintf(w, "%s\n%s\n", profile.Name, profile.Occupation)
	if !profile.OnboardingComplete {
		fmt.Fprintln(w, "Onboarding not finished. Run: lumen onboard --name NAME --occupation OCCUPATION")
	}
	fmt.Fprintf(w, "Theme:          %s\n", theme)
	writeStats(c.app, stats)
	return nil
}

func writeStats(app *App, stats statsJSON) {
	w := app.out
	fmt.Fprintf(w, "Pages scanned:  %d\n", stats.LifetimePages)
	fmt.Fprintf(w, "Documents:      %d\n", stats.LifetimeDocuments)
	fmt.Fprintf(w, "Average pages:  %s\n", utils.FormatAverage(stats.AveragePages))
	fmt.Fprintf(w, "Storage used:   %s\n", utils.FormatStorageSize(stats.StorageBytes))
	fmt.Fprintf(w, "Journey:        %s\n", stats.Journey)
}
