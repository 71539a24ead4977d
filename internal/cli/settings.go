package cli

import (
	"context"
	"fmt"

	"github.com/kpauljoseph/lumen/pkg/models"
)

type settingsJSON struct {
	Compression    models.Tier        `json:"compression_level"`
	Quality        int                `json:"jpeg_quality"`
	TargetWidth    int                `json:"target_width"`
	Destination    models.Destination `json:"destination_type"`
	DestinationDir string             `json:"destination_dir"`
	Theme          models.Theme       `json:"theme"`
}

func (c *SettingsCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	tier, err := s.preferences.Compression(ctx)
	if err != nil {
		return err
	}
	dest, err := s.preferences.Destination(ctx)
	if err != nil {
		return err
	}
	theme, err := s.preferences.Theme(ctx)
	if err != nil {
		return err
	}

	quality, width := tier.Params()
	out := settingsJSON{
		Compression:    tier,
		Quality:        quality,
		TargetWidth:    width,
		Destination:    dest,
		DestinationDir: destinationDir(s, dest),
		Theme:          theme,
	}

	if c.app.globals.JSON {
		return printJSON(c.app.out, out)
	}
	w := c.app.out
	fmt.Fprintf(w, "Compression:  %s (quality %d, width %d)\n", out.Compression, out.Quality, out.TargetWidth)
	fmt.Fprintf(w, "Destination:  %s (%s)\n", out.Destination, out.DestinationDir)
	fmt.Fprintf(w, "Theme:        %s\n", out.Theme)
	return nil
}

func destinationDir(s *session, dest models.Destination) string {
	switch dest {
	case models.DestinationDownloads:
		return s.cfg.DownloadsDir
	case models.DestinationDocuments:
		return s.cfg.DocumentsDir
	default:
		return s.cfg.SandboxDir
	}
}

func (c *SetCompressionCommand) Execute(args []string) error {
	tier, err := parseChoice("compression level", c.Args.Value, models.Tiers())
	if err != nil {
		return err
	}

	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.preferences.SetCompression(context.Background(), tier); err != nil {
		return err
	}
	quality, width := tier.Params()
	fmt.Fprintf(c.app.out, "Compression set to %s (quality %d, width %d)\n", tier, quality, width)
	return nil
}

func (c *SetDestinationCommand) Execute(args []string) error {
	dest, err := parseChoice("destination", c.Args.Value, models.Destinations())
	if err != nil {
		return err
	}

	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.preferences.SetDestination(context.Background(), dest); err != nil {
		return err
	}
	fmt.Fprintf(c.app.out, "Destination set to %s (%s)\n", dest, destinationDir(s, dest))
	return nil
}

func (c *SetThemeCommand) Execute(args []string) error {
	theme, err := parseChoice("theme", c.Args.Value, models.Themes())
	if err != nil {
		return err
	}

	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.preferences.SetTheme(context.Background(), theme); err != nil {
		return err
	}
	fmt.Fprintf(c.app.out, "Theme set to %s\n", theme)
	return nil
}
