package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/kpauljoseph/lumen/internal/destination"
	"github.com/kpauljoseph/lumen/internal/pdf"
	"github.com/kpauljoseph/lumen/internal/scan"
	"github.com/kpauljoseph/lumen/internal/scanner"
	"github.com/kpauljoseph/lumen/pkg/models"
	"github.com/kpauljoseph/lumen/pkg/utils"
)

type skippedPageJSON struct {
	Position int    `json:"position"`
	Source   string `json:"source"`
	Error    string `json:"error"`
}

type scanResultJSON struct {
	Document models.Document   `json:"document"`
	Stats    models.Stats      `json:"stats"`
	Skipped  []skippedPageJSON `json:"skipped"`
}

// Execute implements the go-flags Commander interface for ScanCommand.
func (c *ScanCommand) Execute(args []string) error {
	inputs := append(append([]string(nil), c.Args.Pages...), args...)
	if len(inputs) == 0 {
		return newUserError("No pages to scan", pdf.ErrNoPages)
	}

	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()

	pages, err := scanner.New(s.log, scanner.WithRecursive(c.Recursive)).Resolve(ctx, inputs)
	if err != nil {
		return err
	}

	service := scan.NewService(
		s.db,
		pdf.NewAssembler(s.log),
		destination.NewPlacer(s.dirs(), s.log),
		s.catalog,
		s.ledger,
		s.preferences,
		s.log,
	)

	result, err := service.Scan(ctx, pages)
	if err != nil {
		s.log.Error("Scan failed: %v", err)
		if errors.Is(err, pdf.ErrNoPages) {
			return newUserError("No readable pages to scan", err)
		}
		return newUserError("Error saving document", err)
	}

	if c.app.globals.JSON {
		out := scanResultJSON{
			Document: result.Document,
			Stats:    result.Stats,
			Skipped:  []skippedPageJSON{},
		}
		for _, sk := range result.Skipped {
			out.Skipped = append(out.Skipped, skippedPageJSON{
				Position: sk.Position,
				Source:   sk.Source,
				Error:    sk.Err.Error(),
			})
		}
		return printJSON(c.app.out, out)
	}

	w := c.app.out
	fmt.Fprintln(w, "Saved successfully!")
	fmt.Fprintf(w, "  Name:     %s\n", result.Document.Name)
	fmt.Fprintf(w, "  Pages:    %d\n", result.Document.PageCount)
	fmt.Fprintf(w, "  Size:     %s\n", utils.FormatStorageSize(result.Document.SizeBytes))
	fmt.Fprintf(w, "  Location: %s\n", result.Document.Location)
	for _, sk := range result.Skipped {
		fmt.Fprintf(w, "  Skipped page %d (%s): %v\n", sk.Position, sk.Source, sk.Err)
	}
	return nil
}
