package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kpauljoseph/lumen/internal/destination"
	"github.com/kpauljoseph/lumen/internal/pdf"
	"github.com/kpauljoseph/lumen/internal/viewer"
	"github.com/kpauljoseph/lumen/pkg/models"
	"github.com/kpauljoseph/lumen/pkg/utils"
)

const dateLayout = "Jan 02, 2006 15:04"

func (c *ListCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	docs, err := s.catalog.List(context.Background())
	if err != nil {
		return err
	}

	if c.app.globals.JSON {
		if docs == nil {
			docs = []models.Document{}
		}
		return printJSON(c.app.out, docs)
	}

	if len(docs) == 0 {
		fmt.Fprintln(c.app.out, "No documents yet")
		return nil
	}
	for _, d := range docs {
		fmt.Fprintf(c.app.out, "%4d  %-32s %3d pages  %9s  %s\n",
			d.ID, d.Name, d.PageCount, utils.FormatListSize(d.SizeBytes), d.CreatedAt.Format(dateLayout))
	}
	return nil
}

func (c *ShowCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.catalog.Get(context.Background(), c.Args.ID)
	if err != nil {
		return err
	}
	return writeDocument(c.app, doc)
}

func (c *RenameCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.catalog.Rename(context.Background(), c.Args.ID, c.Args.Name)
	if err != nil {
		return err
	}
	if c.app.globals.JSON {
		return printJSON(c.app.out, doc)
	}
	fmt.Fprintf(c.app.out, "Renamed document %d to %s\n", doc.ID, doc.Name)
	return nil
}

func (c *DeleteCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	doc, err := s.catalog.Get(ctx, c.Args.ID)
	if err != nil {
		return err
	}
	if err := s.catalog.Delete(ctx, doc.ID); err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(c.app.out, map[string]interface{}{"deleted": doc.ID})
	}
	fmt.Fprintf(c.app.out, "Deleted %s from the catalog. The file remains at %s\n", doc.Name, doc.Location)
	return nil
}

func (c *OpenCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.catalog.Get(context.Background(), c.Args.ID)
	if err != nil {
		return err
	}

	v := viewer.New(s.log, c.app.viewerOptions...)
	if err := v.Open(doc.Location); err != nil {
		s.log.Debug("Open failed: %v", err)
		return newUserError(viewer.OpenMessage(err), err)
	}
	fmt.Fprintf(c.app.out, "Opened %s\n", doc.Name)
	return nil
}

func (c *ExportCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.catalog.Get(context.Background(), c.Args.ID)
	if err != nil {
		return err
	}

	written, err := viewer.New(s.log, c.app.viewerOptions...).Export(doc.Location, c.Args.Dst)
	if err != nil {
		s.log.Debug("Export failed: %v", err)
		return newUserError(viewer.ExportMessage(err), err)
	}

	if c.app.globals.JSON {
		return printJSON(c.app.out, map[string]string{"exported": written})
	}
	fmt.Fprintf(c.app.out, "Exported %s to %s\n", doc.Name, written)
	return nil
}

func (c *PreviewCommand) Execute(args []string) error {
	s, err := c.app.open()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.catalog.Get(context.Background(), c.Args.ID)
	if err != nil {
		return err
	}
	path, err := destination.PathOf(doc.Location)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out = fmt.Sprintf("%s-p%d.png", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), c.Page)
	}

	if err := pdf.WriteThumbnail(path, c.Page, c.Width, out); err != nil {
		return err
	}

	if c.app.globals.JSON {
		return printJSON(c.app.out, map[string]string{"preview": out})
	}
	fmt.Fprintf(c.app.out, "Wrote page %d of %s to %s\n", c.Page, doc.Name, out)
	return nil
}

func writeDocument(app *App, doc *models.Document) error {
	if app.globals.JSON {
		return printJSON(app.out, doc)
	}
	w := app.out
	fmt.Fprintf(w, "ID:       %d\n", doc.ID)
	fmt.Fprintf(w, "Name:     %s\n", doc.Name)
	fmt.Fprintf(w, "Pages:    %d\n", doc.PageCount)
	fmt.Fprintf(w, "Size:     %s\n", utils.FormatStorageSize(doc.SizeBytes))
	fmt.Fprintf(w, "Created:  %s\n", doc.CreatedAt.Format(dateLayout))
	fmt.Fprintf(w, "Location: %s\n", doc.Location)
	return nil
}
