package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	goflags "github.com/jessevdk/go-flags"

	"github.com/kpauljoseph/lumen/internal/viewer"
	"github.com/kpauljoseph/lumen/pkg/updater"
)

// App carries the state shared by every subcommand of one invocation.
type App struct {
	globals GlobalFlags
	version string
	out     io.Writer
	errOut  io.Writer

	viewerOptions  []viewer.Option
	updaterOptions []updater.Option
}

type Option func(*App)

func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// WithErrorOutput sets where log lines go.
func WithErrorOutput(w io.Writer) Option {
	return func(a *App) {
		a.errOut = w
	}
}

func WithViewerOptions(opts ...viewer.Option) Option {
	return func(a *App) {
		a.viewerOptions = append(a.viewerOptions, opts...)
	}
}

func WithUpdaterOptions(opts ...updater.Option) Option {
	return func(a *App) {
		a.updaterOptions = append(a.updaterOptions, opts...)
	}
}

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Onboard        *OnboardCommand
	Scan           *ScanCommand
	List           *ListCommand
	Show           *ShowCommand
	Rename         *RenameCommand
	Delete         *DeleteCommand
	Open           *OpenCommand
	Export         *ExportCommand
	Preview        *PreviewCommand
	Stats          *StatsCommand
	Profile        *ProfileCommand
	Settings       *SettingsCommand
	SetCompression *SetCompressionCommand
	SetDestination *SetDestinationCommand
	SetTheme       *SetThemeCommand
	Version        *VersionCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(app *App) (*goflags.Parser, *commands) {
	parser := goflags.NewParser(&app.globals, goflags.HelpFlag|goflags.PassDoubleDash)
	parser.Name = "lumen"
	parser.LongDescription = "Scan page images into compressed PDFs and keep a local catalog of them."

	cmds := &commands{
		Onboard:        &OnboardCommand{app: app},
		Scan:           &ScanCommand{app: app},
		List:           &ListCommand{app: app},
		Show:           &ShowCommand{app: app},
		Rename:         &RenameCommand{app: app},
		Delete:         &DeleteCommand{app: app},
		Open:           &OpenCommand{app: app},
		Export:         &ExportCommand{app: app},
		Preview:        &PreviewCommand{app: app},
		Stats:          &StatsCommand{app: app},
		Profile:        &ProfileCommand{app: app},
		Settings:       &SettingsCommand{app: app},
		SetCompression: &SetCompressionCommand{app: app},
		SetDestination: &SetDestinationCommand{app: app},
		SetTheme:       &SetThemeCommand{app: app},
		Version:        &VersionCommand{app: app},
	}

	parser.AddCommand("onboard", "Set up your profile", "Store your name and occupation and finish onboarding.", cmds.Onboard)
	parser.AddCommand("scan", "Create a PDF from page images", "Compress the given page images, assemble them into one PDF and save it to the configured destination.", cmds.Scan)
	parser.AddCommand("list", "List saved documents", "List saved documents, newest first.", cmds.List)
	parser.AddCommand("show", "Show one document", "Print the catalog record of a document.", cmds.Show)
	parser.AddCommand("rename", "Rename a document", "Change the display name of a document. A missing .pdf extension is added.", cmds.Rename)
	parser.AddCommand("delete", "Remove a document from the catalog", "Remove a document from the catalog. The PDF file itself is not deleted.", cmds.Delete)
	parser.AddCommand("open", "Open a document in the PDF viewer", "Open a document with the platform's default PDF viewer.", cmds.Open)
	parser.AddCommand("export", "Copy a document elsewhere", "Copy a document to a file or directory for sharing.", cmds.Export)
	parser.AddCommand("preview", "Render a page thumbnail", "Render one page of a document to a PNG thumbnail.", cmds.Preview)
	parser.AddCommand("stats", "Show lifetime statistics", "Show lifetime pages, documents, average pages and storage used.", cmds.Stats)
	parser.AddCommand("profile", "Show your profile", "Show your profile and scanning journey.", cmds.Profile)
	parser.AddCommand("settings", "Show preferences", "Show compression level, destination and theme.", cmds.Settings)
	parser.AddCommand("set-compression", "Set the compression level", "Set the compression level: Low, Medium or High.", cmds.SetCompression)
	parser.AddCommand("set-destination", "Set where PDFs are saved", "Set the destination: Downloads, Documents or Custom.", cmds.SetDestination)
	parser.AddCommand("set-theme", "Set the theme", "Set the theme: Autumn, Summer, Winter or Spring.", cmds.SetTheme)
	parser.AddCommand("version", "Show version information", "Show version information and optionally check for updates.", cmds.Version)

	return parser, cmds
}

// Run is the main entry point for the Lumen CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string, opts ...Option) error {
	app := &App{
		version: version,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}

	if args == nil {
		args = os.Args[1:]
	}
	for _, arg := range args {
		if arg == "--version" {
			fmt.Fprintf(app.out, "lumen %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _ := buildParser(app)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *goflags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
			fmt.Fprintln(app.out, flagsErr.Message)
			return nil
		}
		return err
	}

	return nil
}
