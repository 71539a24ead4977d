package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable verbose output"`
	Debug   bool   `long:"debug" description:"Enable trace logging"`
}

// OnboardCommand stores the user's profile and finishes onboarding.
type OnboardCommand struct {
	Name       string `long:"name" description:"Your name" default:"User"`
	Occupation string `long:"occupation" description:"Your occupation" default:"Explorer"`

	app *App
}

// ScanCommand turns captured page images into one catalogued PDF.
type ScanCommand struct {
	Recursive bool `short:"r" long:"recursive" description:"Descend into subdirectories"`
	Args      struct {
		Pages []string `positional-arg-name:"PAGE" description:"Page image files or directories"`
	} `positional-args:"yes"`

	app *App
}

// ListCommand prints the catalog newest first.
type ListCommand struct {
	app *App
}

type documentArgs struct {
	ID int64 `positional-arg-name:"ID" required:"yes"`
}

// ShowCommand prints one document record.
type ShowCommand struct {
	Args documentArgs `positional-args:"yes" required:"yes"`

	app *App
}

// RenameCommand changes a document's display name.
type RenameCommand struct {
	Args struct {
		ID   int64  `positional-arg-name:"ID" required:"yes"`
		Name string `positional-arg-name:"NAME" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	app *App
}

// DeleteCommand removes a document from the catalog. The file stays.
type DeleteCommand struct {
	Args documentArgs `positional-args:"yes" required:"yes"`

	app *App
}

// OpenCommand shows a document in the platform PDF viewer.
type OpenCommand struct {
	Args documentArgs `positional-args:"yes" required:"yes"`

	app *App
}

// ExportCommand copies a document out of its destination.
type ExportCommand struct {
	Args struct {
		ID  int64  `positional-arg-name:"ID" required:"yes"`
		Dst string `positional-arg-name:"DEST" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	app *App
}

// PreviewCommand renders one page of a document to PNG.
type PreviewCommand struct {
	Page  int          `long:"page" description:"Page number, starting at 1" default:"1"`
	Width int          `long:"width" description:"Maximum thumbnail width in pixels" default:"400"`
	Out   string       `short:"o" long:"out" description:"Output PNG path"`
	Args  documentArgs `positional-args:"yes" required:"yes"`

	app *App
}

// StatsCommand prints the lifetime statistics.
type StatsCommand struct {
	app *App
}

// ProfileCommand prints the profile summary.
type ProfileCommand struct {
	app *App
}

// SettingsCommand prints the current preferences.
type SettingsCommand struct {
	app *App
}

type valueArgs struct {
	Value string `positional-arg-name:"VALUE" required:"yes"`
}

type SetCompressionCommand struct {
	Args valueArgs `positional-args:"yes" required:"yes"`

	app *App
}

type SetDestinationCommand struct {
	Args valueArgs `positional-args:"yes" required:"yes"`

	app *App
}

type SetThemeCommand struct {
	Args valueArgs `positional-args:"yes" required:"yes"`

	app *App
}

// VersionCommand prints build information.
type VersionCommand struct {
	Check bool `long:"check" description:"Check GitHub for a newer release"`

	app *App
}
