package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kpauljoseph/lumen/internal/catalog"
	"github.com/kpauljoseph/lumen/internal/config"
	"github.com/kpauljoseph/lumen/internal/destination"
	"github.com/kpauljoseph/lumen/internal/ledger"
	"github.com/kpauljoseph/lumen/internal/settings"
	"github.com/kpauljoseph/lumen/internal/storage"
	"github.com/kpauljoseph/lumen/pkg/logger"
)

// userError carries the one-line message shown to the user while keeping the
// underlying cause for errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func newUserError(msg string, err error) error {
	return &userError{msg: msg, err: err}
}

// session is everything a command needs once the config is loaded and the
// database is open.
type session struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *sql.DB
	store       *settings.Store
	preferences *settings.Preferences
	catalog     *catalog.Catalog
	ledger      *ledger.Ledger
}

func (a *App) newLogger(level logger.LogLevel) *logger.Logger {
	log := logger.New(
		logger.WithOutput(a.errOut),
		logger.WithPrefix("lumen: "),
		logger.WithLevel(level),
	)
	log.SetVerbose(a.globals.Verbose)
	if a.globals.Debug {
		log.SetLevel(logger.LevelTrace)
	}
	return log
}

func (a *App) loadConfig() (*config.Config, error) {
	path := a.globals.Config
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (a *App) open() (*session, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := a.newLogger(level)

	log.Debug("Opening database %s", cfg.DatabasePath())
	db, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	store := settings.NewStore()
	return &session{
		cfg:         cfg,
		log:         log,
		db:          db,
		store:       store,
		preferences: settings.NewPreferences(store, db),
		catalog:     catalog.New(db),
		ledger:      ledger.New(store, log),
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

func (s *session) dirs() destination.Dirs {
	return destination.Dirs{
		Downloads: s.cfg.DownloadsDir,
		Documents: s.cfg.DocumentsDir,
		Sandbox:   s.cfg.SandboxDir,
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseChoice matches value case-insensitively against choices.
func parseChoice[T ~string](kind, value string, choices []T) (T, error) {
	names := make([]string, 0, len(choices))
	for _, choice := range choices {
		if strings.EqualFold(strings.TrimSpace(value), string(choice)) {
			return choice, nil
		}
		names = append(names, string(choice))
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q (choose one of %s)", kind, value, strings.Join(names, ", "))
}
