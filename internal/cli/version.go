package cli

import (
	"context"
	"fmt"

	"github.com/kpauljoseph/lumen/pkg/logger"
	"github.com/kpauljoseph/lumen/pkg/updater"
	"github.com/kpauljoseph/lumen/pkg/version"
)

func (c *VersionCommand) Execute(args []string) error {
	if !c.Check {
		if c.app.globals.JSON {
			return printJSON(c.app.out, map[string]string{
				"version": c.app.version,
				"commit":  version.CommitSHA,
				"built":   version.BuildDate,
			})
		}
		fmt.Fprintf(c.app.out, "Lumen\nVersion:  %s\nCommit:   %s\nBuilt:    %s\n", c.app.version, version.CommitSHA, version.BuildDate)
		return nil
	}

	log := c.app.newLogger(logger.LevelInfo)
	checker := updater.NewChecker(c.app.version, log, c.app.updaterOptions...)
	info, err := checker.CheckForUpdates(context.Background())
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}

	if c.app.globals.JSON {
		return printJSON(c.app.out, info)
	}
	if info.IsAvailable {
		fmt.Fprintf(c.app.out, "Lumen %s is available (you have %s): %s\n", info.LatestVersion, info.CurrentVersion, info.DownloadURL)
		return nil
	}
	fmt.Fprintf(c.app.out, "Lumen %s is up to date\n", info.CurrentVersion)
	return nil
}
