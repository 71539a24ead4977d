// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/lumen/pkg/logger"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	DataDir      string `yaml:"data_dir"`
	Database     string `yaml:"database"`
	DownloadsDir string `yaml:"downloads_dir"`
	DocumentsDir string `yaml:"documents_dir"`
	SandboxDir   string `yaml:"sandbox_dir"`
	LogLevel     string `yaml:"log_level"`
}

// DefaultConfigPath is where the CLI looks when --config is not given.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lumen", "config.yaml")
	}
	return "lumen.yaml"
}

func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DataDir:      filepath.Join(home, ".local", "share", "lumen"),
		Database:     "lumen.db",
		DownloadsDir: filepath.Join(home, "Downloads"),
		DocumentsDir: filepath.Join(home, "Documents"),
		LogLevel:     "info",
	}
}

// Load reads the YAML file at path. A missing file is not an error: the
// defaults and environment overrides are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvironmentOverrides(cfg)

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("LUMEN_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("LUMEN_DOWNLOADS_DIR"); v != "" {
		cfg.DownloadsDir = v
	}
	if v := os.Getenv("LUMEN_DOCUMENTS_DIR"); v != "" {
		cfg.DocumentsDir = v
	}
	if v := os.Getenv("LUMEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func (c *Config) normalize() error {
	for _, p := range []*string{&c.DataDir, &c.DownloadsDir, &c.DocumentsDir, &c.SandboxDir} {
		expanded, err := expandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	if c.Database == "" {
		c.Database = "lumen.db"
	}
	if c.SandboxDir == "" && c.DataDir != "" {
		c.SandboxDir = filepath.Join(c.DataDir, "files")
	}
	return nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir is empty", ErrInvalid)
	}
	if c.DownloadsDir == "" {
		return fmt.Errorf("%w: downloads_dir is empty", ErrInvalid)
	}
	if c.DocumentsDir == "" {
		return fmt.Errorf("%w: documents_dir is empty", ErrInvalid)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// DatabasePath resolves Database relative to DataDir.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) || c.Database == ":memory:" {
		return c.Database
	}
	return filepath.Join(c.DataDir, c.Database)
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
