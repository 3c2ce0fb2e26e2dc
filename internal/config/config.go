// Package config manages the relkit configuration file. A repository may
// carry a relkit.toml at its root; anything not set there falls back to
// conventional defaults so the tool works unconfigured.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// ConfigFile is the per-repository configuration file name.
	ConfigFile = "relkit.toml"

	// StateDir holds local tool state such as the run journal.
	StateDir = ".relkit"

	// JournalFile is the sqlite database recording past runs.
	JournalFile = "history.db"
)

// Config represents the relkit configuration.
type Config struct {
	ReleaseBranch string          `toml:"release_branch"`
	Remote        string          `toml:"remote"`
	Image         ImageConfig     `toml:"image"`
	Artifacts     ArtifactsConfig `toml:"artifacts"`
	Changelog     ChangelogConfig `toml:"changelog"`

	root string // repository root the config was loaded from
}

// ImageConfig describes the container image produced by the build pipeline.
type ImageConfig struct {
	Repository string   `toml:"repository"`
	Platforms  []string `toml:"platforms"`
	Builder    string   `toml:"builder"`
}

// ArtifactsConfig lists tracked files whose image references are rewritten on
// release. Paths are relative to the repository root.
type ArtifactsConfig struct {
	Files []string `toml:"files"`
}

// ChangelogConfig tunes changelog generation.
type ChangelogConfig struct {
	Limit int `toml:"limit"`
}

// Default returns the configuration used when no relkit.toml exists.
func Default() *Config {
	return &Config{
		ReleaseBranch: "main",
		Remote:        "origin",
		Image: ImageConfig{
			Platforms: []string{"linux/amd64", "linux/arm64"},
			Builder:   "relkit-builder",
		},
		Changelog: ChangelogConfig{Limit: 20},
		root:      ".",
	}
}

// Load reads relkit.toml from dir, filling unset fields with defaults. A
// missing file is not an error; the defaults are returned as-is.
func Load(dir string) (*Config, error) {
	cfg := Default()
	cfg.root = dir

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Re-apply defaults for fields the file left empty.
	if cfg.ReleaseBranch == "" {
		cfg.ReleaseBranch = "main"
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if len(cfg.Image.Platforms) == 0 {
		cfg.Image.Platforms = []string{"linux/amd64", "linux/arm64"}
	}
	if cfg.Image.Builder == "" {
		cfg.Image.Builder = "relkit-builder"
	}
	if cfg.Changelog.Limit <= 0 {
		cfg.Changelog.Limit = 20
	}

	return cfg, nil
}

// Root returns the repository root the config was loaded from.
func (c *Config) Root() string {
	return c.root
}

// JournalPath returns the path to the run journal database, creating the
// state directory if needed.
func (c *Config) JournalPath() (string, error) {
	dir := filepath.Join(c.root, StateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	return filepath.Join(dir, JournalFile), nil
}
