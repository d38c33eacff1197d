package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".govdeck.yml"

// Config is the top-level govdeck configuration.
type Config struct {
	Version   int               `yaml:"version"`
	Presenter PresenterConfig   `yaml:"presenter"`
	Vars      map[string]string `yaml:"vars"`
	Build     BuildConfig       `yaml:"build"`
	Render    RenderConfig      `yaml:"render"`
	Decks     []DeckConfig      `yaml:"decks"`
	Lint      LintConfig        `yaml:"lint"`
}

// PresenterConfig fills the {company}, {email} and {date} templates.
type PresenterConfig struct {
	Company string `yaml:"company"`
	Email   string `yaml:"email"`
	Date    string `yaml:"date"`    // printed as-is; use "{date:January 2, 2006}" for today
	Creator string `yaml:"creator"` // document author property
}

// BuildConfig controls where and how decks are written.
type BuildConfig struct {
	OutDir   string `yaml:"out_dir"`
	Parallel int    `yaml:"parallel"` // concurrent deck builds (default 1)
}

// RenderConfig holds theme colours as ARGB hex ("FF0078D4").
type RenderConfig struct {
	AccentColor  string `yaml:"accent_color"`
	HeadingColor string `yaml:"heading_color"`
	BodyColor    string `yaml:"body_color"`
}

// DeckConfig selects one deck to build.
type DeckConfig struct {
	ID       string `yaml:"id"`
	Builtin  string `yaml:"builtin"`  // name of a built-in deck
	File     string `yaml:"file"`     // path to a .yml/.yaml/.toml deck file
	Output   string `yaml:"output"`   // file name (default: the deck's own output)
	Revision string `yaml:"revision"` // semver constraint the deck revision must satisfy
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file.
// Returns sensible defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, err
	}

	cfg := Defaults()
	// An explicit decks list replaces the default one instead of merging into it.
	cfg.Decks = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Decks) == 0 {
		cfg.Decks = DefaultDecks()
	}
	return cfg, nil
}

// Defaults builds the overview deck with placeholder presenter details
// into the working directory.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Presenter: PresenterConfig{
			Company: "Your Company Name",
			Email:   "your.email@company.com",
			Date:    "May 28, 2025",
			Creator: "govdeck",
		},
		Vars: map[string]string{},
		Build: BuildConfig{
			OutDir:   ".",
			Parallel: 1,
		},
		Decks: DefaultDecks(),
		Lint:  DefaultLintConfig(),
	}
}

// DefaultDecks returns the deck list used when none is configured.
func DefaultDecks() []DeckConfig {
	return []DeckConfig{{ID: "overview", Builtin: "overview"}}
}
