package config

// ModuleConfig holds per-module overrides.
type ModuleConfig struct {
	Enabled *bool          `yaml:"enabled,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// LintConfig holds lint-specific configuration.
type LintConfig struct {
	Modules   map[string]ModuleConfig `yaml:"modules"`
	ReportDir string                  `yaml:"report_dir"` // JUnit output in CI
}

// DefaultLintConfig returns production defaults.
func DefaultLintConfig() LintConfig {
	return LintConfig{
		Modules:   map[string]ModuleConfig{},
		ReportDir: ".govdeck/reports",
	}
}
