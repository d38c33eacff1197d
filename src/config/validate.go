package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// identifierRe matches valid deck ids: letter-first, alphanumeric + _ . -
var identifierRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.\-]*$`)

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	// ── Version ───────────────────────────────────────────────────────────

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("version: must be 1, got %d", cfg.Version))
	}

	// ── Build ─────────────────────────────────────────────────────────────

	if cfg.Build.Parallel < 0 {
		errs = append(errs, fmt.Sprintf("build.parallel: must be >= 0, got %d", cfg.Build.Parallel))
	}

	// ── Render ────────────────────────────────────────────────────────────

	colors := []struct{ name, value string }{
		{"accent_color", cfg.Render.AccentColor},
		{"heading_color", cfg.Render.HeadingColor},
		{"body_color", cfg.Render.BodyColor},
	}
	for _, c := range colors {
		if c.value != "" && !isARGB(c.value) {
			errs = append(errs, fmt.Sprintf("render.%s: %q is not an 8-digit ARGB hex colour", c.name, c.value))
		}
	}

	// ── Decks ─────────────────────────────────────────────────────────────

	ids := make(map[string]bool)
	outputs := make(map[string]string)
	for i, d := range cfg.Decks {
		dpath := fmt.Sprintf("decks[%d]", i)

		switch {
		case d.ID == "":
			errs = append(errs, fmt.Sprintf("%s: id is required", dpath))
		case !identifierRe.MatchString(d.ID):
			errs = append(errs, fmt.Sprintf("%s: id %q is not a valid identifier (must match [a-zA-Z][a-zA-Z0-9_.\\-]*)", dpath, d.ID))
		case ids[d.ID]:
			errs = append(errs, fmt.Sprintf("%s: duplicate deck id %q", dpath, d.ID))
		default:
			ids[d.ID] = true
		}

		if (d.Builtin == "") == (d.File == "") {
			errs = append(errs, fmt.Sprintf("%s: exactly one of builtin or file is required", dpath))
		}

		if d.File != "" {
			switch strings.ToLower(filepath.Ext(d.File)) {
			case ".yml", ".yaml", ".toml":
			default:
				errs = append(errs, fmt.Sprintf("%s: file %q must be .yml, .yaml or .toml", dpath, d.File))
			}
		}

		if d.Revision != "" {
			if _, cerr := semver.NewConstraint(d.Revision); cerr != nil {
				errs = append(errs, fmt.Sprintf("%s: revision %q is not a valid constraint: %v", dpath, d.Revision, cerr))
			}
		}

		if d.Output != "" {
			errs = append(errs, validateOutputPath(d.Output, dpath)...)
			if !strings.EqualFold(filepath.Ext(d.Output), ".pptx") {
				warnings = append(warnings, fmt.Sprintf("%s: output %q does not end in .pptx", dpath, d.Output))
			}
			if prev, ok := outputs[d.Output]; ok {
				errs = append(errs, fmt.Sprintf("%s: output %q is also written by deck %q", dpath, d.Output, prev))
			} else {
				outputs[d.Output] = d.ID
			}
		}
	}

	// ── Presenter ─────────────────────────────────────────────────────────

	if cfg.Presenter.Company == "" {
		warnings = append(warnings, "presenter.company: empty, {company} resolves to nothing")
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

func isARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// CheckOutputPath reports whether p is a safe output path: relative, without
// ~ or .. and in canonical form. It applies to every output a deck ends up
// with, whether set in config, in the deck file or on the command line.
func CheckOutputPath(p string) error {
	if errs := validateOutputPath(p, "output"); len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// validateOutputPath checks that an output path is safe.
func validateOutputPath(p string, itemPath string) []string {
	var errs []string

	// Absolute path
	if filepath.IsAbs(p) {
		errs = append(errs, fmt.Sprintf("%s: output path %q must be relative, not absolute", itemPath, p))
		return errs
	}

	// Tilde
	if strings.HasPrefix(p, "~") {
		errs = append(errs, fmt.Sprintf("%s: output path %q must not start with ~", itemPath, p))
		return errs
	}

	// Path traversal
	if strings.Contains(p, "..") {
		errs = append(errs, fmt.Sprintf("%s: output path %q must not contain '..'", itemPath, p))
		return errs
	}

	// Normalize: strip leading ./ then compare with filepath.Clean
	normalized := strings.TrimPrefix(p, "./")
	clean := filepath.Clean(normalized)
	if clean != normalized {
		errs = append(errs, fmt.Sprintf("%s: output path %q is not in canonical form (cleaned to %q)", itemPath, p, clean))
	}

	return errs
}
