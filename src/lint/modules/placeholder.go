package modules

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sofmeright/govdeck/src/lint"
)

// tokenRe matches template tokens the resolver leaves intact when it does
// not know them: {name}, {ns.name}, {ns:arg}.
var tokenRe = regexp.MustCompile(`\{[a-zA-Z][a-zA-Z0-9_.]*(?::[^{}\n]*)?\}`)

var defaultFiller = []string{
	"Your Company Name",
	"your.email@company.com",
	"(Add your",
}

func init() {
	lint.Register("placeholder", func() lint.Module {
		return &placeholderModule{cfg: placeholderConfig{Filler: defaultFiller}}
	})
}

type placeholderConfig struct {
	// Filler lists literal phrases that mark text still waiting to be
	// replaced. Matching is case-insensitive.
	Filler []string `json:"filler"`
}

type placeholderModule struct {
	cfg placeholderConfig
}

func (m *placeholderModule) Name() string        { return "placeholder" }
func (m *placeholderModule) DefaultEnabled() bool { return true }

// Configure implements lint.ConfigurableModule.
func (m *placeholderModule) Configure(opts map[string]any) error {
	cfg := placeholderConfig{Filler: defaultFiller}
	if len(opts) != 0 {
		b, err := json.Marshal(opts)
		if err != nil {
			return fmt.Errorf("placeholder: marshal options: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("placeholder: unmarshal options: %w", err)
		}
	}
	for _, f := range cfg.Filler {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("placeholder: filler phrases must not be empty")
		}
	}
	m.cfg = cfg
	return nil
}

func (m *placeholderModule) Check(ctx context.Context, target lint.Target) ([]lint.Finding, error) {
	var findings []lint.Finding
	for i, s := range target.Deck.Slides {
		text := lint.SlideText(s)

		for _, tok := range tokenRe.FindAllString(text, -1) {
			findings = append(findings, lint.Finding{
				Slide:    i + 1,
				Severity: lint.SeverityCritical,
				Message:  fmt.Sprintf("unresolved template %s", tok),
			})
		}

		lower := strings.ToLower(text)
		for _, phrase := range m.cfg.Filler {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				findings = append(findings, lint.Finding{
					Slide:    i + 1,
					Severity: lint.SeverityWarning,
					Message:  fmt.Sprintf("placeholder text %q", phrase),
				})
			}
		}
	}
	return findings, nil
}
