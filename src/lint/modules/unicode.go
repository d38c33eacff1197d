package modules

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sofmeright/govdeck/src/lint"
)

func init() {
	lint.Register("unicode", func() lint.Module { return &unicodeModule{} })
}

// unicodeModule flags invisible and direction-changing characters that
// slip into slide text through copy and paste.
type unicodeModule struct {
	cfg        unicodeConfig
	configured bool
}

type unicodeConfig struct {
	DetectBidi      bool `json:"detect_bidi"`
	DetectZeroWidth bool `json:"detect_zero_width"`
	// DetectSpacing covers non-breaking and typographic spaces.
	DetectSpacing bool `json:"detect_spacing"`
}

func defaultUnicodeConfig() unicodeConfig {
	return unicodeConfig{DetectBidi: true, DetectZeroWidth: true, DetectSpacing: true}
}

func (m *unicodeModule) Name() string        { return "unicode" }
func (m *unicodeModule) DefaultEnabled() bool { return true }

// Configure implements lint.ConfigurableModule.
func (m *unicodeModule) Configure(opts map[string]any) error {
	cfg := defaultUnicodeConfig()
	if len(opts) != 0 {
		b, err := json.Marshal(opts)
		if err != nil {
			return fmt.Errorf("unicode: marshal options: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("unicode: unmarshal options: %w", err)
		}
	}
	m.cfg = cfg
	m.configured = true
	return nil
}

// runeClass groups suspicious runes so each group can be switched off.
type runeClass int

const (
	classInvisible runeClass = iota
	classBidi
	classZeroWidth
	classSpacing
	classTag
	classControl
)

type suspect struct {
	class runeClass
	label string
}

var suspects = map[rune]suspect{
	'\u202A': {classBidi, "bidi override: left-to-right embedding"},
	'\u202B': {classBidi, "bidi override: right-to-left embedding"},
	'\u202C': {classBidi, "bidi override: pop directional formatting"},
	'\u202D': {classBidi, "bidi override: left-to-right override"},
	'\u202E': {classBidi, "bidi override: right-to-left override"},
	'\u2066': {classBidi, "bidi override: left-to-right isolate"},
	'\u2067': {classBidi, "bidi override: right-to-left isolate"},
	'\u2068': {classBidi, "bidi override: first strong isolate"},
	'\u2069': {classBidi, "bidi override: pop directional isolate"},

	'\u200B': {classZeroWidth, "zero-width space"},
	'\u200C': {classZeroWidth, "zero-width non-joiner"},
	'\u200D': {classZeroWidth, "zero-width joiner"},
	'\uFEFF': {classZeroWidth, "byte order mark inside slide text"},

	'\u00AD': {classInvisible, "soft hyphen"},
	'\u034F': {classInvisible, "combining grapheme joiner"},
	'\u180E': {classInvisible, "mongolian vowel separator"},
	'\u2060': {classInvisible, "word joiner"},
	'\u2061': {classInvisible, "invisible math operator"},
	'\u2062': {classInvisible, "invisible math operator"},
	'\u2063': {classInvisible, "invisible math operator"},
	'\u2064': {classInvisible, "invisible math operator"},

	'\u00A0': {classSpacing, "non-breaking space"},
	'\u205F': {classSpacing, "medium mathematical space"},
	'\u3000': {classSpacing, "ideographic space"},
}

// classify reports whether r is worth flagging in slide text.
func classify(r rune) (suspect, bool) {
	if s, ok := suspects[r]; ok {
		return s, true
	}
	switch {
	case r >= '\u2000' && r <= '\u200A':
		return suspect{classSpacing, "typographic space"}, true
	case r >= 0xE0001 && r <= 0xE007F:
		return suspect{classTag, "tag character"}, true
	case r < utf8.RuneSelf && r != '\t' && r != '\r' && unicode.IsControl(r):
		return suspect{classControl, "control character"}, true
	}
	return suspect{}, false
}

// Hidden or reordered text is critical; odd spacing only looks wrong.
func (c runeClass) severity() lint.Severity {
	switch c {
	case classBidi, classZeroWidth, classTag:
		return lint.SeverityCritical
	}
	return lint.SeverityWarning
}

func (m *unicodeModule) reports(c runeClass) bool {
	switch c {
	case classBidi:
		return m.cfg.DetectBidi
	case classZeroWidth:
		return m.cfg.DetectZeroWidth
	case classSpacing:
		return m.cfg.DetectSpacing
	}
	return true
}

func (m *unicodeModule) Check(ctx context.Context, target lint.Target) ([]lint.Finding, error) {
	if !m.configured {
		m.cfg = defaultUnicodeConfig()
	}

	var findings []lint.Finding
	for i, s := range target.Deck.Slides {
		for n, line := range strings.Split(lint.SlideText(s), "\n") {
			if !utf8.ValidString(line) {
				findings = append(findings, lint.Finding{
					Slide:    i + 1,
					Severity: lint.SeverityWarning,
					Message:  fmt.Sprintf("line %d: invalid UTF-8 encoding", n+1),
				})
				continue
			}
			for col, r := range []rune(line) {
				sus, ok := classify(r)
				if !ok || !m.reports(sus.class) {
					continue
				}
				findings = append(findings, lint.Finding{
					Slide:    i + 1,
					Severity: sus.class.severity(),
					Message:  fmt.Sprintf("line %d col %d: %s (U+%04X)", n+1, col+1, sus.label, r),
				})
			}
		}
	}
	return findings, nil
}
