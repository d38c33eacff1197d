package modules

import (
	"context"
	"strings"
	"testing"

	"github.com/sofmeright/govdeck/src/deck"
	"github.com/sofmeright/govdeck/src/lint"
)

func runUnicode(t *testing.T, opts map[string]any, body string) []lint.Finding {
	t.Helper()

	m := &unicodeModule{}
	if err := m.Configure(opts); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	findings, err := m.Check(context.Background(), singleSlide(body))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	return findings
}

func hasAnyFindingContaining(findings []lint.Finding, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f.Message, substr) {
			return true
		}
	}
	return false
}

func TestUnicode_BidiIsCritical(t *testing.T) {
	findings := runUnicode(t, nil, "- Reduced risk \u202e & improved compliance")
	if !lint.HasCritical(findings) {
		t.Fatalf("expected a critical finding for bidi override; got: %#v", findings)
	}
	if !hasAnyFindingContaining(findings, "line 2 col 16") {
		t.Fatalf("expected position line 2 col 16; got: %#v", findings)
	}
}

func TestUnicode_ZeroWidthIsCritical(t *testing.T) {
	findings := runUnicode(t, nil, "Cost\u200bcontrol")
	if !lint.HasCritical(findings) {
		t.Fatalf("expected a critical finding for zero-width space; got: %#v", findings)
	}
}

func TestUnicode_NonBreakingSpaceIsWarning(t *testing.T) {
	findings := runUnicode(t, nil, "May\u00a028, 2025")
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got: %#v", findings)
	}
	if findings[0].Severity != lint.SeverityWarning {
		t.Fatalf("expected warning, got %s", findings[0].Severity)
	}
}

func TestUnicode_DisableSpacingOnly(t *testing.T) {
	opts := map[string]any{"detect_spacing": false}

	if findings := runUnicode(t, opts, "May\u00a028, 2025"); len(findings) != 0 {
		t.Fatalf("expected no findings with detect_spacing=false; got: %#v", findings)
	}

	// Bidi still fires.
	if findings := runUnicode(t, opts, "\u202e bidi"); !lint.HasCritical(findings) {
		t.Fatalf("expected critical bidi finding with spacing disabled; got: %#v", findings)
	}
}

func TestUnicode_CleanText(t *testing.T) {
	d, err := deck.Builtin("overview")
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	m := &unicodeModule{}
	findings, err := m.Check(context.Background(), lint.Target{ID: "overview", Deck: d})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("expected built-in deck to be clean; got: %#v", findings)
	}
}

func TestUnicode_ConfigValidation(t *testing.T) {
	m := &unicodeModule{}
	if err := m.Configure(map[string]any{"detect_bidi": "yes"}); err == nil {
		t.Fatalf("expected error for non-boolean detect_bidi but got nil")
	}
}

func TestUnicode_Classes(t *testing.T) {
	tests := []struct {
		body  string
		want  lint.Severity
		label string
	}{
		{"Tagged\U000E0041", lint.SeverityCritical, "tag character"},
		{"Bell\a", lint.SeverityWarning, "control character"},
		{"Thin\u2009space", lint.SeverityWarning, "typographic space"},
		{"Soft\u00adhyphen", lint.SeverityWarning, "soft hyphen"},
		{"Joined\u200dtext", lint.SeverityCritical, "zero-width joiner"},
	}
	for _, tt := range tests {
		findings := runUnicode(t, nil, tt.body)
		if len(findings) != 1 {
			t.Errorf("%q: expected 1 finding, got: %#v", tt.label, findings)
			continue
		}
		if findings[0].Severity != tt.want || !strings.Contains(findings[0].Message, tt.label) {
			t.Errorf("%q: got %s %q", tt.label, findings[0].Severity, findings[0].Message)
		}
	}
}
