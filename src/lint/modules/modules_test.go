package modules

import (
	"context"
	"strings"
	"testing"

	"github.com/sofmeright/govdeck/src/deck"
	"github.com/sofmeright/govdeck/src/lint"
)

// singleSlide wraps body in a two-slide deck whose second slide carries it.
func singleSlide(body string) lint.Target {
	return lint.Target{
		ID: "test",
		Deck: &deck.Deck{
			Name: "test",
			Slides: []deck.Slide{
				{Layout: deck.LayoutTitle, Title: "Title", Body: "Subtitle"},
				{Layout: deck.LayoutContent, Title: "Heading", Body: body},
			},
		},
	}
}

// resolvedBuiltin returns a built-in deck with presenter templates filled
// from the default presenter details.
func resolvedBuiltin(t *testing.T, name string) lint.Target {
	t.Helper()

	d, err := deck.Builtin(name)
	if err != nil {
		t.Fatalf("Builtin(%q): %v", name, err)
	}
	r := strings.NewReplacer(
		"{company}", "Your Company Name",
		"{email}", "your.email@company.com",
		"{date}", "May 28, 2025",
	)
	return lint.Target{ID: name, Deck: d.Resolve(r.Replace)}
}

func check(t *testing.T, m lint.Module, target lint.Target) []lint.Finding {
	t.Helper()

	if cm, ok := m.(lint.ConfigurableModule); ok {
		if err := cm.Configure(nil); err != nil {
			t.Fatalf("%s: Configure: %v", m.Name(), err)
		}
	}
	findings, err := m.Check(context.Background(), target)
	if err != nil {
		t.Fatalf("%s: Check: %v", m.Name(), err)
	}
	return findings
}

func TestStructure_ValidDeck(t *testing.T) {
	for _, name := range deck.Names() {
		if findings := check(t, &structureModule{}, resolvedBuiltin(t, name)); len(findings) != 0 {
			t.Errorf("%s: expected no findings, got: %#v", name, findings)
		}
	}
}

func TestStructure_ReportsEveryViolation(t *testing.T) {
	target := lint.Target{ID: "bad", Deck: &deck.Deck{
		Name: "bad",
		Slides: []deck.Slide{
			{Layout: deck.LayoutContent, Title: "Intro", Body: "text"},
			{Layout: deck.LayoutContent, Title: "", Body: "text"},
		},
	}}

	findings := check(t, &structureModule{}, target)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got: %#v", findings)
	}
	for _, f := range findings {
		if f.Severity != lint.SeverityCritical {
			t.Errorf("expected critical, got %s: %s", f.Severity, f.Message)
		}
	}
	if !hasAnyFindingContaining(findings, "title layout") {
		t.Errorf("expected a layout finding, got: %#v", findings)
	}
}

func TestStructure_DuplicateTitles(t *testing.T) {
	target := singleSlide("body")
	target.Deck.Slides = append(target.Deck.Slides, deck.Slide{
		Layout: deck.LayoutContent, Title: "heading ", Body: "more",
	})

	findings := check(t, &structureModule{}, target)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got: %#v", findings)
	}
	if findings[0].Slide != 3 || findings[0].Severity != lint.SeverityWarning {
		t.Fatalf("expected warning on slide 3, got: %#v", findings[0])
	}
}

func TestPlaceholder_DefaultPresenter(t *testing.T) {
	findings := check(t, &placeholderModule{}, resolvedBuiltin(t, "overview"))

	want := map[int]string{
		1:  "Your Company Name",
		7:  "(Add your",
		10: "your.email@company.com",
	}
	if len(findings) != len(want) {
		t.Fatalf("expected %d findings, got: %#v", len(want), findings)
	}
	for _, f := range findings {
		phrase, ok := want[f.Slide]
		if !ok || !strings.Contains(f.Message, phrase) {
			t.Errorf("unexpected finding on slide %d: %s", f.Slide, f.Message)
		}
		if f.Severity != lint.SeverityWarning {
			t.Errorf("slide %d: expected warning, got %s", f.Slide, f.Severity)
		}
	}
}

func TestPlaceholder_UnresolvedTemplate(t *testing.T) {
	findings := check(t, &placeholderModule{}, singleSlide("Prepared by {var:owner}\nSee {env:HOME}"))
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got: %#v", findings)
	}
	if !lint.HasCritical(findings) {
		t.Fatalf("expected critical findings, got: %#v", findings)
	}
	if !hasAnyFindingContaining(findings, "{var:owner}") {
		t.Fatalf("expected the token in the message, got: %#v", findings)
	}
}

func TestPlaceholder_IgnoresPlainBraces(t *testing.T) {
	findings := check(t, &placeholderModule{}, singleSlide(`JSON looks like {"a": 1} and { spaced }`))
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got: %#v", findings)
	}
}

func TestPlaceholder_CustomFiller(t *testing.T) {
	m := &placeholderModule{}
	if err := m.Configure(map[string]any{"filler": []any{"TBD"}}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	findings, err := m.Check(context.Background(), singleSlide("Pricing: tbd"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got: %#v", findings)
	}

	if err := m.Configure(map[string]any{"filler": []any{" "}}); err == nil {
		t.Fatalf("expected error for blank filler phrase")
	}
}

func TestOverflow_BuiltinDecksFit(t *testing.T) {
	for _, name := range deck.Names() {
		if findings := check(t, &overflowModule{}, resolvedBuiltin(t, name)); len(findings) != 0 {
			t.Errorf("%s: expected no overflow, got: %#v", name, findings)
		}
	}
}

func TestOverflow_LongBody(t *testing.T) {
	body := strings.Repeat("- Continuous compliance and monitoring\n", 30)
	findings := check(t, &overflowModule{}, singleSlide(body))
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got: %#v", findings)
	}
	if findings[0].Slide != 2 || !strings.HasPrefix(findings[0].Message, "body needs") {
		t.Fatalf("unexpected finding: %#v", findings[0])
	}
}

func TestOverflow_LongHeading(t *testing.T) {
	target := singleSlide("short")
	target.Deck.Slides[1].Title = strings.Repeat("Governance ", 12)

	findings := check(t, &overflowModule{}, target)
	if len(findings) != 1 || !strings.HasPrefix(findings[0].Message, "heading wraps") {
		t.Fatalf("expected heading finding, got: %#v", findings)
	}
}

func TestOverflow_MaxBodyLinesOption(t *testing.T) {
	m := &overflowModule{}
	if err := m.Configure(map[string]any{"max_body_lines": 2}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	findings, err := m.Check(context.Background(), singleSlide("one\ntwo\nthree"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got: %#v", findings)
	}

	if err := m.Configure(map[string]any{"max_body_lines": -1}); err == nil {
		t.Fatalf("expected error for negative max_body_lines")
	}
	if err := m.Configure(map[string]any{"font": "comic-sans"}); err == nil {
		t.Fatalf("expected error for unknown font")
	}
}

func TestSecrets_BuiltinDecksClean(t *testing.T) {
	for _, name := range deck.Names() {
		if findings := check(t, &secretsModule{}, resolvedBuiltin(t, name)); len(findings) != 0 {
			t.Errorf("%s: expected no secrets, got: %#v", name, findings)
		}
	}
}

func TestSecrets_GitHubTokenIsCritical(t *testing.T) {
	// Assembled at runtime so the literal never sits in the source tree.
	token := "ghp_" + "R3vQz8LmT1pXw9Yc" + "K2bN7dH5fJ0sA4gE6uVo"
	target := singleSlide("- Pipeline auth: " + token + "\n- Rotate quarterly")

	findings := check(t, &secretsModule{}, target)
	if len(findings) == 0 {
		t.Fatalf("expected a finding for a GitHub token")
	}

	found := false
	for _, f := range findings {
		if f.Severity != lint.SeverityCritical {
			t.Errorf("secret finding should be critical: %#v", f)
		}
		if f.Slide != 2 {
			t.Errorf("secret reported on slide %d, want 2", f.Slide)
		}
		if strings.Contains(f.Message, "github-pat") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a github-pat finding; got: %#v", findings)
	}
}
