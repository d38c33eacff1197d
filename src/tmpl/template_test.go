package tmpl

import (
	"testing"
	"time"
)

func fixedResolver() *Resolver {
	return &Resolver{
		Company: "Contoso Ltd.",
		Email:   "cloud@contoso.com",
		Date:    "May 28, 2025",
		Vars: map[string]string{
			"team":  "Platform",
			"owner": "{var:team} team at {company}",
			"a":     "{var:b}",
			"b":     "{var:a}",
		},
		Now: func() time.Time { return time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC) },
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("GOVDECK_TEST_REGION", "westeurope")

	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"{company}\n{date}", "Contoso Ltd.\nMay 28, 2025"},
		{"Contact: {email}", "Contact: cloud@contoso.com"},
		{"Prepared by {var:owner}", "Prepared by Platform team at Contoso Ltd."},
		{"{today}", "2026-03-04"},
		{"{date:January 2, 2006}", "March 4, 2026"},
		{"Region {env:GOVDECK_TEST_REGION}", "Region westeurope"},
		{"{var:missing} stays", "{var:missing} stays"},
		{"{unknown} stays", "{unknown} stays"},
		{"JSON {\"a\": 1}", "JSON {\"a\": 1}"},
	}
	r := fixedResolver()
	for _, tt := range tests {
		if got := r.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_PresenterValuesExpand(t *testing.T) {
	t.Setenv("GOVDECK_TEST_COMPANY", "Contoso")

	r := fixedResolver()
	r.Company = "{env:GOVDECK_TEST_COMPANY}"
	r.Date = "{date:January 2, 2006}"
	r.Email = "{var:team}@contoso.com"

	tests := []struct {
		in   string
		want string
	}{
		{"{company} / {date}", "Contoso / March 4, 2026"},
		{"{email}", "Platform@contoso.com"},
		{"{date} ({today})", "March 4, 2026 (2026-03-04)"},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_SelfReferencingEnv(t *testing.T) {
	t.Setenv("GOVDECK_TEST_LOOP", "{env:GOVDECK_TEST_LOOP}")
	t.Setenv("GOVDECK_TEST_NEXT", "{env:GOVDECK_TEST_LOOP}")

	done := make(chan string, 1)
	go func() {
		done <- resolveEnvVars("x {env:GOVDECK_TEST_LOOP} y {env:GOVDECK_TEST_NEXT}")
	}()

	select {
	case got := <-done:
		if want := "x {env:GOVDECK_TEST_LOOP} y {env:GOVDECK_TEST_LOOP}"; got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("resolveEnvVars did not return")
	}
}

func TestResolve_DateLayoutNotRescanned(t *testing.T) {
	r := fixedResolver()
	// The layout "{date:" formats to itself; the trailing " x}" must stay literal.
	if got := r.Resolve("[{date:{date:} x}]"); got != "[{date: x}]" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveVars_Cycle(t *testing.T) {
	got := ResolveVars("x {var:a} y", fixedResolver().Vars)
	if got != "x {var:a} y" {
		t.Fatalf("cycle not stopped: %q", got)
	}
}

func TestResolve_CommitWithoutRepo(t *testing.T) {
	r := fixedResolver()
	r.RootDir = t.TempDir()
	if got := r.Resolve("[{commit.date}|{commit.author}]"); got != "[|]" {
		t.Fatalf("expected empty commit fields outside a repository, got %q", got)
	}
}

func TestResolve_CommitDisabled(t *testing.T) {
	r := fixedResolver()
	if got := r.Resolve("{commit.author}"); got != "" {
		t.Fatalf("expected empty author with RootDir unset, got %q", got)
	}
}
