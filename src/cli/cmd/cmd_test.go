package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("NO_COLOR", "1")

	// Flag values persist on the package-level command tree.
	cfgFile, verbose = "", false
	buildOutDir, buildOutput, buildParallel = "", "", 0
	exportFormat, exportRaw = "yaml", false
	inspectBody = false
	lintModules, lintNoModule = nil, nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".govdeck.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestBuildCommand_Default(t *testing.T) {
	cfgPath := writeConfig(t, "version: 1\nbuild:\n  out_dir: out\n")

	out, err := run(t, "--config", cfgPath, "build")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	path := filepath.Join(filepath.Dir(cfgPath), "out", "Azure-Governance-Solution-Presentation.pptx")
	if want := "Presentation created: " + path + "\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestBuildCommand_FeaturesWithOutput(t *testing.T) {
	cfgPath := writeConfig(t, "version: 1\n")

	out, err := run(t, "--config", cfgPath, "build", "features", "--output", "deep-dive.pptx")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), filepath.Join(filepath.Dir(cfgPath), "deep-dive.pptx")) {
		t.Fatalf("unexpected stdout %q", out)
	}

	out, err = run(t, "inspect", filepath.Join(filepath.Dir(cfgPath), "deep-dive.pptx"))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "17 slides") || !strings.Contains(out, " 17  Q&A / Contact") {
		t.Fatalf("inspect output missing slides:\n%s", out)
	}
}

func TestBuildCommand_Errors(t *testing.T) {
	cfgPath := writeConfig(t, "version: 1\n")

	if _, err := run(t, "--config", cfgPath, "build", "roadmap"); err == nil {
		t.Fatal("expected error for unknown deck")
	}
	if _, err := run(t, "--config", cfgPath, "build", "overview", "features", "--output", "x.pptx"); err == nil {
		t.Fatal("expected error for --output with two decks")
	}
	bad := writeConfig(t, "version: 3\n")
	if _, err := run(t, "--config", bad, "build"); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestBuildCommand_ReportsDecksWrittenBeforeFailure(t *testing.T) {
	cfgPath := writeConfig(t, `version: 1
build:
  parallel: 1
decks:
  - id: overview
    builtin: overview
  - id: features
    builtin: features
    revision: "^9"
`)

	out, err := run(t, "--config", cfgPath, "build")
	if err == nil {
		t.Fatal("expected revision mismatch error")
	}
	path := filepath.Join(filepath.Dir(cfgPath), "Azure-Governance-Solution-Presentation.pptx")
	if !strings.Contains(out, "Presentation created: "+path+"\n") {
		t.Fatalf("written deck not reported:\n%s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestBuildCommand_OutputMustStayInOutDir(t *testing.T) {
	cfgPath := writeConfig(t, "version: 1\nbuild:\n  out_dir: out\n")

	if _, err := run(t, "--config", cfgPath, "build", "--output", "../escaped.pptx"); err == nil {
		t.Fatal("expected error for --output outside out_dir")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(cfgPath), "escaped.pptx")); !os.IsNotExist(err) {
		t.Fatalf("escaped.pptx should not exist, stat err = %v", err)
	}
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t, "version: 1\n"), "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"features", "1.1.0", "17", "overview", "1.0.0", "Azure-Governance-Solution-Presentation.pptx"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	cfgPath := writeConfig(t, "version: 1\npresenter:\n  company: Contoso Ltd.\n")

	out, err := run(t, "--config", cfgPath, "export", "overview", "--format", "markdown")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "# Azure Governance Solution\n") || !strings.Contains(out, "Contoso Ltd.") {
		t.Fatalf("unexpected markdown:\n%s", out)
	}

	out, err = run(t, "--config", cfgPath, "export", "overview", "--raw")
	if err != nil {
		t.Fatalf("export --raw: %v", err)
	}
	if !strings.Contains(out, "{company}") {
		t.Fatalf("raw export should keep templates:\n%s", out)
	}
}

func TestLintCommand(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("GITHUB_ACTIONS", "")

	cfgPath := writeConfig(t, "version: 1\n")
	out, err := run(t, "--config", cfgPath, "lint")
	if err != nil {
		t.Fatalf("lint should pass with warnings only: %v\n%s", err, out)
	}
	if !strings.Contains(out, "placeholder") {
		t.Fatalf("expected placeholder findings:\n%s", out)
	}

	deckPath := filepath.Join(filepath.Dir(cfgPath), "draft.yml")
	src := "name: draft\nslides:\n  - title: Draft\n    body: \"{var:owner}\"\n  - title: Next\n    body: text\n"
	if err := os.WriteFile(deckPath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--config", cfgPath, "lint", deckPath); err == nil {
		t.Fatal("expected lint failure for unresolved template")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "govdeck ") {
		t.Fatalf("unexpected version output %q", out)
	}
}
