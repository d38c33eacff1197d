package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// CI describes the pipeline a command runs in.
type CI struct {
	Provider string // "gitlab", "github", "ci" for a bare CI=true, "" outside CI
	Ref      string
	SHA      string
	Run      string
}

// DetectCI reads the pipeline environment of GitLab CI and GitHub Actions.
func DetectCI() CI {
	switch {
	case os.Getenv("GITLAB_CI") == "true":
		ref := os.Getenv("CI_COMMIT_TAG")
		if ref == "" {
			ref = os.Getenv("CI_COMMIT_REF_NAME")
		}
		return CI{Provider: "gitlab", Ref: ref, SHA: os.Getenv("CI_COMMIT_SHA"), Run: os.Getenv("CI_PIPELINE_ID")}
	case os.Getenv("GITHUB_ACTIONS") == "true":
		return CI{Provider: "github", Ref: os.Getenv("GITHUB_REF_NAME"), SHA: os.Getenv("GITHUB_SHA"), Run: os.Getenv("GITHUB_RUN_ID")}
	case os.Getenv("CI") == "true":
		return CI{Provider: "ci"}
	}
	return CI{}
}

// Active reports whether a pipeline was detected.
func (c CI) Active() bool { return c.Provider != "" }

// Group opens a collapsible log group and returns the function closing it.
// Providers without log groups get a no-op.
func (c CI) Group(w io.Writer, id, title string) (end func()) {
	switch c.Provider {
	case "gitlab":
		fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", time.Now().Unix(), id, title)
		return func() {
			fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", time.Now().Unix(), id)
		}
	case "github":
		fmt.Fprintf(w, "::group::%s\n", title)
		return func() { fmt.Fprintln(w, "::endgroup::") }
	}
	return func() {}
}

// Context writes the line tying a run to its pipeline and the decks it covers.
func (c CI) Context(w io.Writer, decks []string) {
	if !c.Active() {
		return
	}
	parts := []string{c.Provider}
	if c.Ref != "" {
		parts = append(parts, "ref="+c.Ref)
	}
	if sha := c.SHA; sha != "" {
		if len(sha) > 8 {
			sha = sha[:8]
		}
		parts = append(parts, "sha="+sha)
	}
	if c.Run != "" {
		parts = append(parts, "run="+c.Run)
	}
	parts = append(parts, "decks="+strings.Join(decks, ","))
	fmt.Fprintf(w, "  ci: %s\n", strings.Join(parts, "  "))
}
