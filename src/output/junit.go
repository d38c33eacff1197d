package output

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sofmeright/govdeck/src/lint"
)

type junitReport struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Name     string       `xml:"name,attr"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Time     string       `xml:"time,attr"`
	Suites   []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Time     string      `xml:"time,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// WriteJUnit writes dir/lint.xml and returns its path. Each deck is a test
// suite. The deck itself is one case, for findings about the whole deck, and
// every slide is a case named deck#N. A case fails on a critical finding;
// lesser findings are attached as system-out.
func WriteJUnit(dir string, targets []lint.Target, findings []lint.Finding, elapsed time.Duration) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	type key struct {
		deck  string
		slide int
	}
	at := make(map[key][]lint.Finding)
	for _, f := range findings {
		k := key{f.Deck, f.Slide}
		at[k] = append(at[k], f)
	}

	report := junitReport{Name: "govdeck-lint", Time: seconds(elapsed)}
	for _, t := range targets {
		suite := junitSuite{Name: "govdeck/lint/" + t.ID}
		if len(targets) > 0 {
			suite.Time = seconds(elapsed / time.Duration(len(targets)))
		}

		slides := 0
		if t.Deck != nil {
			slides = len(t.Deck.Slides)
		}
		for n := 0; n <= slides; n++ {
			name := t.ID
			if n > 0 {
				name = fmt.Sprintf("%s#%d", t.ID, n)
			}
			tc := slideCase(name, "govdeck.lint."+t.ID, at[key{t.ID, n}])
			if tc.Failure != nil {
				suite.Failures++
			}
			suite.Cases = append(suite.Cases, tc)
			suite.Tests++
		}

		report.Tests += suite.Tests
		report.Failures += suite.Failures
		report.Suites = append(report.Suites, suite)
	}

	data, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding junit xml: %w", err)
	}
	path := filepath.Join(dir, "lint.xml")
	if err := os.WriteFile(path, append([]byte(xml.Header), append(data, '\n')...), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func slideCase(name, class string, findings []lint.Finding) junitCase {
	tc := junitCase{Name: name, Classname: class}
	if len(findings) == 0 {
		return tc
	}

	lines := make([]string, len(findings))
	for i, f := range findings {
		lines[i] = fmt.Sprintf("%s [%s] %s", f.Module, f.Severity, f.Message)
	}
	body := strings.Join(lines, "\n")

	if lint.HasCritical(findings) {
		tc.Failure = &junitFailure{
			Message: fmt.Sprintf("%d finding(s) on %s", len(findings), name),
			Type:    lint.SeverityCritical.String(),
			Body:    body,
		}
	} else {
		tc.SystemOut = body
	}
	return tc
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
