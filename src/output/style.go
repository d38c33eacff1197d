package output

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sofmeright/govdeck/src/lint"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
	ansiRule   = "\033[2;36m"
)

// Style applies terminal colour when Color is set and is a no-op otherwise.
type Style struct {
	Color bool
}

// DetectStyle colours output on a terminal or in a CI log, unless NO_COLOR
// is set or TERM is dumb.
func DetectStyle() Style {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return Style{}
	}
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return Style{Color: tty || DetectCI().Active()}
}

func (s Style) paint(code, text string) string {
	if !s.Color || text == "" {
		return text
	}
	return code + text + ansiReset
}

func (s Style) Bold(text string) string { return s.paint(ansiBold, text) }
func (s Style) Dim(text string) string  { return s.paint(ansiGray, text) }

// Status is the outcome shown beside a deck.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

var statusMarks = [...]struct{ glyph, code string }{
	StatusOK:   {"✓", ansiGreen},
	StatusWarn: {"⊘", ansiYellow},
	StatusFail: {"✗", ansiRed},
}

// Mark returns the glyph for a status.
func (s Style) Mark(st Status) string {
	m := statusMarks[st]
	return s.paint(m.code, m.glyph)
}

var severityLabels = map[lint.Severity]struct{ tag, code string }{
	lint.SeverityCritical: {"CRIT", ansiRed},
	lint.SeverityWarning:  {"WARN", ansiYellow},
	lint.SeverityInfo:     {"INFO", ansiGray},
}

// Severity returns a four-letter severity tag.
func (s Style) Severity(sev lint.Severity) string {
	l, ok := severityLabels[sev]
	if !ok {
		return sev.String()
	}
	return s.paint(l.code, l.tag)
}
