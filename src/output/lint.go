package output

import (
	"fmt"
	"strings"

	"github.com/sofmeright/govdeck/src/lint"
)

// Counts tallies findings by severity.
type Counts struct {
	Critical int
	Warning  int
	Info     int
}

// Count tallies findings.
func Count(findings []lint.Finding) Counts {
	var c Counts
	for _, f := range findings {
		switch f.Severity {
		case lint.SeverityCritical:
			c.Critical++
		case lint.SeverityWarning:
			c.Warning++
		default:
			c.Info++
		}
	}
	return c
}

// Total is the number of findings counted.
func (c Counts) Total() int { return c.Critical + c.Warning + c.Info }

// Summary renders "3 findings in 2 decks: 1 critical, 2 warning".
func (c Counts) Summary(decks int, st Style) string {
	var parts []string
	if c.Critical > 0 {
		parts = append(parts, st.paint(ansiRed, fmt.Sprintf("%d critical", c.Critical)))
	}
	if c.Warning > 0 {
		parts = append(parts, st.paint(ansiYellow, fmt.Sprintf("%d warning", c.Warning)))
	}
	if c.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", c.Info))
	}
	detail := "no findings"
	if len(parts) > 0 {
		detail = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s findings in %d decks: %s", st.Bold(fmt.Sprint(c.Total())), decks, detail)
}

// DeckOutcome summarises one deck's findings as a status and detail text.
func DeckOutcome(findings []lint.Finding, id string) (Status, string) {
	var mine []lint.Finding
	for _, f := range findings {
		if f.Deck == id {
			mine = append(mine, f)
		}
	}
	switch {
	case len(mine) == 0:
		return StatusOK, "clean"
	case lint.HasCritical(mine):
		return StatusFail, fmt.Sprintf("%d findings", len(mine))
	}
	return StatusWarn, fmt.Sprintf("%d findings", len(mine))
}

// ModuleTable writes per-module counters.
func (s *Section) ModuleTable(stats []lint.ModuleStats) {
	s.Row("%-16s%6s  %8s  %8s", "module", "decks", "critical", "findings")
	for _, m := range stats {
		s.Row("%-16s%5d   %7d   %7d", m.Name, m.Decks, m.Critical, m.Findings)
	}
}

// Findings writes findings under a heading per deck. Findings are expected
// in lint.SortFindings order.
func (s *Section) Findings(findings []lint.Finding) {
	if len(findings) == 0 {
		return
	}

	deck := ""
	for i, f := range findings {
		if i == 0 || f.Deck != deck {
			s.Blank()
			deck = f.Deck
			s.Row("%s", s.style.Bold(deck))
		}
		loc := "-"
		if f.Slide > 0 {
			loc = fmt.Sprintf("#%d", f.Slide)
		}
		module := s.style.paint(ansiCyan, fmt.Sprintf("%-11s", f.Module))
		s.Row("  %-4s %s  %s %s", loc, s.style.Severity(f.Severity), module, f.Message)
	}
	s.Blank()
}
