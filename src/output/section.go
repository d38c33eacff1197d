package output

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	frameIndent = "    "
	frameWidth  = 64 // header width in columns, indent excluded
)

// Section is a framed block of command output: a titled rule, rows behind a
// left border and a closing corner.
type Section struct {
	w     io.Writer
	style Style
}

// NewSection writes the header "── title ──────── tail ──" and returns the
// section. An empty tail leaves the rule plain.
func NewSection(w io.Writer, st Style, title, tail string) *Section {
	sec := &Section{w: w, style: st}

	left := "── " + title + " "
	right := "──"
	if tail != "" {
		right = " " + tail + " ──"
	}
	fill := frameWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	header := left + strings.Repeat("─", max(fill, 1)) + right

	fmt.Fprintf(w, "\n%s%s\n", frameIndent, st.paint(ansiRule, header))
	return sec
}

// Row writes one formatted line inside the frame.
func (s *Section) Row(format string, args ...any) {
	fmt.Fprintf(s.w, "%s│ %s\n", frameIndent, fmt.Sprintf(format, args...))
}

// Blank writes an empty row.
func (s *Section) Blank() { s.Row("") }

// Rule divides the section.
func (s *Section) Rule() { s.edge("├") }

// Close writes the footer.
func (s *Section) Close() { s.edge("└") }

func (s *Section) edge(corner string) {
	fmt.Fprintf(s.w, "%s%s%s\n", frameIndent, corner, strings.Repeat("─", frameWidth-3))
}

// Deck writes a per-deck status row: id, mark, detail.
func (s *Section) Deck(id string, st Status, detail string) {
	s.Row("%-14s%s  %s", id, s.style.Mark(st), detail)
}

// Elapsed formats a duration for a section header; zero yields "".
func Elapsed(d time.Duration) string {
	switch {
	case d <= 0:
		return ""
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	whole := d.Truncate(time.Minute)
	return fmt.Sprintf("%dm%.1fs", int(whole.Minutes()), (d - whole).Seconds())
}
