package lint

import (
	"fmt"
	"strings"

	"github.com/sofmeright/govdeck/src/deck"
)

// Severity indicates how serious a finding is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Finding represents a single lint result.
// Slide is 1-based; 0 means the finding concerns the deck as a whole.
type Finding struct {
	Deck     string
	Slide    int
	Module   string
	Severity Severity
	Message  string
}

// Location renders the finding position as "deck" or "deck#slide".
func (f Finding) Location() string {
	if f.Slide == 0 {
		return f.Deck
	}
	return fmt.Sprintf("%s#%d", f.Deck, f.Slide)
}

// Target is passed to each module for inspection.
type Target struct {
	ID   string     // deck id from config
	Deck *deck.Deck // resolved deck (templates expanded)
}

// SlideText returns the title and body of a slide joined as it appears on
// the page, one paragraph per line.
func SlideText(s deck.Slide) string {
	var b strings.Builder
	b.WriteString(s.Title)
	if s.Body != "" {
		b.WriteByte('\n')
		b.WriteString(s.Body)
	}
	return b.String()
}
