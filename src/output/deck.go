package output

import (
	"fmt"
	"time"

	"github.com/sofmeright/govdeck/src/deck"
	"github.com/sofmeright/govdeck/src/inspect"
)

// Catalog lists decks with revision, slide count and default output.
func (s *Section) Catalog(decks []*deck.Deck) {
	s.Row("%-12s%-10s%-8s%s", "deck", "revision", "slides", "output")
	for _, d := range decks {
		s.Row("%-12s%-10s%-8d%s", d.Name, d.Revision, len(d.Slides), s.style.Dim(d.Output))
	}
}

// Slides lists slide titles, and with body set, each slide's non-blank body
// lines indented below its title.
func (s *Section) Slides(slides []inspect.Slide, body bool) {
	for i, sl := range slides {
		s.Row("%3d  %s", i+1, s.style.Bold(sl.Title))
		if !body {
			continue
		}
		for _, line := range sl.Lines() {
			s.Row("       %s", line)
		}
		if i < len(slides)-1 {
			s.Blank()
		}
	}
}

// Built reports one written presentation.
func (s *Section) Built(id, path string, slides, bytes int, elapsed time.Duration) {
	detail := fmt.Sprintf("%d slides, %s, %s", slides, formatSize(bytes), Elapsed(elapsed))
	s.Deck(id, StatusOK, s.style.Dim(path)+"  "+detail)
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
