// Package inspect reads generated presentations back into title/body pairs.
package inspect

import (
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

// Slide is the text recovered from one presentation slide.
type Slide struct {
	Title string
	Body  string
}

// Lines returns the non-blank body lines in order.
func (s Slide) Lines() []string {
	var lines []string
	for _, line := range strings.Split(s.Body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Read opens a .pptx file and extracts every slide's title and body.
// The first text-bearing shape is the title, the second is the body;
// shapes without text (decoration) are skipped.
func Read(path string) ([]Slide, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var slides []Slide
	for _, slide := range pres.GetAllSlides() {
		var texts []string
		for _, shape := range slide.GetShapes() {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			text := shapeText(rts)
			if strings.TrimSpace(text) == "" {
				continue
			}
			texts = append(texts, text)
		}

		var s Slide
		if len(texts) > 0 {
			s.Title = strings.TrimSpace(texts[0])
		}
		if len(texts) > 1 {
			s.Body = strings.Join(texts[1:], "\n")
		}
		slides = append(slides, s)
	}
	return slides, nil
}

// shapeText joins a shape's paragraphs with newlines.
func shapeText(rts *ppt.RichTextShape) string {
	paras := rts.GetParagraphs()
	lines := make([]string, 0, len(paras))
	for _, para := range paras {
		var b strings.Builder
		for _, elem := range para.GetElements() {
			if run, ok := elem.(*ppt.TextRun); ok {
				b.WriteString(run.GetText())
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
