package modules

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/sofmeright/govdeck/src/deck"
	"github.com/sofmeright/govdeck/src/fonts"
	"github.com/sofmeright/govdeck/src/lint"
	"github.com/sofmeright/govdeck/src/measure"
	"github.com/sofmeright/govdeck/src/render"
)

const (
	pointsPerInch      = 72
	defaultHeadingFont = "go-bold" // titles and headings render bold
)

func init() {
	lint.Register("overflow", func() lint.Module { return &overflowModule{} })
}

type overflowConfig struct {
	Font        string `json:"font"`         // built-in font used for body text
	HeadingFont string `json:"heading_font"` // built-in font used for titles and headings
	// MaxBodyLines caps wrapped body lines on content slides.
	// 0 derives the cap from the body box height.
	MaxBodyLines int `json:"max_body_lines"`
}

// box is one text frame checked against its measured content.
type box struct {
	metrics  *measure.FontMetrics
	width    float64 // points
	maxLines int
}

func newBox(fontName string, size float64, widthIn, heightIn float64) (box, error) {
	m, err := measure.LoadBuiltinFont(fontName, size)
	if err != nil {
		return box{}, err
	}
	lines := int(math.Floor(heightIn * pointsPerInch / m.LineHeight()))
	if lines < 1 {
		lines = 1
	}
	return box{metrics: m, width: widthIn * pointsPerInch, maxLines: lines}, nil
}

// lines returns the wrapped line count of text, one paragraph per source line.
func (b box) lines(text string) int {
	n := 0
	for _, para := range strings.Split(text, "\n") {
		n += b.metrics.WrappedLines(para, b.width)
	}
	return n
}

// overflowModule warns when text will not fit its frame at the rendered size.
type overflowModule struct {
	cfg      overflowConfig
	title    box
	subtitle box
	heading  box
	body     box
}

func (m *overflowModule) Name() string        { return "overflow" }
func (m *overflowModule) DefaultEnabled() bool { return true }

// Configure implements lint.ConfigurableModule.
func (m *overflowModule) Configure(opts map[string]any) error {
	cfg := overflowConfig{Font: fonts.DefaultFont, HeadingFont: defaultHeadingFont}
	if len(opts) != 0 {
		b, err := json.Marshal(opts)
		if err != nil {
			return fmt.Errorf("overflow: marshal options: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("overflow: unmarshal options: %w", err)
		}
	}
	if cfg.MaxBodyLines < 0 {
		return fmt.Errorf("overflow: max_body_lines must be non-negative, got %d", cfg.MaxBodyLines)
	}
	if cfg.Font == "" {
		cfg.Font = fonts.DefaultFont
	}
	if cfg.HeadingFont == "" {
		cfg.HeadingFont = defaultHeadingFont
	}

	var err error
	w, h := render.TitleBox()
	if m.title, err = newBox(cfg.HeadingFont, render.TitleFontSize, w, h); err != nil {
		return fmt.Errorf("overflow: %w", err)
	}
	w, h = render.SubtitleBox()
	if m.subtitle, err = newBox(cfg.Font, render.SubtitleFontSize, w, h); err != nil {
		return fmt.Errorf("overflow: %w", err)
	}
	w, h = render.HeadingBox()
	if m.heading, err = newBox(cfg.HeadingFont, render.HeadingFontSize, w, h); err != nil {
		return fmt.Errorf("overflow: %w", err)
	}
	w, h = render.BodyBox()
	if m.body, err = newBox(cfg.Font, render.BodyFontSize, w, h); err != nil {
		return fmt.Errorf("overflow: %w", err)
	}
	if cfg.MaxBodyLines > 0 {
		m.body.maxLines = cfg.MaxBodyLines
	}

	m.cfg = cfg
	return nil
}

func (m *overflowModule) Check(ctx context.Context, target lint.Target) ([]lint.Finding, error) {
	if m.body.metrics == nil {
		if err := m.Configure(nil); err != nil {
			return nil, err
		}
	}

	var findings []lint.Finding
	for i, s := range target.Deck.Slides {
		titleBox, bodyBox := m.heading, m.body
		titleKind, bodyKind := "heading", "body"
		if s.Layout == deck.LayoutTitle {
			titleBox, bodyBox = m.title, m.subtitle
			titleKind, bodyKind = "title", "subtitle"
		}

		if n := titleBox.lines(s.Title); n > titleBox.maxLines {
			findings = append(findings, lint.Finding{
				Slide:    i + 1,
				Severity: lint.SeverityWarning,
				Message: fmt.Sprintf("%s wraps to %d lines, frame holds %d at %gpt",
					titleKind, n, titleBox.maxLines, titleBox.metrics.FontSize()),
			})
		}
		if n := bodyBox.lines(s.Body); n > bodyBox.maxLines {
			findings = append(findings, lint.Finding{
				Slide:    i + 1,
				Severity: lint.SeverityWarning,
				Message: fmt.Sprintf("%s needs %d lines, frame holds %d at %gpt",
					bodyKind, n, bodyBox.maxLines, bodyBox.metrics.FontSize()),
			})
		}
	}
	return findings, nil
}
