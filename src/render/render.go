// Package render turns a deck into a PowerPoint document using GoPPT.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/sofmeright/govdeck/src/deck"
)

const emuPerInch = 914400

// Slide geometry for a 16:9 (10in x 5.625in) page, in EMU.
const (
	marginLeft     = int64(0.5 * emuPerInch)
	contentWidth   = int64(9.0 * emuPerInch)
	slideWidth     = int64(10.0 * emuPerInch)
	accentHeight   = int64(0.08 * emuPerInch)
	headingTop     = int64(0.3 * emuPerInch)
	headingHeight  = int64(0.8 * emuPerInch)
	bodyTop        = int64(1.25 * emuPerInch)
	bodyHeight     = int64(4.0 * emuPerInch)
	titleTop       = int64(1.5 * emuPerInch)
	titleHeight    = int64(1.2 * emuPerInch)
	subtitleTop    = int64(2.9 * emuPerInch)
	subtitleHeight = int64(1.6 * emuPerInch)
)

// Font sizes in points.
const (
	TitleFontSize    = 40
	SubtitleFontSize = 20
	HeadingFontSize  = 30
	BodyFontSize     = 18
)

// BodyBox returns the body text box size in inches.
func BodyBox() (width, height float64) {
	return inches(contentWidth), inches(bodyHeight)
}

// HeadingBox returns the content-slide heading box size in inches.
func HeadingBox() (width, height float64) {
	return inches(contentWidth), inches(headingHeight)
}

// TitleBox returns the title-slide title box size in inches.
func TitleBox() (width, height float64) {
	return inches(contentWidth), inches(titleHeight)
}

// SubtitleBox returns the title-slide subtitle box size in inches.
func SubtitleBox() (width, height float64) {
	return inches(contentWidth), inches(subtitleHeight)
}

func inches(emu int64) float64 { return float64(emu) / emuPerInch }

// Options controls document metadata and styling.
type Options struct {
	Creator      string
	AccentColor  string // ARGB hex, e.g. "FF0078D4"
	HeadingColor string
	BodyColor    string
}

// DefaultOptions returns the Azure-blue theme.
func DefaultOptions() Options {
	return Options{
		Creator:      "govdeck",
		AccentColor:  "FF0078D4",
		HeadingColor: "FF003A6C",
		BodyColor:    "FF323130",
	}
}

// withDefaults fills zero-valued fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Creator == "" {
		o.Creator = def.Creator
	}
	if o.AccentColor == "" {
		o.AccentColor = def.AccentColor
	}
	if o.HeadingColor == "" {
		o.HeadingColor = def.HeadingColor
	}
	if o.BodyColor == "" {
		o.BodyColor = def.BodyColor
	}
	return o
}

// Render builds the presentation for d and returns the encoded .pptx bytes.
func Render(d *deck.Deck, opts Options) ([]byte, error) {
	if len(d.Slides) == 0 {
		return nil, fmt.Errorf("deck %q has no slides", d.Name)
	}
	opts = opts.withDefaults()

	p := ppt.New()
	p.GetDocumentProperties().Title = d.Title
	p.GetDocumentProperties().Creator = opts.Creator

	for i, s := range d.Slides {
		// A new presentation starts with one empty slide.
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}

		switch s.Layout {
		case deck.LayoutTitle:
			addTitleSlide(slide, s, opts)
		case deck.LayoutContent:
			addContentSlide(slide, s, opts)
		default:
			return nil, fmt.Errorf("slide %d: unknown layout %q", i+1, s.Layout)
		}
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("creating pptx writer: %w", err)
	}
	pw, ok := w.(*ppt.PPTXWriter)
	if !ok {
		return nil, fmt.Errorf("unexpected writer type %T", w)
	}

	var buf bytes.Buffer
	if err := pw.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding pptx: %w", err)
	}
	return buf.Bytes(), nil
}

func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// accentBar draws a thin full-width bar. It carries no text, so readers skip it.
func accentBar(slide *ppt.Slide, y, height int64, argb string) {
	bar := slide.CreateRichTextShape()
	bar.SetOffsetX(0).SetOffsetY(y)
	bar.SetWidth(slideWidth).SetHeight(height)
	bar.SetFill(solidFill(argb))
}

// addTitleSlide renders layout 0: a centred title with subtitle lines below.
func addTitleSlide(slide *ppt.Slide, s deck.Slide, opts Options) {
	accentBar(slide, 0, int64(0.15*emuPerInch), opts.AccentColor)

	title := slide.CreateRichTextShape()
	title.SetOffsetX(marginLeft).SetOffsetY(titleTop)
	title.SetWidth(contentWidth).SetHeight(titleHeight)
	tr := title.CreateTextRun(s.Title)
	tr.GetFont().SetSize(TitleFontSize).SetBold(true).SetColor(ppt.NewColor(opts.HeadingColor))
	alignCenter(title.GetActiveParagraph())

	sub := slide.CreateRichTextShape()
	sub.SetOffsetX(marginLeft).SetOffsetY(subtitleTop)
	sub.SetWidth(contentWidth).SetHeight(subtitleHeight)
	writeLines(sub, s.Body, opts.BodyColor, true)
}

// addContentSlide renders layout 1: heading on top, one paragraph per body line.
func addContentSlide(slide *ppt.Slide, s deck.Slide, opts Options) {
	accentBar(slide, 0, accentHeight, opts.AccentColor)

	heading := slide.CreateRichTextShape()
	heading.SetOffsetX(marginLeft).SetOffsetY(headingTop)
	heading.SetWidth(contentWidth).SetHeight(headingHeight)
	tr := heading.CreateTextRun(s.Title)
	tr.GetFont().SetSize(HeadingFontSize).SetBold(true).SetColor(ppt.NewColor(opts.HeadingColor))

	body := slide.CreateRichTextShape()
	body.SetOffsetX(marginLeft).SetOffsetY(bodyTop)
	body.SetWidth(contentWidth).SetHeight(bodyHeight)
	writeLines(body, s.Body, opts.BodyColor, false)
}

// writeLines writes text verbatim, one paragraph per line. Blank lines become
// empty paragraphs so the vertical rhythm of the source is kept. Subtitles
// are centred and set in the subtitle size.
func writeLines(shape *ppt.RichTextShape, text string, argb string, subtitle bool) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			shape.CreateParagraph()
		}
		if subtitle {
			alignCenter(shape.GetActiveParagraph())
		}
		if line == "" {
			continue
		}
		tr := shape.CreateTextRun(line)
		if subtitle {
			tr.GetFont().SetSize(SubtitleFontSize).SetColor(ppt.NewColor(argb))
		} else {
			tr.GetFont().SetSize(BodyFontSize).SetColor(ppt.NewColor(argb))
		}
	}
}

// WriteFile writes data to path through a temp file in the same directory,
// so readers never observe a partially written presentation.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".govdeck-*.pptx")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
