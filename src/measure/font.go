// Package measure estimates how much room slide text takes up.
package measure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/sofmeright/govdeck/src/fonts"
)

// FontMetrics holds measured glyph widths for one font at one size.
type FontMetrics struct {
	name     string           // font family name
	size     float64          // point size
	advances map[rune]float64 // measured glyph advances (printable ASCII)
	fallback float64          // average width for unmapped runes
}

// TextWidth returns the width of s in points.
func (m *FontMetrics) TextWidth(s string) float64 {
	var w float64
	for _, r := range s {
		if adv, ok := m.advances[r]; ok {
			w += adv
		} else {
			w += m.fallback
		}
	}
	return w
}

// FontName returns the font family name.
func (m *FontMetrics) FontName() string { return m.name }

// FontSize returns the configured point size.
func (m *FontMetrics) FontSize() float64 { return m.size }

// LineHeight returns the baseline-to-baseline distance in points,
// using the conventional 1.2 leading.
func (m *FontMetrics) LineHeight() float64 { return m.size * 1.2 }

// WrappedLines returns how many lines s occupies in a box width points wide,
// breaking greedily at spaces. Words wider than the box are counted as
// overflowing onto as many lines as they need.
func (m *FontMetrics) WrappedLines(s string, width float64) int {
	if width <= 0 {
		return 0
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return 1
	}

	space := m.TextWidth(" ")
	lines := 1
	var cur float64
	for _, w := range words {
		ww := m.TextWidth(w)
		switch {
		case cur == 0:
			cur = ww
		case cur+space+ww <= width:
			cur += space + ww
		default:
			lines++
			cur = ww
		}
		for cur > width {
			lines++
			cur -= width
		}
	}
	return lines
}

// LoadFont loads a TTF/OTF from raw bytes and measures glyph advances at the given size.
func LoadFont(name string, data []byte, size float64) (*FontMetrics, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", name, err)
	}

	// 72 DPI makes one pixel one point.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: size,
		DPI:  72,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face for %s: %w", name, err)
	}
	defer face.Close()

	advances := make(map[rune]float64, 95)
	var total float64
	var count int

	for r := rune(32); r <= 126; r++ {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		px := float64(adv) / 64.0 // fixed.Int26_6 → float64
		advances[r] = px
		total += px
		count++
	}

	var fallback float64
	if count > 0 {
		fallback = total / float64(count)
	} else {
		fallback = size * 0.6
	}

	familyName := name
	buf := &sfnt.Buffer{}
	if n, err := f.Name(buf, sfnt.NameIDFamily); err == nil && n != "" {
		familyName = n
	}

	return &FontMetrics{
		name:     familyName,
		size:     size,
		advances: advances,
		fallback: fallback,
	}, nil
}

// LoadBuiltinFont loads an embedded font by config name.
func LoadBuiltinFont(name string, size float64) (*FontMetrics, error) {
	data, err := fonts.Data(name)
	if err != nil {
		return nil, err
	}
	return LoadFont(name, data, size)
}

// LoadFontFile loads a TTF/OTF from a filesystem path.
func LoadFontFile(path string, size float64) (*FontMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return LoadFont(name, data, size)
}

var _ font.Face = (*opentype.Face)(nil)
