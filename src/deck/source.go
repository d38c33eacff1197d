package deck

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a deck source encoding.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a user-supplied format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown deck format %q (supported: yaml, toml, markdown)", s)
}

// Load reads a deck file. The encoding is chosen by extension.
func Load(path string) (*Deck, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Parse decodes a YAML or TOML deck document.
func Parse(data []byte, format Format) (*Deck, error) {
	d := &Deck{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, d); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("deck format %q cannot be parsed", format)
	}
	normalize(d)
	return d, nil
}

// normalize fills in omitted layouts: the opening slide is a title slide,
// everything after it is content.
func normalize(d *Deck) {
	for i := range d.Slides {
		if d.Slides[i].Layout != "" {
			continue
		}
		if i == 0 {
			d.Slides[i].Layout = LayoutTitle
		} else {
			d.Slides[i].Layout = LayoutContent
		}
	}
}

// Marshal encodes a deck in the requested format.
func Marshal(d *Deck, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return data, nil
	case FormatMarkdown:
		return []byte(markdown(d)), nil
	}
	return nil, fmt.Errorf("unknown deck format %q", format)
}

// markdown renders a deck as an outline: one H2 per slide, title slide as H1.
func markdown(d *Deck) string {
	var b strings.Builder
	for i, s := range d.Slides {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		if s.Layout == LayoutTitle {
			b.WriteString("# " + s.Title + "\n\n")
		} else {
			b.WriteString("## " + s.Title + "\n\n")
		}
		b.WriteString(s.Body)
		b.WriteString("\n")
	}
	return b.String()
}
