// Package deck holds the slide-deck model shared by the renderer, the
// linter and the catalog of built-in decks.
package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownDeck is returned when a built-in deck name is not in the catalog.
	ErrUnknownDeck = errors.New("unknown deck")
	// ErrRevisionMismatch is returned when a deck revision does not satisfy a pinned constraint.
	ErrRevisionMismatch = errors.New("deck revision does not satisfy constraint")
)

// Layout selects the slide template a slide is rendered with.
type Layout string

const (
	LayoutTitle   Layout = "title"   // layout index 0: centred title + subtitle
	LayoutContent Layout = "content" // layout index 1: heading + body text
)

// ParseLayout maps a layout name or numeric layout index to a Layout.
// An omitted layout is filled in when a deck is parsed, so "" is an error here.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title", "0":
		return LayoutTitle, nil
	case "content", "1":
		return LayoutContent, nil
	}
	return "", fmt.Errorf("unknown layout %q (expected title or content)", s)
}

// UnmarshalYAML accepts both names ("title") and indexes (0).
func (l *Layout) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseLayout(value.Value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// UnmarshalText is used by the TOML decoder.
func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Slide is one page of a deck.
type Slide struct {
	Layout Layout `yaml:"layout" toml:"layout"`
	Title  string `yaml:"title" toml:"title"`
	Body   string `yaml:"body" toml:"body,multiline"`
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

// Deck is an ordered sequence of slides plus document metadata.
type Deck struct {
	Name     string  `yaml:"name" toml:"name"`
	Title    string  `yaml:"title" toml:"title"`
	Revision string  `yaml:"revision" toml:"revision"`
	Output   string  `yaml:"output" toml:"output"`
	Slides   []Slide `yaml:"slides" toml:"slides"`
}

// Validate checks the structural invariants of a deck and reports every
// violation at once.
func (d *Deck) Validate() error {
	var errs []error

	if d.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if d.Revision != "" {
		if _, err := semver.NewVersion(d.Revision); err != nil {
			errs = append(errs, fmt.Errorf("revision %q: %w", d.Revision, err))
		}
	}
	if len(d.Slides) == 0 {
		errs = append(errs, errors.New("deck has no slides"))
	}

	for i, s := range d.Slides {
		path := "slides[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(s.Title) == "" {
			errs = append(errs, fmt.Errorf("%s: title is empty", path))
		}
		if strings.TrimSpace(s.Body) == "" {
			errs = append(errs, fmt.Errorf("%s: body is empty", path))
		}
		switch {
		case i == 0 && s.Layout != LayoutTitle:
			errs = append(errs, fmt.Errorf("%s: first slide must use the title layout, got %q", path, s.Layout))
		case i > 0 && s.Layout != LayoutContent:
			errs = append(errs, fmt.Errorf("%s: slide must use the content layout, got %q", path, s.Layout))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("deck %q: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

// Resolve returns a copy of the deck with every title and body passed
// through fn. The receiver is left untouched.
func (d *Deck) Resolve(fn func(string) string) *Deck {
	out := *d
	out.Title = fn(d.Title)
	out.Slides = make([]Slide, len(d.Slides))
	for i, s := range d.Slides {
		out.Slides[i] = Slide{
			Layout: s.Layout,
			Title:  fn(s.Title),
			Body:   fn(s.Body),
		}
	}
	return &out
}

// CheckRevision reports ErrRevisionMismatch when the deck revision does not
// satisfy the constraint. An empty constraint always passes.
func (d *Deck) CheckRevision(constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing revision constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(d.Revision)
	if err != nil {
		return fmt.Errorf("deck %q: parsing revision %q: %w", d.Name, d.Revision, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("deck %q revision %s, want %s: %w", d.Name, d.Revision, constraint, ErrRevisionMismatch)
	}
	return nil
}
