package deck

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed decks/*.yml
var builtinFS embed.FS

// Names returns the sorted names of the built-in decks.
func Names() []string {
	entries, err := builtinFS.ReadDir("decks")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name is a built-in deck.
func IsBuiltin(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Builtin returns a fresh copy of the named built-in deck.
func Builtin(name string) (*Deck, error) {
	data, err := builtinFS.ReadFile("decks/" + name + ".yml")
	if err != nil {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownDeck, name, strings.Join(Names(), ", "))
	}
	d, err := Parse(data, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in deck %s: %w", name, err)
	}
	return d, nil
}
