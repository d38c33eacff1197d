// Package fonts provides the embedded fonts used to measure slide text.
package fonts

import (
	"fmt"
	"sort"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Builtin maps config names to embedded TTF data.
var Builtin = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
	"go-mono":    gomono.TTF,
}

// DefaultFont is the config name of the default built-in font.
const DefaultFont = "go-regular"

// Names returns sorted list of available built-in font names.
func Names() []string {
	names := make([]string, 0, len(Builtin))
	for k := range Builtin {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Data returns the TTF bytes of a built-in font.
func Data(name string) ([]byte, error) {
	data, ok := Builtin[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in font %q (available: %v)", name, Names())
	}
	return data, nil
}
