package style

import (
	"strings"
)

// FontHint is one text-font entry split into family and style.
type FontHint struct {
	Name   string
	Family string
	Bold   bool
	Italic bool
	Medium bool
}

// ParseFontName splits a font name such as "Open Sans Bold". The
// family is everything before the last word; the last word selects the
// style when it is Italic, Bold or Medium.
func ParseFontName(name string) FontHint {
	h := FontHint{Name: name, Family: name}
	i := strings.LastIndexByte(name, ' ')
	if i < 0 {
		return h
	}
	h.Family = name[:i]
	switch name[i+1:] {
	case "Italic":
		h.Italic = true
	case "Bold":
		h.Bold = true
	case "Medium":
		h.Medium = true
	}
	return h
}

// FontHints parses every entry of a text-font list.
func FontHints(names []string) []FontHint {
	hints := make([]FontHint, len(names))
	for i, n := range names {
		hints[i] = ParseFontName(n)
	}
	return hints
}
