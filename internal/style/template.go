package style

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Template is a text-field or icon-image pattern with {key} placeholders.
type Template struct {
	field Function[string]
}

// NewTemplate returns a constant template.
func NewTemplate(pattern string) Template {
	return Template{field: Constant(pattern)}
}

// Pattern returns the raw pattern in effect at zoom.
func (t Template) Pattern(zoom float64) string {
	return t.field.Value(zoom)
}

// Keys lists the placeholder keys of the pattern at zoom, in order.
func (t Template) Keys(zoom float64) []string {
	var keys []string
	s := t.field.Value(zoom)
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			return keys
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			return keys
		}
		keys = append(keys, s[open+1:open+end])
		s = s[open+end+1:]
	}
}

// Expand substitutes every {key} with the feature's tag value. Missing
// tags expand to the empty string; an unterminated brace is literal.
func (t Template) Expand(zoom float64, f Feature) string {
	s := t.field.Value(zoom)
	if !strings.ContainsRune(s, '{') {
		return s
	}

	var b strings.Builder
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			break
		}
		b.WriteString(s[:open])
		if v, ok := lookup(f, s[open+1:open+end]); ok {
			b.WriteString(v.String())
		}
		s = s[open+end+1:]
	}
	b.WriteString(s)
	return b.String()
}

// Transform applies a text-transform mode. Casers keep state, so each
// call gets its own.
func Transform(s, mode string) string {
	switch mode {
	case "uppercase":
		return cases.Upper(language.Und).String(s)
	case "lowercase":
		return cases.Lower(language.Und).String(s)
	}
	return s
}
