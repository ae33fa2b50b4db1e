package label

import (
	"math"
	"strings"
	"unicode/utf8"
)

// lineHeight is the spacing of wrapped lines relative to the pixel size.
const lineHeight = 1.25

// wrap breaks text into lines no wider than limit, using the estimated
// character width cw. Explicit newlines are kept. A word wider than limit
// gets a line of its own. It returns the lines and the widest line width.
func wrap(text string, cw, limit float64) ([]string, float64) {
	var lines []string
	var width float64
	for _, para := range strings.Split(text, "\n") {
		w := float64(utf8.RuneCountInString(para)) * cw
		if w <= limit {
			lines = append(lines, para)
			width = math.Max(width, w)
			continue
		}

		var cur strings.Builder
		var pl float64
		for _, word := range words(para) {
			wl := float64(utf8.RuneCountInString(word)) * cw
			sep := cur.Len() > 0 && !joined(cur.String())
			add := wl
			if sep {
				add += cw
			}
			if cur.Len() > 0 && pl+add > limit {
				lines = append(lines, cur.String())
				width = math.Max(width, pl)
				cur.Reset()
				pl, add, sep = 0, wl, false
			}
			if sep {
				cur.WriteByte(' ')
			}
			cur.WriteString(word)
			pl += add
		}
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			width = math.Max(width, pl)
		}
	}
	return lines, width
}

// words splits on spaces and after '-' and '/', which stay with the
// preceding word.
func words(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		switch r {
		case ' ':
			if start >= 0 {
				out = append(out, s[start:i])
			}
			start = -1
		case '-', '/':
			if start < 0 {
				start = i
			}
			out = append(out, s[start:i+1])
			start = -1
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// joined reports whether the next word continues s without a space.
func joined(s string) bool {
	return strings.HasSuffix(s, "-") || strings.HasSuffix(s, "/")
}
