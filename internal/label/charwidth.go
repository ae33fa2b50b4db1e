package label

import (
	"unicode"
	"unicode/utf8"

	"github.com/go-text/typesetting/language"
)

// Width ratios relative to the pixel size.
const (
	ratioWide       = 1.0
	ratioGreekUpper = 0.80
	ratioGreek      = 0.73
	ratioLatinUpper = 0.73
	ratioLatin      = 0.63

	boldFactor   = 1.1
	italicFactor = 0.9
)

// avgCharWidth estimates the advance of one character of text. The script
// is taken from the first rune: East Asian text (U+2E80 and above) is
// square, Greek and Cyrillic run wider than Latin.
func avgCharWidth(text string, f Font) float64 {
	r, _ := utf8.DecodeRuneInString(text)
	return charRatio(r, isUpper(text)) * styleFactor(f) * f.Size
}

// runeWidth estimates the advance of a single rune.
func runeWidth(r rune, f Font) float64 {
	return charRatio(r, unicode.IsUpper(r)) * styleFactor(f) * f.Size
}

func charRatio(r rune, upper bool) float64 {
	if r >= 0x2E80 {
		return ratioWide
	}
	switch language.LookupScript(r) {
	case language.Greek, language.Cyrillic:
		if upper {
			return ratioGreekUpper
		}
		return ratioGreek
	}
	if upper {
		return ratioLatinUpper
	}
	return ratioLatin
}

func styleFactor(f Font) float64 {
	k := 1.0
	if f.Bold {
		k *= boldFactor
	}
	if f.Italic {
		k *= italicFactor
	}
	return k
}

// isUpper reports whether text has letters and all of them are upper case.
func isUpper(text string) bool {
	letters := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters = true
		}
	}
	return letters
}
