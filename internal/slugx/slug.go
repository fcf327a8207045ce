// Package slugx derives URL slugs from titles. The normalization matches the
// editing surface's expectations: lowercase ASCII words joined by single
// hyphens, everything else stripped.
package slugx

import (
	"strings"
	"unicode"
)

// Make converts a title into its canonical slug. "Max Wins Again!" becomes
// "max-wins-again". Diacritics on common Latin letters are folded to their
// base letter; any remaining non-alphanumeric run collapses to one hyphen.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		r = foldRune(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// foldRune maps accented Latin letters onto plain ASCII so driver names like
// "Pérez" and "Hülkenberg" slug cleanly.
func foldRune(r rune) rune {
	if r < unicode.MaxASCII {
		return r
	}
	switch r {
	case 'á', 'à', 'â', 'ä', 'ã', 'å':
		return 'a'
	case 'é', 'è', 'ê', 'ë':
		return 'e'
	case 'í', 'ì', 'î', 'ï':
		return 'i'
	case 'ó', 'ò', 'ô', 'ö', 'õ', 'ø':
		return 'o'
	case 'ú', 'ù', 'û', 'ü':
		return 'u'
	case 'ý', 'ÿ':
		return 'y'
	case 'ñ':
		return 'n'
	case 'ç':
		return 'c'
	case 'ß':
		return 's'
	}
	return r
}
