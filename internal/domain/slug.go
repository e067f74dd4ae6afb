package domain

import (
	"strings"
	"unicode"
)

// latinFold maps accented characters common in Spanish titles to their
// ASCII equivalents so slugs stay URL-safe.
var latinFold = map[rune]string{
	'á': "a", 'é': "e", 'í': "i", 'ó': "o", 'ú': "u", 'ü': "u", 'ñ': "n",
	'Á': "a", 'É': "e", 'Í': "i", 'Ó': "o", 'Ú': "u", 'Ü': "u", 'Ñ': "n",
}

// Slugify derives a URL slug from a title: lowercase, accents folded,
// non-alphanumeric runs collapsed to single hyphens, edges trimmed.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range s {
		if folded, ok := latinFold[r]; ok {
			b.WriteString(folded)
			lastHyphen = false
			continue
		}
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII:
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		case unicode.IsDigit(r):
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
