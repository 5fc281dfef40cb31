package source

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxTextRunes bounds a single payload; longer text is cut and marked with an ellipsis
const MaxTextRunes = 200

// Sanitize normalises text to NFC, replaces control characters with spaces,
// collapses whitespace runs and trims the ends
func Sanitize(s string) string {
	s = norm.NFC.String(s)

	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	runes := 0
	for _, r := range s {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			space = sb.Len() > 0
			continue
		}
		if r == unicode.ReplacementChar {
			continue
		}
		if space {
			space = false
			// A separator needs room for the rune after it
			if runes+1 >= MaxTextRunes {
				sb.WriteRune('…')
				break
			}
			sb.WriteByte(' ')
			runes++
		}
		if runes == MaxTextRunes {
			sb.WriteRune('…')
			break
		}
		sb.WriteRune(r)
		runes++
	}
	return sb.String()
}
