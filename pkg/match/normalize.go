package match

import (
	"strings"
	"unicode"
)

// defaultNormalize trims whitespace and strips characters outside the script
// ranges item names use: Han ideographs plus ASCII letters and digits (names
// like "G10" mix scripts). Everything else is recognizer noise.
func defaultNormalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.TrimSpace(s) {
		if isCatalogRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isCatalogRune(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	return unicode.Is(unicode.Han, r)
}

// normalize applies the configured normalizer, falling back to the default.
func (o Options) normalize(s string) string {
	if o.Normalizer != nil {
		return strings.TrimSpace(o.Normalizer(s))
	}
	return defaultNormalize(s)
}
