package match

import (
	"strings"
	"unicode"
)

// NormalizeName lower-cases s and removes separators, so "Zone 1",
// "zone_1" and "ZONE-1" all normalize to "zone1".
func NormalizeName(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
