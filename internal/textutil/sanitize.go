package textutil

import "strings"

// FileStem converts an identifier such as a quote ID into a lowercase,
// filesystem-safe file stem. Letters and digits are kept, hyphens and
// underscores pass through, and every other rune collapses into a single
// underscore. Empty results become "unnamed".
func FileStem(value string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unnamed"
	}
	return out
}
