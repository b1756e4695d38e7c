package textutil

import (
	"regexp"
	"strings"
)

// nonWordPattern matches runs of characters that cannot appear inside a token.
var nonWordPattern = regexp.MustCompile(`[^a-z0-9']+`)

// Normalize lowercases text, collapses every run of characters other than
// ASCII letters, digits, and apostrophes into a single space, and splits the
// result into tokens. Apostrophes are kept wherever they appear, so "rockin'"
// and a lone "'" are tokens of their own. Empty input yields nil.
func Normalize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	fields := strings.Fields(nonWordPattern.ReplaceAllString(strings.ToLower(text), " "))
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// MatchKey returns the comparison form of a normalized token: the token with
// its apostrophes removed, so "it's" and "its" compare equal. A token made
// only of apostrophes keeps its own form and matches only itself.
func MatchKey(token string) string {
	if !strings.Contains(token, "'") {
		return token
	}
	if key := strings.ReplaceAll(token, "'", ""); key != "" {
		return key
	}
	return token
}

// MatchKeys maps MatchKey over a token sequence.
func MatchKeys(tokens []string) []string {
	keys := make([]string, len(tokens))
	for i, token := range tokens {
		keys[i] = MatchKey(token)
	}
	return keys
}

// Join renders a token run the way matched segments are reported.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
