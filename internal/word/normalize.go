package word

import (
	"regexp"
	"strings"
)

var (
	boundaryPattern  = regexp.MustCompile(`^[^a-z]+|[^a-z]+$`)
	interiorPattern  = regexp.MustCompile(`[^a-z'-]`)
	separatorPattern = regexp.MustCompile(`[\n,/\t ]+`)
)

// Normalize canonicalizes user input into the unique word key: lowercase,
// non-letter boundary runes stripped, interior runes limited to letters,
// apostrophes and hyphens. Returns "" for input with no usable letters.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = boundaryPattern.ReplaceAllString(s, "")
	return interiorPattern.ReplaceAllString(s, "")
}

// SplitWords turns pasted text into an ordered, deduplicated list of
// normalized words. Tokens that normalize to "" are dropped.
func SplitWords(text string) []string {
	raw := strings.ReplaceAll(text, "\r", "\n")

	seen := make(map[string]struct{})
	words := make([]string, 0)
	for _, part := range separatorPattern.Split(raw, -1) {
		w := Normalize(part)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}
