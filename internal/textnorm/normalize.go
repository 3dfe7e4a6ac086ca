// Package textnorm provides the primitive normalizers used across the
// pipeline: name canonicalization, slug creation, city resolution, and
// listing-date parsing. All functions are pure.
package textnorm

import (
	"strings"
	"unicode"
)

// CollapseWhitespace replaces runs of whitespace with single spaces and trims.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName produces the case/punctuation/whitespace-insensitive form of a
// name used for entity matching and content addressing. Letters and digits are
// kept, everything else becomes a word boundary.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)

			lastSpace = false

			continue
		}

		if !lastSpace {
			b.WriteRune(' ')

			lastSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}

// Slugify converts a display name into a URL-safe slug.
func Slugify(s string) string {
	return strings.ReplaceAll(NormalizeName(s), " ", "-")
}

// TitleCase uppercases the first letter of each word, lowercasing the rest.
// Used for city display names, not artist names, which keep their source casing.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}

	return strings.Join(words, " ")
}

// CanonicalCity resolves a raw city token against the alias table
// (e.g. "sf" -> "San Francisco") and title-cases unknown cities.
// Alias keys are matched on the normalized form.
func CanonicalCity(raw string, aliases map[string]string) string {
	norm := NormalizeName(raw)
	if norm == "" {
		return ""
	}

	if canonical, ok := aliases[norm]; ok {
		return canonical
	}

	return TitleCase(norm)
}
