package domain

import "strings"

// NormalizeTag makes clan and player tags comparable: uppercase, leading '#'
// stripped. Idempotent.
func NormalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

// FallbackKey is the accumulator key for participants without a tag. Two
// nameless players sharing a display name will merge under the same key; the
// collision is kept for compatibility with historical totals.
func FallbackKey(name string) string {
	if name == "" {
		name = "?"
	}
	return "NON-" + name
}
