// Package textutil provides text normalization helpers, primarily the slug
// form used to build sales URLs from title display names.
package textutil

import (
	"regexp"
	"strings"
)

// slugStripPattern matches runs of characters outside [a-z0-9].
var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name to its URL-safe slug: lowercased, every run
// of characters outside [a-z0-9] collapsed to a single hyphen, leading and
// trailing hyphens stripped. The mapping is pure; the same name always yields
// the same slug.
func Slugify(name string) string {
	lowered := strings.ToLower(name)
	hyphenated := slugStripPattern.ReplaceAllString(lowered, "-")
	return strings.Trim(hyphenated, "-")
}
