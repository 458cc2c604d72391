package services

import (
	"regexp"
	"strings"
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe lookup key from a human-readable name.
// The derivation is deterministic: lowercased, runs of non-alphanumerics
// collapsed into single hyphens, leading and trailing hyphens trimmed.
func Slugify(name string) string {
	return strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
