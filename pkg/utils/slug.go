package utils

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify converts a display name such as "Wash & Fold" into "wash-fold"
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = spaceRuns.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
