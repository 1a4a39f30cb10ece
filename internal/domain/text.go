package domain

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun     = regexp.MustCompile(`\s+`)
	nonBreakingSpaces = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2007", " ")
)

// NormalizeText replaces non-breaking spaces, collapses whitespace runs to
// a single space and trims both ends.
func NormalizeText(text string) string {
	text = nonBreakingSpaces.Replace(text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
