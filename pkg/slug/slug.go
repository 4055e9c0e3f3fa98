package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns free text into a lowercase, dash-separated ASCII slug.
// Example: "Priya  Sharma (CV).pdf" -> "priya-sharma-cv-pdf"
func Make(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Truncate shortens a slug to at most max bytes without leaving a trailing dash
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], "-")
}
