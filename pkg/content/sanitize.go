package content

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	spacesRe    = regexp.MustCompile(`\s+`)
	blockTagsRe = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/li|/h[1-6])\s*/?>`)
)

// PlainText strips all markup from an HTML fragment and collapses whitespace
func PlainText(fragment string) string {
	if fragment == "" {
		return ""
	}
	// keep a separator where block elements ended, otherwise words glue together
	fragment = blockTagsRe.ReplaceAllString(fragment, " $0")
	text := stripPolicy.Sanitize(fragment)
	text = html.UnescapeString(text)
	return strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
}

// Truncate cuts text to at most n runes, adding an ellipsis when cut
func Truncate(text string, n int) string {
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
