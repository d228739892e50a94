package ai

import (
	"regexp"
	"strings"
)

var (
	fenceRe      = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
	hugeNumberRe = regexp.MustCompile(`:\s*(\d{16,})`)
)

// stripMarkdownFences removes a surrounding ```json code fence if the model
// wrapped its output in one despite the JSON response mode.
func stripMarkdownFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// sanitizeJSONNumbers replaces numeric literals too large for int64 with 0.
// The model occasionally emits garbage digit runs that would otherwise make
// the whole document unparseable.
func sanitizeJSONNumbers(jsonStr string) string {
	return hugeNumberRe.ReplaceAllString(jsonStr, ": 0")
}
