package content

import (
	"regexp"
	"strings"
)

// U+00AC was historically written into content rows by a corrupted import
// job. It carries no meaning and must never reach the renderer.
const corruptionMarker = "¬"

var newlineRuns = regexp.MustCompile(`\n{3,}`)

// Normalize prepares raw user text for rendering: the corruption marker is
// stripped and runs of three or more newlines collapse to exactly two, so
// untrusted input cannot produce unbounded vertical whitespace while
// paragraph breaks survive.
func Normalize(src string) string {
	cleaned := strings.ReplaceAll(src, corruptionMarker, "")
	return newlineRuns.ReplaceAllString(cleaned, "\n\n")
}
