// Package avatar resolves a renderable identity image for every post and
// comment: an explicitly selected avatar, the author's active avatar, or a
// deterministic fallback when neither is available.
package avatar

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
	"unicode"
)

// Shown when an id yields no usable characters at all.
const defaultFallbackLabel = "AV"

// Single usable character gets padded with this filler.
const fallbackFiller = 'A'

var palette = [...]string{
	"#2563eb",
	"#7c3aed",
	"#db2777",
	"#dc2626",
	"#ea580c",
	"#ca8a04",
	"#16a34a",
	"#0d9488",
}

// FallbackLabel derives a stable two-character label from an id: the first
// two alphanumeric characters uppercased, padded if only one exists, or the
// fixed constant when the id is empty or has no alphanumerics.
func FallbackLabel(id string) string {
	var letters []rune
	for _, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		letters = append(letters, unicode.ToUpper(r))
		if len(letters) == 2 {
			break
		}
	}

	switch len(letters) {
	case 0:
		return defaultFallbackLabel
	case 1:
		return string(letters[0]) + string(fallbackFiller)
	default:
		return string(letters)
	}
}

// FallbackDataURL builds a self-contained 64x64 SVG identicon for an id,
// usable anywhere a real avatar data URL would be. Same id, same image.
func FallbackDataURL(id string) string {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64"><rect width="64" height="64" rx="32" fill="%s"/><text x="50%%" y="50%%" dy=".35em" text-anchor="middle" font-family="sans-serif" font-size="24" font-weight="bold" fill="#ffffff">%s</text></svg>`,
		paletteColor(id), FallbackLabel(id),
	)
	return "data:image/svg+xml;utf8," + url.PathEscape(svg)
}

func paletteColor(seed string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return palette[h.Sum32()%uint32(len(palette))]
}

func glyphLabel(username string) string {
	for _, r := range username {
		return strings.ToUpper(string(r))
	}
	return "?"
}
