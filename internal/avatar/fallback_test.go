package avatar

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackLabel(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"abc123", "AB"},
		{"hello", "HE"},
		{"x", "XA"},
		{"7", "7A"},
		{"a-b_c!d", "AB"},
		{"--", "AV"},
		{"!!!", "AV"},
		{"", "AV"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FallbackLabel(c.id), "id=%q", c.id)
	}
}

func TestFallbackLabelIsUppercase(t *testing.T) {
	assert.Equal(t, "HE", FallbackLabel("hello"))
	assert.Equal(t, "HE", FallbackLabel("HELLO"))
}

func TestFallbackDataURLStructure(t *testing.T) {
	dataUrl := FallbackDataURL("test")
	require.True(t, strings.HasPrefix(dataUrl, "data:image/svg+xml;utf8,"))

	decoded, err := url.PathUnescape(strings.TrimPrefix(dataUrl, "data:image/svg+xml;utf8,"))
	require.NoError(t, err)

	assert.Contains(t, decoded, "<svg")
	assert.Contains(t, decoded, "</svg>")
	assert.Contains(t, decoded, `width="64"`)
	assert.Contains(t, decoded, `height="64"`)
	assert.Contains(t, decoded, "<rect")
	assert.Contains(t, decoded, "<text")
	assert.Contains(t, decoded, "TE")
}

func TestFallbackDataURLDeterministic(t *testing.T) {
	assert.Equal(t, FallbackDataURL("abc"), FallbackDataURL("abc"))
}

func TestGlyph(t *testing.T) {
	g := Glyph("alice")
	assert.Equal(t, "A", g.Label)
	assert.NotEmpty(t, g.Color)

	assert.Equal(t, "?", Glyph("").Label)

	// First rune, not first byte.
	assert.Equal(t, "Ж", Glyph("жора").Label)
}

func TestGlyphColorDeterministic(t *testing.T) {
	assert.Equal(t, Glyph("alice").Color, Glyph("alice").Color)
}
