package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsCorruptionMarker(t *testing.T) {
	assert.Equal(t, "Helloworld", Normalize("Hello¬world"))
	assert.Equal(t, "clean", Normalize("clean"))
}

func TestNormalizeCollapsesNewlineRuns(t *testing.T) {
	assert.Equal(t, "a\n\nb", Normalize("a\n\n\n\nb"))
	assert.Equal(t, "a\n\nb\n\nc", Normalize("a\n\n\nb\n\n\n\n\n\nc"))
	// Exactly two newlines stay untouched.
	assert.Equal(t, "a\n\nb", Normalize("a\n\nb"))
	assert.NotContains(t, Normalize("x\n\n\n\n\n\ny"), "\n\n\n")
}

func TestRenderMarkdownBasics(t *testing.T) {
	r := NewRenderer()

	out := r.Render("**bold text**", false)
	assert.False(t, out.PlainText)
	assert.Contains(t, out.Html, "<strong>bold text</strong>")

	out = r.Render("*italic*", false)
	assert.Contains(t, out.Html, "<em>italic</em>")
}

func TestRenderBoldWithMention(t *testing.T) {
	r := NewRenderer()

	out := r.Render("**bold** @alice", false)
	assert.Contains(t, out.Html, "<strong>bold</strong>")
	assert.Contains(t, out.Html, `href="/users/alice"`)
	assert.Contains(t, out.Html, `class="mention"`)
	assert.Contains(t, out.Html, "@alice</a>")
}

func TestRenderMultipleMentions(t *testing.T) {
	r := NewRenderer()

	out := r.Render("hi @user1 and @user2", false)
	assert.Contains(t, out.Html, `href="/users/user1"`)
	assert.Contains(t, out.Html, `href="/users/user2"`)
}

func TestRenderMentionRequiresTokenBoundary(t *testing.T) {
	r := NewRenderer()

	// "@2x" is preceded by a word character, so it is not a mention.
	out := r.Render("price@2x", false)
	assert.NotContains(t, out.Html, "/users/")
}

func TestRenderMentionAtStartOfLine(t *testing.T) {
	r := NewRenderer()

	out := r.Render("@bob hello", false)
	assert.Contains(t, out.Html, `href="/users/bob"`)
}

func TestRenderStripsScript(t *testing.T) {
	r := NewRenderer()

	out := r.Render("<script>alert(1)</script>safe", false)
	assert.NotContains(t, out.Html, "<script")
	assert.NotContains(t, out.Html, "alert(1)")
	assert.Contains(t, out.Html, "safe")
}

func TestRenderStripsEventHandlers(t *testing.T) {
	r := NewRenderer()

	out := r.Render(`<div onclick="alert(1)">Click me</div>`, false)
	assert.NotContains(t, out.Html, "onclick")
	assert.Contains(t, out.Html, "Click me")
}

func TestRenderStripsJavascriptHref(t *testing.T) {
	r := NewRenderer()

	out := r.Render(`[x](javascript:alert(1))`, false)
	assert.NotContains(t, out.Html, "javascript:")
}

func TestRenderHardensEveryLink(t *testing.T) {
	r := NewRenderer()

	out := r.Render("[link](https://example.com)", false)
	assert.Contains(t, out.Html, `href="https://example.com"`)
	assert.Contains(t, out.Html, `target="_blank"`)
	assert.Contains(t, out.Html, `rel="noopener noreferrer"`)

	// Autolinked URLs get the same treatment.
	out = r.Render("visit https://example.com today", false)
	require.Contains(t, out.Html, "<a")
	assert.Contains(t, out.Html, `target="_blank"`)
	assert.Contains(t, out.Html, `rel="noopener noreferrer"`)

	// As do mention links.
	out = r.Render("ping @carol", false)
	assert.Contains(t, out.Html, `target="_blank"`)
	assert.Contains(t, out.Html, `rel="noopener noreferrer"`)
}

func TestRenderGFMStrikethrough(t *testing.T) {
	r := NewRenderer()

	out := r.Render("~~deleted~~", false)
	assert.Contains(t, out.Html, "<del>deleted</del>")
}

func TestRenderGFMTable(t *testing.T) {
	r := NewRenderer()

	src := strings.Join([]string{
		"| Header 1 | Header 2 |",
		"|----------|----------|",
		"| Cell 1   | Cell 2   |",
	}, "\n")

	out := r.Render(src, false)
	assert.Contains(t, out.Html, "<table>")
	assert.Contains(t, out.Html, "Header 1")
	assert.Contains(t, out.Html, "Cell 1")
}

func TestRenderPlainTextOverride(t *testing.T) {
	r := NewRenderer()

	out := r.Render("**This should not be bold**", true)
	assert.True(t, out.PlainText)
	assert.Contains(t, out.Html, "**This should not be bold**")
	assert.NotContains(t, out.Html, "<strong>")
}

func TestRenderPlainTextEscapesHTML(t *testing.T) {
	r := NewRenderer()

	out := r.Render("<script>alert(1)</script>", true)
	assert.NotContains(t, out.Html, "<script>")
	assert.Contains(t, out.Html, "&lt;script&gt;")
}

func TestRenderPlainTextKeepsWhitespace(t *testing.T) {
	r := NewRenderer()

	out := r.Render("line one\nline two", true)
	assert.Equal(t, "line one\nline two", out.Html)
}

func TestRenderNormalizesBeforeParsing(t *testing.T) {
	r := NewRenderer()

	out := r.Render("Hello¬world", false)
	assert.Contains(t, out.Html, "Helloworld")
	assert.NotContains(t, out.Html, "¬")
}

func TestRenderNeverPanicsOnGarbage(t *testing.T) {
	r := NewRenderer()

	inputs := []string{
		"",
		"\n\n\n\n\n",
		"[unclosed](",
		"****",
		"<<<<>>>>",
		"| broken | table",
		strings.Repeat("> ", 200) + "deep quote",
	}

	for _, src := range inputs {
		assert.NotPanics(t, func() {
			_ = r.Render(src, false)
		})
	}
}
