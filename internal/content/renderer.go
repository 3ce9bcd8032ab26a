// Package content renders user-authored Markdown into sanitized HTML.
//
// Pipeline: normalize -> parse (GFM, raw HTML passthrough) -> mention
// tagging -> link hardening -> sanitize. Sanitization always runs last, so
// embedded raw HTML is never visible to a reader before the allow-list has
// been applied. Rendering never fails: malformed input degrades to the
// parser's best effort, and the policy is fail-closed.
package content

import (
	"bytes"
	stdhtml "html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/okorolev/pulseblog/internal/model"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&mentionTransformer{}, 500),
			),
		),
		goldmark.WithRendererOptions(
			// Raw HTML flows through to the sanitizer instead of being
			// escaped by the parser.
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newLinkRenderer(html.WithUnsafe()), 500),
			),
		),
	)

	return &Renderer{
		md:     md,
		policy: newPolicy(),
	}
}

// Render produces sanitized markup for src. With plainText set the Markdown
// stages are skipped entirely: the normalized text is emitted escaped but
// otherwise verbatim, and the caller is expected to lay it out with
// whitespace preserved. The plain-text decision belongs to the caller (it is
// driven by a configured post-id allow-list, not by anything in the text).
func (r *Renderer) Render(src string, plainText bool) model.RenderedContent {
	normalized := Normalize(src)

	if plainText {
		return model.RenderedContent{
			Html:      stdhtml.EscapeString(normalized),
			PlainText: true,
		}
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(normalized), &buf); err != nil {
		// Convert only errors on writer failure, which bytes.Buffer cannot
		// produce. Degrade to sanitized source text all the same.
		return model.RenderedContent{Html: r.policy.Sanitize(normalized)}
	}

	return model.RenderedContent{Html: r.policy.Sanitize(buf.String())}
}
