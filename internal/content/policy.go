package content

import "github.com/microcosm-cc/bluemonday"

// newPolicy builds the sanitization allow-list applied to every rendered
// document. Anything not listed here is dropped, including raw HTML that
// goldmark passed through. There is no escape hatch.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "b", "em", "i", "del", "s",
		"blockquote", "pre", "code",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
	)

	p.AllowAttrs("href", "title", "class", "target", "rel").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	p.AllowAttrs("start").OnElements("ol")

	// goldmark's table extension emits cell alignment either way depending
	// on configuration.
	p.AllowAttrs("align").OnElements("th", "td")
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right").OnElements("th", "td")

	p.AllowImages()
	p.AllowDataURIImages()

	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)

	return p
}
