package content

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// UserPathPrefix is the profile path mention links point at.
const UserPathPrefix = "/users/"

var mentionPattern = regexp.MustCompile(`@\w+`)

// mentionTransformer rewrites @name tokens in paragraph-level text nodes
// into profile links. Tokens must start at a word boundary: "x@y" is left
// alone, "hi @y" is tagged.
type mentionTransformer struct{}

func (t *mentionTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		paragraph, ok := n.(*ast.Paragraph)
		if !ok {
			return ast.WalkContinue, nil
		}

		child := paragraph.FirstChild()
		for child != nil {
			next := child.NextSibling()
			if textNode, isText := child.(*ast.Text); isText {
				tagMentions(paragraph, textNode, source)
			}
			child = next
		}

		// Children are either untouched or freshly built mention links.
		return ast.WalkSkipChildren, nil
	})
}

func tagMentions(parent ast.Node, textNode *ast.Text, source []byte) {
	value := textNode.Segment.Value(source)

	var replacement []ast.Node
	last := 0
	for _, m := range mentionPattern.FindAllIndex(value, -1) {
		if m[0] > 0 && isWordByte(value[m[0]-1]) {
			continue
		}

		if m[0] > last {
			replacement = append(replacement, ast.NewString(value[last:m[0]]))
		}

		name := string(value[m[0]+1 : m[1]])
		link := ast.NewLink()
		link.Destination = []byte(UserPathPrefix + name)
		link.SetAttributeString("class", []byte("mention"))
		link.AppendChild(link, ast.NewString(value[m[0]:m[1]]))
		replacement = append(replacement, link)

		last = m[1]
	}

	if len(replacement) == 0 {
		return
	}

	if last < len(value) {
		replacement = append(replacement, ast.NewString(value[last:]))
	}

	for _, n := range replacement {
		parent.InsertBefore(parent, textNode, n)
	}
	parent.RemoveChild(parent, textNode)
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
