// Package thread reconstructs nested comment trees from the flat comment
// collections the repository layer returns.
package thread

import (
	"github.com/google/uuid"

	"github.com/okorolev/pulseblog/internal/model"
)

// MaxDepth bounds tree traversal. The two-pass builder itself cannot loop on
// cyclic parent references, but anything walking the resulting tree could, so
// Walk refuses to descend past this depth.
const MaxDepth = 64

// Build turns a flat comment collection into a sequence of root nodes, each
// recursively holding its replies. Input order is preserved both for roots
// and for the replies of every parent. A comment whose parent id does not
// resolve within the same collection is an orphan: it is dropped entirely,
// not promoted to root. Build never fails and never mutates its input.
func Build(comments []model.Comment) []*model.CommentNode {
	nodes := make(map[uuid.UUID]*model.CommentNode, len(comments))
	for _, comment := range comments {
		nodes[comment.Id] = &model.CommentNode{Comment: comment}
	}

	roots := make([]*model.CommentNode, 0, len(comments))
	for _, comment := range comments {
		node := nodes[comment.Id]
		if comment.ParentCommentId == nil {
			roots = append(roots, node)
			continue
		}

		parent, ok := nodes[*comment.ParentCommentId]
		if !ok {
			// Orphan: dangling parent reference, drop silently.
			continue
		}

		parent.Replies = append(parent.Replies, node)
	}

	return roots
}

// Count reports the number of nodes reachable from roots within MaxDepth.
func Count(roots []*model.CommentNode) int {
	total := 0
	Walk(roots, func(*model.CommentNode, int) {
		total++
	})
	return total
}

// Walk visits every node reachable from roots in depth-first order, calling
// fn with the node and its depth (roots are depth 0). Descent stops at
// MaxDepth so corrupted self-referential data cannot hang the caller.
func Walk(roots []*model.CommentNode, fn func(node *model.CommentNode, depth int)) {
	for _, root := range roots {
		walk(root, 0, fn)
	}
}

func walk(node *model.CommentNode, depth int, fn func(node *model.CommentNode, depth int)) {
	if depth >= MaxDepth {
		return
	}

	fn(node, depth)
	for _, reply := range node.Replies {
		walk(reply, depth+1, fn)
	}
}
