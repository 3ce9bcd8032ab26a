package thread

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okorolev/pulseblog/internal/model"
)

func makeComment(id uuid.UUID, parentId *uuid.UUID, content string) model.Comment {
	return model.Comment{
		Id:              id,
		ParentCommentId: parentId,
		Username:        "tester",
		Content:         content,
		CreateDatetime:  time.Now().UTC(),
	}
}

func TestBuildEmpty(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]model.Comment{}))
}

func TestBuildSingleRoot(t *testing.T) {
	id := uuid.New()
	roots := Build([]model.Comment{makeComment(id, nil, "hello")})

	require.Len(t, roots, 1)
	assert.Equal(t, id, roots[0].Id)
	assert.Empty(t, roots[0].Replies)
}

func TestBuildNestedReplies(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	roots := Build([]model.Comment{
		makeComment(a, nil, "root"),
		makeComment(b, &a, "reply"),
		makeComment(c, &b, "reply to reply"),
	})

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, b, roots[0].Replies[0].Id)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, c, roots[0].Replies[0].Replies[0].Id)
}

func TestBuildOrphanDropped(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	missing := uuid.New()

	roots := Build([]model.Comment{
		makeComment(a, nil, "a"),
		makeComment(b, &a, "b"),
		makeComment(c, &missing, "c"),
	})

	// The orphan must not be promoted to root nor linked anywhere.
	require.Len(t, roots, 1)
	assert.Equal(t, a, roots[0].Id)
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, b, roots[0].Replies[0].Id)
	assert.Equal(t, 2, Count(roots))
}

func TestBuildRetainedCountInvariant(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	missing := uuid.New()

	comments := []model.Comment{
		makeComment(a, nil, "a"),
		makeComment(uuid.New(), &a, "r1"),
		makeComment(uuid.New(), &a, "r2"),
		makeComment(b, nil, "b"),
		makeComment(uuid.New(), &missing, "orphan"),
	}

	roots := Build(comments)
	assert.Equal(t, len(comments)-1, Count(roots))
}

func TestBuildRootOrderPreserved(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	comments := make([]model.Comment, 0, len(ids))
	for i, id := range ids {
		comments = append(comments, makeComment(id, nil, string(rune('a'+i))))
	}

	roots := Build(comments)
	require.Len(t, roots, len(ids))
	for i, root := range roots {
		assert.Equal(t, ids[i], root.Id)
	}
}

func TestBuildReplyOrderPreserved(t *testing.T) {
	parent := uuid.New()
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	roots := Build([]model.Comment{
		makeComment(parent, nil, "parent"),
		makeComment(first, &parent, "1"),
		makeComment(second, &parent, "2"),
		makeComment(third, &parent, "3"),
	})

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Replies, 3)
	assert.Equal(t, first, roots[0].Replies[0].Id)
	assert.Equal(t, second, roots[0].Replies[1].Id)
	assert.Equal(t, third, roots[0].Replies[2].Id)
}

func TestBuildReplyArrivesBeforeParent(t *testing.T) {
	parent := uuid.New()
	reply := uuid.New()

	// Linking is keyed by id, so a reply listed before its parent still
	// attaches correctly.
	roots := Build([]model.Comment{
		makeComment(reply, &parent, "early reply"),
		makeComment(parent, nil, "late parent"),
	})

	require.Len(t, roots, 1)
	assert.Equal(t, parent, roots[0].Id)
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, reply, roots[0].Replies[0].Id)
}

func TestBuildCyclicParentsDoNotHang(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	roots := Build([]model.Comment{
		makeComment(a, &b, "a"),
		makeComment(b, &a, "b"),
	})

	// A cycle has no rootless member, so nothing is reachable.
	assert.Empty(t, roots)
	assert.Equal(t, 0, Count(roots))
}

func TestBuildSelfParentDropped(t *testing.T) {
	a := uuid.New()

	roots := Build([]model.Comment{makeComment(a, &a, "self")})
	assert.Empty(t, roots)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	comments := []model.Comment{
		makeComment(a, nil, "a"),
		makeComment(b, &a, "b"),
	}
	snapshot := make([]model.Comment, len(comments))
	copy(snapshot, comments)

	_ = Build(comments)

	assert.Equal(t, snapshot, comments)
}

func TestWalkDepthCap(t *testing.T) {
	// Chain twice as deep as the cap; Walk must stop at MaxDepth.
	comments := make([]model.Comment, 0, MaxDepth*2)
	prev := uuid.New()
	comments = append(comments, makeComment(prev, nil, "root"))
	for i := 1; i < MaxDepth*2; i++ {
		id := uuid.New()
		parent := prev
		comments = append(comments, makeComment(id, &parent, "deep"))
		prev = id
	}

	roots := Build(comments)
	require.Len(t, roots, 1)

	maxSeen := -1
	visited := 0
	Walk(roots, func(_ *model.CommentNode, depth int) {
		visited++
		if depth > maxSeen {
			maxSeen = depth
		}
	})

	assert.Equal(t, MaxDepth, visited)
	assert.Equal(t, MaxDepth-1, maxSeen)
}
