package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	Id              uuid.UUID
	PostId          uuid.UUID
	ParentCommentId *uuid.UUID
	UserId          uuid.UUID
	Username        string
	Content         string
	CommentAvatarId *uuid.UUID
	CreateDatetime  time.Time
	UpdateDatetime  time.Time
}

// CommentNode is a Comment plus its ordered replies. Built fresh from the
// flat collection on every read, never persisted.
type CommentNode struct {
	Comment
	Replies []*CommentNode
}

type CommentCreateRequest struct {
	Content         string  `json:"content"`
	ParentCommentId *string `json:"parentCommentId,omitempty"`
	CommentAvatarId *string `json:"commentAvatarId,omitempty"`
}

type CommentView struct {
	CommentId       uuid.UUID       `json:"commentId"`
	ParentCommentId *uuid.UUID      `json:"parentCommentId,omitempty"`
	UserId          uuid.UUID       `json:"userId"`
	Username        string          `json:"username"`
	Content         RenderedContent `json:"content"`
	Avatar          AvatarView      `json:"avatar"`
	CreatedAt       time.Time       `json:"createdAt"`
	Replies         []CommentView   `json:"replies"`
}

type CommentThreadResponse struct {
	Comments []CommentView `json:"comments"`
	Total    int           `json:"total"`
}
