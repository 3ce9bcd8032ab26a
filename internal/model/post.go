package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Id             uuid.UUID
	AuthorId       uuid.UUID
	Username       string
	Title          string
	Content        string
	Tags           []string
	PostAvatarId   *uuid.UUID
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type PostCreateRequest struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	PostAvatarId *string  `json:"postAvatarId,omitempty"`
}

type PostUpdateRequest struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	PostAvatarId *string  `json:"postAvatarId,omitempty"`
}

type PostView struct {
	PostId    uuid.UUID       `json:"postId"`
	UserId    uuid.UUID       `json:"userId"`
	Username  string          `json:"username"`
	Title     string          `json:"title"`
	Content   RenderedContent `json:"content"`
	Tags      []string        `json:"tags"`
	Avatar    AvatarView      `json:"avatar"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type PostListResponse struct {
	Data []PostView `json:"data"`
	Page struct {
		NextCursor string `json:"nextCursor,omitempty"`
	} `json:"page"`
}

type PostCursor struct {
	Id             uuid.UUID `json:"id"`
	CreateDatetime time.Time `json:"createDatetime"`
}
