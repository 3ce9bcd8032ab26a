package model

import (
	"time"

	"github.com/google/uuid"
)

type Avatar struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	DataUrl        string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type AvatarResponse struct {
	AvatarId  uuid.UUID `json:"avatarId"`
	DataUrl   string    `json:"dataUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// AvatarBundle is everything needed to resolve an avatar for one user:
// the full avatar set plus the active/default selection.
type AvatarBundle struct {
	Avatars        []Avatar
	ActiveAvatarId *uuid.UUID
}

type AvatarBundleResponse struct {
	Avatars        []AvatarResponse `json:"avatars"`
	ActiveAvatarId *uuid.UUID       `json:"activeAvatarId,omitempty"`
	AvatarDataUrl  string           `json:"avatarDataUrl,omitempty"`
}

// AvatarGlyph is the default identity badge shown when no real avatar image
// is available: the uppercased first character of the username on a
// deterministically colored circle.
type AvatarGlyph struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// AvatarView is the resolved image source for a single content item.
// Exactly one of DataUrl or Glyph is set.
type AvatarView struct {
	DataUrl string       `json:"dataUrl,omitempty"`
	Glyph   *AvatarGlyph `json:"glyph,omitempty"`
}

type AvatarUploadRequest struct {
	DataUrl string `json:"dataUrl"`
}

type AvatarRecentRequest struct {
	AvatarId string `json:"avatarId"`
}

type AvatarRecentsResponse struct {
	Recents []AvatarResponse `json:"recents"`
}
