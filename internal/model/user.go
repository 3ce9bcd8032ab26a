package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID
	Username       string
	ActiveAvatarId *uuid.UUID
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type UserResponse struct {
	UserId         uuid.UUID  `json:"userId"`
	Username       string     `json:"username"`
	ActiveAvatarId *uuid.UUID `json:"activeAvatarId,omitempty"`
}
