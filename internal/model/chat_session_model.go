package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title     string         `gorm:"type:text;not null"`
	Messages  datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
