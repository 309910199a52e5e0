package entity

import (
	"time"
)

// Chatroom is a named channel connections subscribe to. Exactly one row has
// IsGlobal set; it is seeded at startup and cannot be deleted. CreatedBy is
// nil for the global room, otherwise the creating member's user id.
type Chatroom struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	IsGlobal  bool      `gorm:"not null;default:false"`
	CreatedBy *int64
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chatroom) TableName() string {
	return "chatrooms"
}
