package entity

import (
	"time"
)

// ChatMessage is immutable once created except for hard deletion. UserID and
// the guest fields are mutually exclusive per row: member-authored rows carry
// UserID, guest-authored rows carry GuestID/GuestName.
type ChatMessage struct {
	ID         int64   `gorm:"primaryKey"`
	ChatroomID int64   `gorm:"not null;index"`
	UserID     *int64  `gorm:"index"`
	GuestID    *string
	GuestName  *string
	Message    string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
