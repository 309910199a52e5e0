package entity

import (
	"time"
)

// User rows are owned by the auth/profile CRUD layer. The chat core only
// reads them to resolve display fields and the admin capability.
type User struct {
	ID             int64     `gorm:"primaryKey"`
	Username       string    `gorm:"uniqueIndex;not null"`
	ProfilePicture *string
	IsAdmin        bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
