package chat_dto

import "time"

// ChatroomSummary is the room row enriched with the creator's username, as
// listed by GET /api/chatrooms.
type ChatroomSummary struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	IsGlobal        bool      `json:"isGlobal"`
	CreatedBy       *int64    `json:"createdBy"`
	CreatorUsername *string   `json:"creatorUsername"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ChatMessage is a persisted message with author display fields resolved.
// It is both the history item of GET /api/chatrooms/{id}/messages and the
// payload of the new_message event.
type ChatMessage struct {
	ID             int64     `json:"id"`
	ChatroomID     int64     `json:"chatroomId"`
	Message        string    `json:"message"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	IsGuest        bool      `json:"isGuest"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ChatroomCreatedResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsGlobal  bool      `json:"isGlobal"`
	CreatedBy *int64    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
