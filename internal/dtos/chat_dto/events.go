package chat_dto

// Wire protocol of the chat websocket. One JSON object per frame, dispatched
// on Type. Unknown types are ignored server-side.

// Client -> server.
const (
	EventJoinChatroom  = "join_chatroom"
	EventLeaveChatroom = "leave_chatroom"
	EventSendMessage   = "send_message"
	EventTyping        = "typing"
	EventStopTyping    = "stop_typing"
	EventDeleteMessage = "delete_message"
)

// Server -> client.
const (
	EventJoinedChatroom  = "joined_chatroom"
	EventNewMessage      = "new_message"
	EventMessageDeleted  = "message_deleted"
	EventUserTyping      = "user_typing"
	EventUserStopTyping  = "user_stop_typing"
	EventUserCountUpdate = "user_count_update"
	EventError           = "error"
)

type IncomingEvent struct {
	Type       string `json:"type"`
	ChatroomID int64  `json:"chatroomId,omitempty"`
	Message    string `json:"message,omitempty"`
	MessageID  int64  `json:"messageId,omitempty"`
}

type OutgoingEvent struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type JoinedChatroomPayload struct {
	ChatroomID   int64  `json:"chatroomId"`
	ChatroomName string `json:"chatroomName"`
}

type MessageDeletedPayload struct {
	MessageID  int64 `json:"messageId"`
	ChatroomID int64 `json:"chatroomId"`
}

type TypingPayload struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	IsGuest  bool   `json:"isGuest"`
}

type UserCountPayload struct {
	UserCount int `json:"userCount"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
