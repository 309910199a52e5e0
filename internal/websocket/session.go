package websocket

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/wedsmoker/socialChat/internal/dtos/chat_dto"
	app_error "github.com/wedsmoker/socialChat/internal/errors"
)

const maxMessageLength = 2000

// handleEvent is the chat session coordinator: one switch over event kind.
// Events from a single connection run here in arrival order; a store call
// suspends only this connection's stream.
func (c *Client) handleEvent(ctx context.Context, ev chat_dto.IncomingEvent) {
	switch ev.Type {
	case chat_dto.EventJoinChatroom:
		c.handleJoin(ctx, ev.ChatroomID)
	case chat_dto.EventLeaveChatroom:
		c.handleLeave(ev.ChatroomID)
	case chat_dto.EventSendMessage:
		c.handleSend(ctx, ev.ChatroomID, ev.Message)
	case chat_dto.EventTyping:
		c.handleTyping(ev.ChatroomID, true)
	case chat_dto.EventStopTyping:
		c.handleTyping(ev.ChatroomID, false)
	case chat_dto.EventDeleteMessage:
		c.handleDelete(ctx, ev.MessageID, ev.ChatroomID)
	default:
		log.Debug().Str("socketID", c.ID).Str("type", ev.Type).Msg("ws: unknown event type, ignoring")
	}
}

func (c *Client) handleJoin(ctx context.Context, roomID int64) {
	room, appErr := c.store.FindRoomByID(ctx, roomID)
	if appErr != nil {
		if app_error.IsNotFound(appErr) {
			c.emitError("Chatroom not found")
		} else {
			c.emitError("Failed to join chatroom")
		}
		return
	}

	prev := c.hub.Join(room.ID, c)
	c.emit(NewEvent(chat_dto.EventJoinedChatroom, chat_dto.JoinedChatroomPayload{
		ChatroomID:   room.ID,
		ChatroomName: room.Name,
	}))

	c.hub.BroadcastPresence(room.ID)
	if prev != 0 && prev != room.ID {
		c.hub.BroadcastPresence(prev)
	}
}

func (c *Client) handleLeave(roomID int64) {
	c.hub.Leave(roomID, c)
	c.hub.BroadcastPresence(roomID)
}

func (c *Client) handleSend(ctx context.Context, roomID int64, body string) {
	if c.hub.CurrentRoom(c) != roomID {
		c.emitError("Join the chatroom before sending messages")
		return
	}

	if strings.TrimSpace(body) == "" {
		c.emitError("Message cannot be empty")
		return
	}
	// character limit, not bytes: multibyte text counts per rune
	if utf8.RuneCountInString(body) > maxMessageLength {
		c.emitError("Message exceeds 2000 characters")
		return
	}

	switch c.throttle.Admit(c.ID, time.Now()) {
	case DeniedCooldown:
		c.emitError("Please wait a moment before sending another message")
		return
	case DeniedBurst:
		c.emitError("Too many messages. Please slow down.")
		return
	}

	var (
		msg    *chat_dto.ChatMessage
		appErr *app_error.AppError
	)
	if c.Identity.IsGuest() {
		msg, appErr = c.store.CreateGuestMessage(ctx, roomID, c.Identity.GuestID, c.Identity.DisplayName, body)
	} else {
		msg, appErr = c.store.CreateMemberMessage(ctx, roomID, c.Identity.UserID, body)
	}
	if appErr != nil {
		log.Error().Str("socketID", c.ID).Str("user", c.Identity.DisplayName).Int64("roomID", roomID).Msg("ws: message persist failed")
		c.emitError("Failed to send message")
		return
	}

	c.hub.BroadcastToRoom(roomID, NewEvent(chat_dto.EventNewMessage, msg))
}

func (c *Client) handleTyping(roomID int64, started bool) {
	if c.hub.CurrentRoom(c) != roomID {
		return
	}

	eventType := chat_dto.EventUserTyping
	if !started {
		eventType = chat_dto.EventUserStopTyping
	}
	c.hub.BroadcastToRoomExcept(roomID, NewEvent(eventType, chat_dto.TypingPayload{
		Username: c.Identity.DisplayName,
		UserID:   c.Identity.Key(),
		IsGuest:  c.Identity.IsGuest(),
	}), c)
}

func (c *Client) handleDelete(ctx context.Context, messageID, roomID int64) {
	ownerID, appErr := c.store.FindMessageOwner(ctx, messageID, roomID)
	if appErr != nil {
		if app_error.IsNotFound(appErr) {
			c.emitError("Message not found")
		} else {
			c.emitError("Failed to delete message")
		}
		return
	}

	if !c.mayDelete(ctx, ownerID) {
		log.Warn().Str("socketID", c.ID).Str("user", c.Identity.Key()).Int64("messageID", messageID).Msg("ws: unauthorized delete attempt")
		c.emitError("Unauthorized to delete this message")
		return
	}

	if appErr := c.store.DeleteMessage(ctx, messageID); appErr != nil {
		c.emitError("Failed to delete message")
		return
	}

	c.hub.BroadcastToRoom(roomID, NewEvent(chat_dto.EventMessageDeleted, chat_dto.MessageDeletedPayload{
		MessageID:  messageID,
		ChatroomID: roomID,
	}))
}

// mayDelete: the author may delete their own message, and any member with
// the admin capability may delete anyone's. Guests own no delete affordance.
func (c *Client) mayDelete(ctx context.Context, ownerID *int64) bool {
	if c.Identity.IsGuest() {
		return false
	}
	if ownerID != nil && *ownerID == c.Identity.UserID {
		return true
	}
	if c.isAdmin == nil {
		admin, appErr := c.store.IsAdmin(ctx, c.Identity.UserID)
		if appErr != nil {
			return false
		}
		c.isAdmin = &admin
	}
	return *c.isAdmin
}
