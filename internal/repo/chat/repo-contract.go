package chat_repo

import (
	"context"

	"github.com/wedsmoker/socialChat/internal/dtos/chat_dto"
	"github.com/wedsmoker/socialChat/internal/entity"
	app_error "github.com/wedsmoker/socialChat/internal/errors"
)

// ChatStoreContract is the persistence boundary of the chat core. Each call
// is atomic: an insert either fully succeeds and is visible to subsequent
// history reads, or fully fails.
type ChatStoreContract interface {
	ListRooms(ctx context.Context) ([]chat_dto.ChatroomSummary, *app_error.AppError)
	FindRoomByID(ctx context.Context, roomID int64) (*entity.Chatroom, *app_error.AppError)
	CreateRoom(ctx context.Context, name string, createdBy int64) (*entity.Chatroom, *app_error.AppError)
	DeleteRoom(ctx context.Context, roomID int64) *app_error.AppError

	ListMessages(ctx context.Context, roomID int64, limit int) ([]chat_dto.ChatMessage, *app_error.AppError)
	CreateMemberMessage(ctx context.Context, roomID, userID int64, body string) (*chat_dto.ChatMessage, *app_error.AppError)
	CreateGuestMessage(ctx context.Context, roomID int64, guestID, guestName, body string) (*chat_dto.ChatMessage, *app_error.AppError)

	// FindMessageOwner returns the author user id of a message in a room, or
	// nil for guest-authored messages.
	FindMessageOwner(ctx context.Context, messageID, roomID int64) (*int64, *app_error.AppError)
	DeleteMessage(ctx context.Context, messageID int64) *app_error.AppError

	IsAdmin(ctx context.Context, userID int64) (bool, *app_error.AppError)
}
