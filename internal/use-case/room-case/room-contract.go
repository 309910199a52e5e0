package room_service

import (
	"context"

	"github.com/wedsmoker/socialChat/internal/dtos/chat_dto"
	app_error "github.com/wedsmoker/socialChat/internal/errors"
	"github.com/wedsmoker/socialChat/internal/identity"
)

// RoomServiceContract is the room administration and history surface consumed
// by the REST handlers. Authorization lives here: member-only creation,
// creator-only deletion, author-only REST message deletion.
type RoomServiceContract interface {
	ListRooms(ctx context.Context) ([]chat_dto.ChatroomSummary, *app_error.AppError)
	GetMessages(ctx context.Context, roomID int64, limit int) ([]chat_dto.ChatMessage, *app_error.AppError)
	CreateRoom(ctx context.Context, ident identity.Identity, name string) (*chat_dto.ChatroomCreatedResponse, *app_error.AppError)
	DeleteRoom(ctx context.Context, ident identity.Identity, roomID int64) *app_error.AppError
	DeleteMessage(ctx context.Context, ident identity.Identity, roomID, messageID int64) *app_error.AppError
}
