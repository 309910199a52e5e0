package room_service

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/wedsmoker/socialChat/config"
	"github.com/wedsmoker/socialChat/internal/dtos/chat_dto"
	app_error "github.com/wedsmoker/socialChat/internal/errors"
	"github.com/wedsmoker/socialChat/internal/identity"
	chat_repo "github.com/wedsmoker/socialChat/internal/repo/chat"
)

const (
	defaultHistoryLimit = 100
	maxRoomNameLength   = 100
)

type RoomService struct {
	Store chat_repo.ChatStoreContract
}

func NewRoomService(store chat_repo.ChatStoreContract) RoomServiceContract {
	return &RoomService{Store: store}
}

func (s *RoomService) ListRooms(ctx context.Context) ([]chat_dto.ChatroomSummary, *app_error.AppError) {
	return s.Store.ListRooms(ctx)
}

func (s *RoomService) GetMessages(ctx context.Context, roomID int64, limit int) ([]chat_dto.ChatMessage, *app_error.AppError) {
	if _, appErr := s.Store.FindRoomByID(ctx, roomID); appErr != nil {
		return nil, appErr
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
		if config.Conf != nil && config.Conf.CHAT.HistoryLimit > 0 {
			limit = config.Conf.CHAT.HistoryLimit
		}
	}
	return s.Store.ListMessages(ctx, roomID, limit)
}

func (s *RoomService) CreateRoom(ctx context.Context, ident identity.Identity, name string) (*chat_dto.ChatroomCreatedResponse, *app_error.AppError) {
	if ident.IsGuest() {
		return nil, app_error.NewAppError(http.StatusUnauthorized, "Unauthorized. Please log in.", "auth")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, app_error.BadRequest("Chatroom name is required", "name")
	}
	if utf8.RuneCountInString(name) > maxRoomNameLength {
		return nil, app_error.BadRequest("Chatroom name exceeds 100 characters", "name")
	}

	room, appErr := s.Store.CreateRoom(ctx, name, ident.UserID)
	if appErr != nil {
		return nil, appErr
	}

	log.Info().Int64("roomID", room.ID).Str("name", room.Name).Int64("createdBy", ident.UserID).Msg("chatroom created")
	return &chat_dto.ChatroomCreatedResponse{
		ID:        room.ID,
		Name:      room.Name,
		IsGlobal:  room.IsGlobal,
		CreatedBy: room.CreatedBy,
		CreatedAt: room.CreatedAt,
	}, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, ident identity.Identity, roomID int64) *app_error.AppError {
	if ident.IsGuest() {
		return app_error.NewAppError(http.StatusUnauthorized, "Unauthorized. Please log in.", "auth")
	}

	room, appErr := s.Store.FindRoomByID(ctx, roomID)
	if appErr != nil {
		return appErr
	}

	if room.IsGlobal {
		return app_error.Forbidden("Cannot delete global chatroom")
	}
	if room.CreatedBy == nil || *room.CreatedBy != ident.UserID {
		log.Warn().Int64("roomID", roomID).Int64("userID", ident.UserID).Msg("unauthorized chatroom delete attempt")
		return app_error.Forbidden("Unauthorized to delete this chatroom")
	}

	return s.Store.DeleteRoom(ctx, roomID)
}

// DeleteMessage is the REST moderation path: author-only, no admin override
// (admins moderate over the live socket).
func (s *RoomService) DeleteMessage(ctx context.Context, ident identity.Identity, roomID, messageID int64) *app_error.AppError {
	if ident.IsGuest() {
		return app_error.NewAppError(http.StatusUnauthorized, "Unauthorized. Please log in.", "auth")
	}

	ownerID, appErr := s.Store.FindMessageOwner(ctx, messageID, roomID)
	if appErr != nil {
		return appErr
	}

	if ownerID == nil || *ownerID != ident.UserID {
		log.Warn().Int64("messageID", messageID).Int64("userID", ident.UserID).Msg("unauthorized message delete attempt")
		return app_error.Forbidden("Unauthorized to delete this message")
	}

	return s.Store.DeleteMessage(ctx, messageID)
}
