package chat_repo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wedsmoker/socialChat/internal/dtos/chat_dto"
	"github.com/wedsmoker/socialChat/internal/entity"
	app_error "github.com/wedsmoker/socialChat/internal/errors"
	"gorm.io/gorm"
)

const globalRoomName = "Global"

type ChatRepo struct {
	DB *gorm.DB
}

func NewChatRepo(db *gorm.DB) ChatStoreContract {
	return &ChatRepo{DB: db}
}

// Migrate creates the chat tables and seeds the one global room. Idempotent;
// run at startup and at the top of store-backed tests.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}, &entity.Chatroom{}, &entity.ChatMessage{}); err != nil {
		return err
	}

	var global entity.Chatroom
	err := db.Where("is_global = ?", true).First(&global).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		global = entity.Chatroom{Name: globalRoomName, IsGlobal: true}
		if err := db.Create(&global).Error; err != nil {
			return err
		}
		log.Info().Int64("roomID", global.ID).Msg("seeded global chatroom")
		return nil
	}
	return err
}

func (r *ChatRepo) ListRooms(ctx context.Context) ([]chat_dto.ChatroomSummary, *app_error.AppError) {
	var rooms []chat_dto.ChatroomSummary
	err := r.DB.WithContext(ctx).
		Table("chatrooms c").
		Select("c.id, c.name, c.is_global, c.created_by, c.created_at, u.username AS creator_username").
		Joins("LEFT JOIN users u ON c.created_by = u.id").
		Order("c.is_global DESC, c.created_at DESC").
		Scan(&rooms).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to list chatrooms")
		return nil, app_error.Internal("failed to list chatrooms")
	}
	return rooms, nil
}

func (r *ChatRepo) FindRoomByID(ctx context.Context, roomID int64) (*entity.Chatroom, *app_error.AppError) {
	var room entity.Chatroom
	if err := r.DB.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Chatroom not found")
		}
		log.Error().Err(err).Int64("roomID", roomID).Msg("failed to fetch chatroom")
		return nil, app_error.Internal("failed to fetch chatroom")
	}
	return &room, nil
}

func (r *ChatRepo) CreateRoom(ctx context.Context, name string, createdBy int64) (*entity.Chatroom, *app_error.AppError) {
	room := entity.Chatroom{Name: name, CreatedBy: &createdBy}
	if err := r.DB.WithContext(ctx).Create(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, app_error.NewAppError(http.StatusConflict, "Chatroom with this name already exists", "name")
		}
		log.Error().Err(err).Str("name", name).Msg("failed to create chatroom")
		return nil, app_error.Internal("failed to create chatroom")
	}
	return &room, nil
}

// DeleteRoom removes the room and all its messages in one transaction. The
// cascade is explicit rather than FK-driven so it behaves the same on every
// backend the repo runs against.
func (r *ChatRepo) DeleteRoom(ctx context.Context, roomID int64) *app_error.AppError {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chatroom_id = ?", roomID).Delete(&entity.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", roomID).Delete(&entity.Chatroom{}).Error
	})
	if err != nil {
		log.Error().Err(err).Int64("roomID", roomID).Msg("failed to delete chatroom")
		return app_error.Internal("failed to delete chatroom")
	}
	return nil
}

type messageRow struct {
	ID             int64
	ChatroomID     int64
	Message        string
	CreatedAt      time.Time
	UserID         *int64
	GuestName      *string
	Username       *string
	ProfilePicture *string
}

func (r *ChatRepo) ListMessages(ctx context.Context, roomID int64, limit int) ([]chat_dto.ChatMessage, *app_error.AppError) {
	var rows []messageRow
	err := r.DB.WithContext(ctx).
		Table("chat_messages m").
		Select("m.id, m.chatroom_id, m.message, m.created_at, m.user_id, m.guest_name, u.username, u.profile_picture").
		Joins("LEFT JOIN users u ON m.user_id = u.id").
		Where("m.chatroom_id = ?", roomID).
		Order("m.created_at DESC, m.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		log.Error().Err(err).Int64("roomID", roomID).Msg("failed to fetch messages")
		return nil, app_error.Internal("failed to fetch messages")
	}

	messages := make([]chat_dto.ChatMessage, 0, len(rows))
	// newest-first from the query; reverse to chronological order
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		view := chat_dto.ChatMessage{
			ID:         row.ID,
			ChatroomID: row.ChatroomID,
			Message:    row.Message,
			CreatedAt:  row.CreatedAt,
		}
		if row.UserID == nil {
			view.IsGuest = true
			if row.GuestName != nil {
				view.Username = *row.GuestName
			}
		} else {
			if row.Username != nil {
				view.Username = *row.Username
			}
			view.ProfilePicture = row.ProfilePicture
		}
		messages = append(messages, view)
	}
	return messages, nil
}

func (r *ChatRepo) CreateMemberMessage(ctx context.Context, roomID, userID int64, body string) (*chat_dto.ChatMessage, *app_error.AppError) {
	row := entity.ChatMessage{
		ChatroomID: roomID,
		UserID:     &userID,
		Message:    body,
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Error().Err(err).Int64("roomID", roomID).Int64("userID", userID).Msg("failed to insert message")
		return nil, app_error.Internal("failed to insert message")
	}
	return r.resolveAuthor(ctx, &row)
}

func (r *ChatRepo) CreateGuestMessage(ctx context.Context, roomID int64, guestID, guestName, body string) (*chat_dto.ChatMessage, *app_error.AppError) {
	row := entity.ChatMessage{
		ChatroomID: roomID,
		GuestID:    &guestID,
		GuestName:  &guestName,
		Message:    body,
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Error().Err(err).Int64("roomID", roomID).Str("guestID", guestID).Msg("failed to insert guest message")
		return nil, app_error.Internal("failed to insert message")
	}
	return r.resolveAuthor(ctx, &row)
}

func (r *ChatRepo) FindMessageOwner(ctx context.Context, messageID, roomID int64) (*int64, *app_error.AppError) {
	var row entity.ChatMessage
	err := r.DB.WithContext(ctx).
		Select("id, user_id").
		Where("id = ? AND chatroom_id = ?", messageID, roomID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Message not found")
		}
		log.Error().Err(err).Int64("messageID", messageID).Msg("failed to fetch message")
		return nil, app_error.Internal("failed to fetch message")
	}
	return row.UserID, nil
}

func (r *ChatRepo) DeleteMessage(ctx context.Context, messageID int64) *app_error.AppError {
	if err := r.DB.WithContext(ctx).Where("id = ?", messageID).Delete(&entity.ChatMessage{}).Error; err != nil {
		log.Error().Err(err).Int64("messageID", messageID).Msg("failed to delete message")
		return app_error.Internal("failed to delete message")
	}
	return nil
}

func (r *ChatRepo) IsAdmin(ctx context.Context, userID int64) (bool, *app_error.AppError) {
	var user entity.User
	err := r.DB.WithContext(ctx).Select("id, is_admin").Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		log.Error().Err(err).Int64("userID", userID).Msg("failed to fetch admin flag")
		return false, app_error.Internal("failed to fetch user")
	}
	return user.IsAdmin, nil
}

func (r *ChatRepo) resolveAuthor(ctx context.Context, row *entity.ChatMessage) (*chat_dto.ChatMessage, *app_error.AppError) {
	view := chat_dto.ChatMessage{
		ID:         row.ID,
		ChatroomID: row.ChatroomID,
		Message:    row.Message,
		CreatedAt:  row.CreatedAt,
	}

	if row.UserID == nil {
		view.IsGuest = true
		if row.GuestName != nil {
			view.Username = *row.GuestName
		}
		return &view, nil
	}

	var user entity.User
	err := r.DB.WithContext(ctx).Select("id, username, profile_picture").Where("id = ?", *row.UserID).First(&user).Error
	if err != nil {
		log.Error().Err(err).Int64("userID", *row.UserID).Msg("failed to resolve message author")
		return nil, app_error.Internal("failed to resolve message author")
	}
	view.Username = user.Username
	view.ProfilePicture = user.ProfilePicture
	return &view, nil
}
