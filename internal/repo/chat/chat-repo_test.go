package chat_repo

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wedsmoker/socialChat/internal/entity"
	app_error "github.com/wedsmoker/socialChat/internal/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo opens a fresh in-memory database per test. The DSN is named so
// every pooled connection sees the same database.
func newTestRepo(t *testing.T) (*ChatRepo, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &ChatRepo{DB: db}, db
}

func seedUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) int64 {
	t.Helper()
	user := entity.User{Username: username, IsAdmin: isAdmin}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestMigrate_SeedsGlobalRoomOnce(t *testing.T) {
	repo, db := newTestRepo(t)

	// a second migration run must not add another global room
	require.NoError(t, Migrate(db))

	rooms, appErr := repo.ListRooms(context.Background())
	require.Nil(t, appErr)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Global", rooms[0].Name)
	assert.True(t, rooms[0].IsGlobal)
	assert.Nil(t, rooms[0].CreatedBy)
}

func TestCreateRoom_DuplicateName(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	_, appErr := repo.CreateRoom(context.Background(), "golang", userID)
	require.Nil(t, appErr)

	_, appErr = repo.CreateRoom(context.Background(), "golang", userID)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "Chatroom with this name already exists", appErr.Message)
}

func TestListRooms_GlobalFirstThenNewest(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	_, appErr := repo.CreateRoom(context.Background(), "first", userID)
	require.Nil(t, appErr)
	_, appErr = repo.CreateRoom(context.Background(), "second", userID)
	require.Nil(t, appErr)

	rooms, appErr := repo.ListRooms(context.Background())
	require.Nil(t, appErr)
	require.Len(t, rooms, 3)
	assert.True(t, rooms[0].IsGlobal, "global room sorts first")
	require.NotNil(t, rooms[1].CreatorUsername)
	assert.Equal(t, "alice", *rooms[1].CreatorUsername)
}

func TestFindRoomByID(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	created, appErr := repo.CreateRoom(context.Background(), "golang", userID)
	require.Nil(t, appErr)

	room, appErr := repo.FindRoomByID(context.Background(), created.ID)
	require.Nil(t, appErr)
	assert.Equal(t, "golang", room.Name)

	_, appErr = repo.FindRoomByID(context.Background(), 9999)
	require.NotNil(t, appErr)
	assert.True(t, app_error.IsNotFound(appErr))
	assert.Equal(t, "Chatroom not found", appErr.Message)
}

func TestCreateMemberMessage_ResolvesAuthor(t *testing.T) {
	repo, db := newTestRepo(t)
	pic := "https://cdn.example.com/alice.png"
	user := entity.User{Username: "alice", ProfilePicture: &pic}
	require.NoError(t, db.Create(&user).Error)

	msg, appErr := repo.CreateMemberMessage(context.Background(), 1, user.ID, "hello")
	require.Nil(t, appErr)

	assert.NotZero(t, msg.ID)
	assert.Equal(t, int64(1), msg.ChatroomID)
	assert.Equal(t, "hello", msg.Message)
	assert.Equal(t, "alice", msg.Username)
	require.NotNil(t, msg.ProfilePicture)
	assert.Equal(t, pic, *msg.ProfilePicture)
	assert.False(t, msg.IsGuest)
}

func TestCreateGuestMessage_ResolvesGuestName(t *testing.T) {
	repo, _ := newTestRepo(t)

	msg, appErr := repo.CreateGuestMessage(context.Background(), 1, "m3abc123def456", "Guest_m3abc123", "hi")
	require.Nil(t, appErr)

	assert.Equal(t, "Guest_m3abc123", msg.Username)
	assert.True(t, msg.IsGuest)
	assert.Nil(t, msg.ProfilePicture)
}

func TestListMessages_ChronologicalWithLimit(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	for i := 1; i <= 5; i++ {
		_, appErr := repo.CreateMemberMessage(context.Background(), 1, userID, fmt.Sprintf("msg-%d", i))
		require.Nil(t, appErr)
	}

	messages, appErr := repo.ListMessages(context.Background(), 1, 3)
	require.Nil(t, appErr)
	require.Len(t, messages, 3, "limit keeps the newest N")

	// newest three, oldest of them first
	assert.Equal(t, "msg-3", messages[0].Message)
	assert.Equal(t, "msg-4", messages[1].Message)
	assert.Equal(t, "msg-5", messages[2].Message)
}

func TestListMessages_OrderedByCreatedAt(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	// insertion order disagrees with the timestamps; ordering must follow created_at
	for i := 0; i < 3; i++ {
		row := entity.ChatMessage{
			ChatroomID: 1,
			UserID:     &userID,
			Message:    fmt.Sprintf("msg-%d", i),
			CreatedAt:  base.Add(time.Duration(-i) * time.Minute),
		}
		require.NoError(t, db.Create(&row).Error)
	}
	guestRow := entity.ChatMessage{
		ChatroomID: 1,
		GuestID:    strPtr("g1"),
		GuestName:  strPtr("Guest_g1"),
		Message:    "latest",
		CreatedAt:  base.Add(time.Minute),
	}
	require.NoError(t, db.Create(&guestRow).Error)

	messages, appErr := repo.ListMessages(context.Background(), 1, 10)
	require.Nil(t, appErr)
	require.Len(t, messages, 4)

	assert.Equal(t, "msg-2", messages[0].Message)
	assert.Equal(t, "msg-1", messages[1].Message)
	assert.Equal(t, "msg-0", messages[2].Message)
	assert.Equal(t, "alice", messages[2].Username)
	assert.False(t, messages[2].IsGuest)

	assert.Equal(t, "latest", messages[3].Message)
	assert.Equal(t, "Guest_g1", messages[3].Username)
	assert.True(t, messages[3].IsGuest)
}

func strPtr(s string) *string {
	return &s
}

func TestListMessages_ScopedToRoom(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	_, appErr := repo.CreateMemberMessage(context.Background(), 1, userID, "room one")
	require.Nil(t, appErr)
	_, appErr = repo.CreateGuestMessage(context.Background(), 2, "g1", "Guest_g1", "room two")
	require.Nil(t, appErr)

	messages, appErr := repo.ListMessages(context.Background(), 1, 100)
	require.Nil(t, appErr)
	require.Len(t, messages, 1)
	assert.Equal(t, "room one", messages[0].Message)
}

func TestFindMessageOwner(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	member, appErr := repo.CreateMemberMessage(context.Background(), 1, userID, "mine")
	require.Nil(t, appErr)
	guest, appErr := repo.CreateGuestMessage(context.Background(), 1, "g1", "Guest_g1", "anon")
	require.Nil(t, appErr)

	owner, appErr := repo.FindMessageOwner(context.Background(), member.ID, 1)
	require.Nil(t, appErr)
	require.NotNil(t, owner)
	assert.Equal(t, userID, *owner)

	owner, appErr = repo.FindMessageOwner(context.Background(), guest.ID, 1)
	require.Nil(t, appErr)
	assert.Nil(t, owner, "guest-authored messages have no owning user")

	_, appErr = repo.FindMessageOwner(context.Background(), 9999, 1)
	require.NotNil(t, appErr)
	assert.True(t, app_error.IsNotFound(appErr))

	// wrong room looks the same as missing
	_, appErr = repo.FindMessageOwner(context.Background(), member.ID, 2)
	require.NotNil(t, appErr)
	assert.True(t, app_error.IsNotFound(appErr))
}

func TestDeleteMessage_HardDelete(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	msg, appErr := repo.CreateMemberMessage(context.Background(), 1, userID, "gone soon")
	require.Nil(t, appErr)

	require.Nil(t, repo.DeleteMessage(context.Background(), msg.ID))

	messages, appErr := repo.ListMessages(context.Background(), 1, 100)
	require.Nil(t, appErr)
	assert.Empty(t, messages)

	var count int64
	require.NoError(t, db.Model(&entity.ChatMessage{}).Count(&count).Error)
	assert.Zero(t, count, "delete is a hard delete, no tombstone row")
}

func TestDeleteRoom_CascadesMessages(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := seedUser(t, db, "alice", false)

	room, appErr := repo.CreateRoom(context.Background(), "doomed", userID)
	require.Nil(t, appErr)
	_, appErr = repo.CreateMemberMessage(context.Background(), room.ID, userID, "in doomed")
	require.Nil(t, appErr)
	_, appErr = repo.CreateGuestMessage(context.Background(), 1, "g1", "Guest_g1", "elsewhere")
	require.Nil(t, appErr)

	require.Nil(t, repo.DeleteRoom(context.Background(), room.ID))

	_, appErr = repo.FindRoomByID(context.Background(), room.ID)
	require.NotNil(t, appErr)
	assert.True(t, app_error.IsNotFound(appErr))

	var count int64
	require.NoError(t, db.Model(&entity.ChatMessage{}).Where("chatroom_id = ?", room.ID).Count(&count).Error)
	assert.Zero(t, count, "the room's messages go with it")

	messages, appErr := repo.ListMessages(context.Background(), 1, 100)
	require.Nil(t, appErr)
	assert.Len(t, messages, 1, "other rooms' messages survive")
}

func TestIsAdmin(t *testing.T) {
	repo, db := newTestRepo(t)
	adminID := seedUser(t, db, "mod", true)
	plainID := seedUser(t, db, "alice", false)

	admin, appErr := repo.IsAdmin(context.Background(), adminID)
	require.Nil(t, appErr)
	assert.True(t, admin)

	admin, appErr = repo.IsAdmin(context.Background(), plainID)
	require.Nil(t, appErr)
	assert.False(t, admin)

	// unknown user is simply not an admin
	admin, appErr = repo.IsAdmin(context.Background(), 9999)
	require.Nil(t, appErr)
	assert.False(t, admin)
}
