package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/wedsmoker/socialChat/internal/utils"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 7 * 24 * time.Hour
	guestNamePrefix  = "Guest_"
)

// Session is the slice of session state the chat core reads and writes. The
// auth layer owns UserID/Username; the resolver owns the guest fields.
type Session struct {
	UserID    int64  `json:"user_id,omitempty"`
	Username  string `json:"username,omitempty"`
	IsGuest   bool   `json:"is_guest,omitempty"`
	GuestID   string `json:"guest_id,omitempty"`
	GuestName string `json:"guest_name,omitempty"`
}

// Resolver derives a display identity from redis-backed session state,
// minting and persisting a guest identity when the session carries none.
type Resolver struct {
	rdb *redis.Client
}

func NewResolver(rdb *redis.Client) *Resolver {
	return &Resolver{rdb: rdb}
}

// Resolve returns the session's identity. Members and previously minted
// guests pass through unchanged; a fresh session gets a new guest identity
// written back so later connections from the same session reuse it. The only
// failure mode is session-store I/O, which refuses the connection.
func (r *Resolver) Resolve(ctx context.Context, sessionID string) (Identity, error) {
	key := sessionKeyPrefix + sessionID

	sess, err := utils.GetCacheData[Session](ctx, r.rdb, key)
	if err != nil && !errors.Is(err, utils.ErrCacheMiss) {
		return Identity{}, fmt.Errorf("resolve identity: %w", err)
	}
	if sess == nil {
		sess = &Session{}
	}

	if sess.UserID != 0 {
		return Identity{
			Kind:        KindMember,
			UserID:      sess.UserID,
			DisplayName: sess.Username,
		}, nil
	}

	if sess.GuestID != "" {
		return Identity{
			Kind:        KindGuest,
			GuestID:     sess.GuestID,
			DisplayName: sess.GuestName,
		}, nil
	}

	sess.IsGuest = true
	sess.GuestID = newGuestID()
	sess.GuestName = guestNamePrefix + sess.GuestID[:8]

	if err := utils.SetCacheData(ctx, r.rdb, key, sess, sessionTTL); err != nil {
		return Identity{}, fmt.Errorf("persist guest session: %w", err)
	}

	log.Debug().Str("guestID", sess.GuestID).Msg("identity: minted guest")

	return Identity{
		Kind:        KindGuest,
		GuestID:     sess.GuestID,
		DisplayName: sess.GuestName,
	}, nil
}

// newGuestID is time-based with a random suffix. Collisions only need to be
// negligible; this is not a security boundary.
func newGuestID() string {
	suffix := make([]byte, 6)
	_, _ = rand.Read(suffix)
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + hex.EncodeToString(suffix)
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
