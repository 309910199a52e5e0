package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/wedsmoker/socialChat/internal/identity"
	"github.com/wedsmoker/socialChat/internal/middleware"
	chat_repo "github.com/wedsmoker/socialChat/internal/repo/chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// same-origin app; tighten if the API is ever served cross-origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests into chat sessions. Identity is resolved
// before the upgrade; a session-store failure refuses the connection.
type Handler struct {
	hub      *Hub
	resolver *identity.Resolver
	store    chat_repo.ChatStoreContract
	throttle *Throttle
}

func NewHandler(hub *Hub, resolver *identity.Resolver, store chat_repo.ChatStoreContract) *Handler {
	return &Handler{
		hub:      hub,
		resolver: resolver,
		store:    store,
		throttle: NewThrottle(),
	}
}

func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := r.Context().Value(middleware.SessionIDKey).(string)
	if !ok || sessionID == "" {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	ident, err := h.resolver.Resolve(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Msg("ws: identity resolution failed, refusing connection")
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := NewClient(uuid.New().String(), ident, h.hub, h.store, h.throttle, conn)
	h.hub.ClientConnected()
	client.Start()

	log.Info().Str("socketID", client.ID).Str("user", ident.DisplayName).Bool("guest", ident.IsGuest()).Msg("ws: client connected")
}
