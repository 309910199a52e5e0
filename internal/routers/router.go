package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wedsmoker/socialChat/internal/identity"
	"github.com/wedsmoker/socialChat/internal/middleware"
	chat_repo "github.com/wedsmoker/socialChat/internal/repo/chat"
	"github.com/wedsmoker/socialChat/internal/websocket"
	"github.com/wedsmoker/socialChat/state"
)

func NewRouter(state *state.AppState, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	r.Use(middleware.WithSession)

	store := chat_repo.NewChatRepo(state.DB)
	resolver := identity.NewResolver(state.Redis)

	RoomRouter(r, store, resolver)
	HubRouter(r, hub)
	WSRouter(r, hub, store, resolver)
	return r
}
