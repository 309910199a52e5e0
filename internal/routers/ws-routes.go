package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/wedsmoker/socialChat/internal/identity"
	chat_repo "github.com/wedsmoker/socialChat/internal/repo/chat"
	"github.com/wedsmoker/socialChat/internal/websocket"
)

func WSRouter(r chi.Router, hub *websocket.Hub, store chat_repo.ChatStoreContract, resolver *identity.Resolver) {
	wsHandler := websocket.NewHandler(hub, resolver, store)
	r.Get("/ws", wsHandler.HandleWS)
}
