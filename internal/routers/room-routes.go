package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/wedsmoker/socialChat/internal/handlers"
	room_handler "github.com/wedsmoker/socialChat/internal/handlers/room-handler"
	"github.com/wedsmoker/socialChat/internal/identity"
	chat_repo "github.com/wedsmoker/socialChat/internal/repo/chat"
	room_service "github.com/wedsmoker/socialChat/internal/use-case/room-case"
)

func RoomRouter(r chi.Router, store chat_repo.ChatStoreContract, resolver *identity.Resolver) {
	roomHandler := room_handler.NewRoomHandler(room_service.NewRoomService(store), resolver)

	r.Route("/api/chatrooms", func(r chi.Router) {
		r.Get("/", handlers.WrapHandler(roomHandler.HandleListRooms))
		r.Post("/", handlers.WrapHandler(roomHandler.HandleCreateRoom))
		r.Get("/{roomId}/messages", handlers.WrapHandler(roomHandler.HandleGetMessages))
		r.Delete("/{roomId}", handlers.WrapHandler(roomHandler.HandleDeleteRoom))
		r.Delete("/{roomId}/messages/{messageId}", handlers.WrapHandler(roomHandler.HandleDeleteMessage))
	})
}
