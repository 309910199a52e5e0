package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/wedsmoker/socialChat/internal/handlers"
	hub_handler "github.com/wedsmoker/socialChat/internal/handlers/hub-handler"
	"github.com/wedsmoker/socialChat/internal/websocket"
)

func HubRouter(r chi.Router, hub *websocket.Hub) {
	hubHandler := hub_handler.NewHubHandler(hub)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))
	})
}
