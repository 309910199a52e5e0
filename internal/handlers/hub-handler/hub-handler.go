package hub_handler

import (
	"encoding/json"
	"net/http"
	"time"

	app_error "github.com/wedsmoker/socialChat/internal/errors"
	"github.com/wedsmoker/socialChat/internal/handlers"
	"github.com/wedsmoker/socialChat/internal/websocket"
)

type HubHandler struct {
	Hub *websocket.Hub
}

func NewHubHandler(hub *websocket.Hub) *HubHandler {
	return &HubHandler{Hub: hub}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "chat-server",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.Stats()
	handlers.WriteResponse(w, http.StatusOK, "hub stats", stats, handlers.RequestID(r))
	return nil
}
