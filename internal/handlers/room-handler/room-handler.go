package room_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wedsmoker/socialChat/internal/dtos/chat_dto"
	app_error "github.com/wedsmoker/socialChat/internal/errors"
	"github.com/wedsmoker/socialChat/internal/handlers"
	"github.com/wedsmoker/socialChat/internal/identity"
	"github.com/wedsmoker/socialChat/internal/middleware"
	room_service "github.com/wedsmoker/socialChat/internal/use-case/room-case"
)

type RoomHandler struct {
	Service  room_service.RoomServiceContract
	Resolver *identity.Resolver
	Validate *validator.Validate
}

func NewRoomHandler(service room_service.RoomServiceContract, resolver *identity.Resolver) *RoomHandler {
	return &RoomHandler{
		Service:  service,
		Resolver: resolver,
		Validate: validator.New(),
	}
}

func (h *RoomHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	rooms, appErr := h.Service.ListRooms(r.Context())
	if appErr != nil {
		return appErr
	}

	handlers.WriteResponse(w, http.StatusOK, "chatrooms fetched successfully", map[string]any{"chatrooms": rooms}, handlers.RequestID(r))
	return nil
}

func (h *RoomHandler) HandleGetMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID, appErr := urlParamInt64(r, "roomId")
	if appErr != nil {
		return appErr
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return app_error.BadRequest("limit must be a positive integer", "limit")
		}
		limit = parsed
	}

	messages, appErr := h.Service.GetMessages(r.Context(), roomID, limit)
	if appErr != nil {
		return appErr
	}

	handlers.WriteResponse(w, http.StatusOK, "messages fetched successfully", map[string]any{"messages": messages}, handlers.RequestID(r))
	return nil
}

func (h *RoomHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.CreateChatroomRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	ident, appErr := h.resolveIdentity(r)
	if appErr != nil {
		return appErr
	}

	room, appErr := h.Service.CreateRoom(r.Context(), ident, req.Name)
	if appErr != nil {
		return appErr
	}

	handlers.WriteResponse(w, http.StatusCreated, "Chatroom created successfully", map[string]any{"chatroom": room}, handlers.RequestID(r))
	return nil
}

func (h *RoomHandler) HandleDeleteRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID, appErr := urlParamInt64(r, "roomId")
	if appErr != nil {
		return appErr
	}

	ident, appErr := h.resolveIdentity(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.Service.DeleteRoom(r.Context(), ident, roomID); appErr != nil {
		return appErr
	}

	handlers.WriteResponse(w, http.StatusOK, "Chatroom deleted successfully", "OK", handlers.RequestID(r))
	return nil
}

func (h *RoomHandler) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID, appErr := urlParamInt64(r, "roomId")
	if appErr != nil {
		return appErr
	}
	messageID, appErr := urlParamInt64(r, "messageId")
	if appErr != nil {
		return appErr
	}

	ident, appErr := h.resolveIdentity(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.Service.DeleteMessage(r.Context(), ident, roomID, messageID); appErr != nil {
		return appErr
	}

	handlers.WriteResponse(w, http.StatusOK, "Message deleted successfully", "OK", handlers.RequestID(r))
	return nil
}

func (h *RoomHandler) resolveIdentity(r *http.Request) (identity.Identity, *app_error.AppError) {
	sessionID, ok := r.Context().Value(middleware.SessionIDKey).(string)
	if !ok || sessionID == "" {
		return identity.Identity{}, app_error.NewAppError(http.StatusUnauthorized, "missing session", "session")
	}

	ident, err := h.Resolver.Resolve(r.Context(), sessionID)
	if err != nil {
		return identity.Identity{}, app_error.Internal("session store unavailable")
	}
	return ident, nil
}

func urlParamInt64(r *http.Request, name string) (int64, *app_error.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, app_error.BadRequest(fmt.Sprintf("%s must be a positive integer", name), name)
	}
	return id, nil
}
