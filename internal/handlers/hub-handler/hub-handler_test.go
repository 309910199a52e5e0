package hub_handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	hub_handler "github.com/wedsmoker/socialChat/internal/handlers/hub-handler"
	"github.com/wedsmoker/socialChat/internal/middleware"
	"github.com/wedsmoker/socialChat/internal/websocket"
)

func TestHandleHealth(t *testing.T) {
	handler := hub_handler.NewHubHandler(websocket.NewHub())

	rec := httptest.NewRecorder()
	handler.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "chat-server", body["service"])
	assert.NotZero(t, body["timestamp"])
}

func TestHandleGetStats(t *testing.T) {
	hub := websocket.NewHub()
	hub.ClientConnected()
	hub.ClientConnected()

	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	handler := hub_handler.NewHubHandler(hub)
	r.Get("/api/v1/stats", func(w http.ResponseWriter, req *http.Request) {
		_ = handler.HandleGetStats(w, req)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data websocket.HubStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Data.TotalConnections)
	assert.Zero(t, body.Data.TotalRooms)
	assert.False(t, body.Data.StartedAt.IsZero())
}
