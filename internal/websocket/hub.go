package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wedsmoker/socialChat/internal/dtos/chat_dto"
)

// Hub is the room registry: it owns which connections are members of which
// chatroom and fans events out to them. Membership is derived state only; it
// resets to empty on restart. A connection belongs to at most one room at a
// time, so joining a new room implicitly leaves the old one.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[int64]map[*Client]struct{}
	current map[*Client]int64

	stats   HubStats
	statsMu sync.RWMutex
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	TotalConnections int64     `json:"total_connections"`
	EventsSent       int64     `json:"events_sent"`
	StartedAt        time.Time `json:"started_at"`
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[int64]map[*Client]struct{}),
		current: make(map[*Client]int64),
		stats:   HubStats{StartedAt: time.Now()},
	}
}

// Join adds the client to a room's membership set, leaving its previous room
// first if it had one. Returns the previous room id, or 0.
func (h *Hub) Join(roomID int64, c *Client) int64 {
	h.mu.Lock()
	prev := h.current[c]
	if prev != 0 {
		h.removeLocked(prev, c)
	}
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}
	h.current[c] = roomID
	size := len(h.rooms[roomID])
	h.mu.Unlock()

	log.Info().Int64("roomID", roomID).Str("socketID", c.ID).Str("user", c.Identity.DisplayName).Int("roomSize", size).Msg("ws: client joined room")
	return prev
}

// Leave removes the client from the room's membership set. Leaving a room the
// client is not in is a no-op.
func (h *Hub) Leave(roomID int64, c *Client) {
	h.mu.Lock()
	left := h.removeLocked(roomID, c)
	h.mu.Unlock()

	if left {
		log.Info().Int64("roomID", roomID).Str("socketID", c.ID).Msg("ws: client left room")
	}
}

// Drop removes the client from whatever room it is in, returning that room's
// id (0 if none). Called on disconnect.
func (h *Hub) Drop(c *Client) int64 {
	h.mu.Lock()
	roomID := h.current[c]
	if roomID != 0 {
		h.removeLocked(roomID, c)
	}
	delete(h.current, c)
	h.mu.Unlock()
	return roomID
}

func (h *Hub) removeLocked(roomID int64, c *Client) bool {
	clients, ok := h.rooms[roomID]
	if !ok {
		return false
	}
	if _, in := clients[c]; !in {
		return false
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.rooms, roomID)
	}
	if h.current[c] == roomID {
		delete(h.current, c)
	}
	return true
}

// CurrentRoom returns the room the client is joined to, or 0.
func (h *Hub) CurrentRoom(c *Client) int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current[c]
}

func (h *Hub) MemberCount(roomID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) ClientConnected() {
	h.updateStats(func(s *HubStats) { s.TotalConnections++ })
}

// BroadcastToRoom delivers an event to every connection currently in the
// room. Fire and forget: no acknowledgment, no retry, iteration order
// unspecified.
func (h *Hub) BroadcastToRoom(roomID int64, event chat_dto.OutgoingEvent) {
	h.broadcast(roomID, event, nil)
}

// BroadcastToRoomExcept skips one connection, used for presence signals like
// typing indicators where the sender should not see its own notification.
func (h *Hub) BroadcastToRoomExcept(roomID int64, event chat_dto.OutgoingEvent, except *Client) {
	h.broadcast(roomID, event, except)
}

// BroadcastPresence pushes the room's live member count to its members.
// Called after every membership change, including disconnect-triggered ones.
func (h *Hub) BroadcastPresence(roomID int64) {
	count := h.MemberCount(roomID)
	h.BroadcastToRoom(roomID, NewEvent(chat_dto.EventUserCountUpdate, chat_dto.UserCountPayload{UserCount: count}))
}

func (h *Hub) broadcast(roomID int64, event chat_dto.OutgoingEvent, except *Client) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Int64("roomID", roomID).Msg("ws: failed to marshal broadcast event")
		return
	}

	h.mu.RLock()
	var targets []*Client
	if clients, ok := h.rooms[roomID]; ok {
		targets = make([]*Client, 0, len(clients))
		for c := range clients {
			if c == except {
				continue
			}
			if c.IsActive() {
				targets = append(targets, c)
			}
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	for _, c := range targets {
		select {
		case c.Send <- data:
		case <-c.ctx.Done():
		default:
			// slow consumer, drop the connection rather than block fan-out
			log.Warn().Int64("roomID", roomID).Str("socketID", c.ID).Msg("ws: slow consumer, closing")
			go c.Close()
		}
	}

	h.updateStats(func(s *HubStats) { s.EventsSent += int64(len(targets)) })
}

func (h *Hub) Stats() HubStats {
	h.mu.RLock()
	rooms := len(h.rooms)
	clients := len(h.current)
	h.mu.RUnlock()

	h.statsMu.Lock()
	h.stats.TotalRooms = rooms
	h.stats.TotalClients = clients
	stats := h.stats
	h.statsMu.Unlock()
	return stats
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}

// Close shuts down every connected client.
func (h *Hub) Close() {
	h.mu.RLock()
	all := make([]*Client, 0, len(h.current))
	for c := range h.current {
		all = append(all, c)
	}
	h.mu.RUnlock()

	for _, c := range all {
		c.Close()
	}
	log.Info().Int("clients", len(all)).Msg("ws: hub shutdown completed")
}
