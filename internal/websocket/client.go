package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/wedsmoker/socialChat/internal/dtos/chat_dto"
	"github.com/wedsmoker/socialChat/internal/identity"
	chat_repo "github.com/wedsmoker/socialChat/internal/repo/chat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
	sendBuffer     = 256
)

// Client is one websocket connection and its session state. The identity is
// resolved once before the upgrade and never changes. All inbound events for
// a connection are handled in order on its read goroutine; the only state
// other goroutines touch is the Send channel and the context.
type Client struct {
	ID       string
	Identity identity.Identity
	Send     chan []byte

	hub      *Hub
	store    chat_repo.ChatStoreContract
	throttle *Throttle
	conn     *websocket.Conn

	// admin capability, fetched lazily on the first moderation attempt;
	// only read/written from the read goroutine
	isAdmin *bool

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewClient(id string, ident identity.Identity, hub *Hub, store chat_repo.ChatStoreContract, throttle *Throttle, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:       id,
		Identity: ident,
		Send:     make(chan []byte, sendBuffer),
		hub:      hub,
		store:    store,
		throttle: throttle,
		conn:     conn,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) IsActive() bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
		return true
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// emit queues an event for this connection only. Non-blocking: a full buffer
// drops the event, never the handler.
func (c *Client) emit(event chat_dto.OutgoingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("socketID", c.ID).Msg("ws: failed to marshal event")
		return
	}
	select {
	case c.Send <- data:
	case <-c.ctx.Done():
	default:
		log.Warn().Str("socketID", c.ID).Str("type", event.Type).Msg("ws: send buffer full, dropping event")
	}
}

func (c *Client) emitError(message string) {
	c.emit(NewEvent(chat_dto.EventError, chat_dto.ErrorPayload{Message: message}))
}

func NewEvent(eventType string, data any) chat_dto.OutgoingEvent {
	return chat_dto.OutgoingEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
}

// writePump drains c.Send onto the socket and keeps the connection alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// readPump processes inbound events in arrival order. The deferred cleanup is
// the connection's teardown path: it runs whatever way the loop exits, so a
// disconnect mid-operation still releases room membership, presence and
// throttle state.
func (c *Client) readPump() {
	defer func() {
		roomID := c.hub.Drop(c)
		c.throttle.Forget(c.ID)
		c.Close()
		if roomID != 0 {
			c.hub.BroadcastPresence(roomID)
		}
		log.Info().Str("socketID", c.ID).Str("user", c.Identity.DisplayName).Msg("ws: client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var ev chat_dto.IncomingEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Debug().Str("socketID", c.ID).Msg("ws: malformed event, ignoring")
			continue
		}

		c.handleEvent(c.ctx, ev)
	}
}
