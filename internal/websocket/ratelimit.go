package websocket

import (
	"sync"
	"time"
)

const (
	messageCooldown      = 1000 * time.Millisecond
	burstWindow          = 60 * time.Second
	maxMessagesPerWindow = 10
)

// Verdict is the result of a throttle check.
type Verdict int

const (
	Admitted Verdict = iota
	DeniedCooldown
	DeniedBurst
)

type throttleEntry struct {
	lastSend    time.Time
	count       int
	windowStart time.Time
}

// Throttle gates how often a single connection may emit a chat message:
// one send per cooldown period, and a capped count per rolling window.
// State is keyed by socket id and discarded on disconnect; reconnecting
// starts fresh even for the same underlying identity.
type Throttle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry
}

func NewThrottle() *Throttle {
	return &Throttle{
		entries: make(map[string]*throttleEntry),
	}
}

func (t *Throttle) Admit(socketID string, now time.Time) Verdict {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[socketID]
	if !ok {
		e = &throttleEntry{windowStart: now}
		t.entries[socketID] = e
	}

	if !e.lastSend.IsZero() && now.Sub(e.lastSend) < messageCooldown {
		return DeniedCooldown
	}

	if now.Sub(e.windowStart) > burstWindow {
		e.count = 0
		e.windowStart = now
	}

	if e.count >= maxMessagesPerWindow {
		return DeniedBurst
	}

	e.lastSend = now
	e.count++
	return Admitted
}

func (t *Throttle) Forget(socketID string) {
	t.mu.Lock()
	delete(t.entries, socketID)
	t.mu.Unlock()
}
