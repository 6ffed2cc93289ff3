// Package notify holds short-lived per-session notifications until the
// dashboard picks them up. Notifications that are never drained expire
// after a TTL so abandoned sessions do not leak memory.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Style string

const (
	StyleInfo        Style = "info"
	StyleSuccess     Style = "success"
	StyleDestructive Style = "destructive"
)

type Notification struct {
	ID        string    `json:"id"`
	Style     Style     `json:"style"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Center struct {
	mu      sync.RWMutex
	pending map[string][]Notification
	ttl     time.Duration
	stopCh  chan struct{}
}

func NewCenter(ttl time.Duration) *Center {
	center := &Center{
		pending: make(map[string][]Notification),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go center.cleanup()

	return center
}

// Push queues a notification for a session. Duplicate messages are
// queued as-is; callers that deliver the same event twice surface it
// twice.
func (c *Center) Push(sessionID, message string, style Style) Notification {
	notification := Notification{
		ID:        uuid.NewString(),
		Style:     style,
		Message:   message,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.pending[sessionID] = append(c.pending[sessionID], notification)
	c.mu.Unlock()

	return notification
}

// Drain returns and clears everything pending for a session, oldest
// first.
func (c *Center) Drain(sessionID string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := c.pending[sessionID]
	delete(c.pending, sessionID)
	return pending
}

// Discard drops anything queued for a session without delivering it.
// Called when the session itself ends.
func (c *Center) Discard(sessionID string) {
	c.mu.Lock()
	delete(c.pending, sessionID)
	c.mu.Unlock()
}

func (c *Center) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-c.ttl)
			c.mu.Lock()
			for sessionID, pending := range c.pending {
				kept := pending[:0]
				for _, notification := range pending {
					if notification.CreatedAt.After(cutoff) {
						kept = append(kept, notification)
					}
				}
				if len(kept) == 0 {
					delete(c.pending, sessionID)
				} else {
					c.pending[sessionID] = kept
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

func (c *Center) Stop() {
	close(c.stopCh)
}
