package notify

import (
	"context"
	"sync"

	"linguacademy/internal/catalog"
)

const DefaultInboxSize = 50

// Inbox keeps the latest notifications per user until they are drained.
// When a user's queue is full the oldest entry is dropped. Guest notifications
// are not queued: every anonymous caller would share them.
type Inbox struct {
	mu    sync.Mutex
	size  int
	boxes map[string][]catalog.Notification
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	return &Inbox{size: size, boxes: map[string][]catalog.Notification{}}
}

func (b *Inbox) Notify(_ context.Context, n catalog.Notification) {
	if n.UserID == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q := append(b.boxes[n.UserID], n)
	if len(q) > b.size {
		q = q[len(q)-b.size:]
	}
	b.boxes[n.UserID] = q
}

// Drain returns and clears the pending notifications of userID, oldest first.
func (b *Inbox) Drain(userID string) []catalog.Notification {
	if userID == "" {
		return []catalog.Notification{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.boxes[userID]
	delete(b.boxes, userID)
	if q == nil {
		return []catalog.Notification{}
	}
	return q
}

func (b *Inbox) Pending(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.boxes[userID])
}
