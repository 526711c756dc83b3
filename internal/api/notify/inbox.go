package notify

import (
	"context"
	"sync"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const DefaultInboxSize = 100

// Inbox buffers notifications until a client drains them. When full, the
// oldest entry is dropped.
type Inbox struct {
	mu    sync.Mutex
	max   int
	items []types.Notification
}

func NewInbox(max int) *Inbox {
	if max <= 0 {
		max = DefaultInboxSize
	}
	return &Inbox{max: max}
}

func (in *Inbox) Notify(_ context.Context, n types.Notification) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.items) == in.max {
		in.items = in.items[1:]
	}
	in.items = append(in.items, n)
}

// Drain returns pending notifications oldest first and empties the inbox.
func (in *Inbox) Drain() []types.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.items
	in.items = nil
	if out == nil {
		return []types.Notification{}
	}
	return out
}

func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.items)
}
