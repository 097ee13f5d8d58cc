// Package outbox buffers sync events between the mutation path and the
// background drain worker. The local write path never blocks on the network:
// mutations enqueue and move on, the worker pushes on its own schedule.
package outbox

import (
	"sync"

	"github.com/taskflow/core/internal/ports"
)

const defaultCapacity = 256

// MemoryOutbox is a bounded FIFO queue. When full, the oldest pending event
// is dropped so Enqueue can never block or fail.
type MemoryOutbox struct {
	mu       sync.Mutex
	events   []ports.SyncEvent
	capacity int
}

// NewMemoryOutbox creates an outbox with the given capacity; values below one
// fall back to the default.
func NewMemoryOutbox(capacity int) *MemoryOutbox {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	return &MemoryOutbox{capacity: capacity}
}

func (o *MemoryOutbox) Enqueue(event ports.SyncEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.events) >= o.capacity {
		o.events = o.events[1:]
	}
	o.events = append(o.events, event)
}

func (o *MemoryOutbox) Dequeue() (ports.SyncEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.events) == 0 {
		return ports.SyncEvent{}, false
	}
	event := o.events[0]
	o.events = o.events[1:]
	return event, true
}

func (o *MemoryOutbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}
