package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/core/internal/domain/entities"
)

// Well-known keys of the persisted key-value store. Values are JSON-encoded.
const (
	KeyTasks          = "tasks"
	KeyCalendarTasks  = "calendarTasks"
	KeyUser           = "user"
	KeyRegisteredUser = "registeredUser"
)

// KVStore is the injected persistence layer: string keys, JSON-encoded
// values, with an explicit lifecycle. A store is exclusively owned by the
// current process; its access pattern is synchronous read-modify-write.
type KVStore interface {
	// Get reads the raw value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set writes the value for key, creating it when absent.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Flush forces any buffered writes to durable storage.
	Flush(ctx context.Context) error
	// Close flushes and releases the store. Further calls fail with
	// entities.ErrStoreClosed.
	Close() error
}

// TaskRepository owns the ordered task collection persisted under KeyTasks.
type TaskRepository interface {
	// Load reads the collection, seeding the sample tasks on first use.
	Load(ctx context.Context) ([]entities.Task, error)
	List(ctx context.Context) ([]entities.Task, error)
	GetByID(ctx context.Context, id int) (*entities.Task, error)
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) (*entities.Task, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id int) (bool, error)
	// NextID returns max(existing ids) + 1, or 1 for an empty collection.
	NextID(ctx context.Context) (int, error)
}

// CalendarTaskRepository owns the calendar-only collection persisted under
// KeyCalendarTasks. It never touches the dashboard tasks.
type CalendarTaskRepository interface {
	List(ctx context.Context) ([]entities.CalendarTask, error)
	ListByDate(ctx context.Context, isoDate string) ([]entities.CalendarTask, error)
	Create(ctx context.Context, task *entities.CalendarTask) (*entities.CalendarTask, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SessionRepository holds the single current-session user under KeyUser and
// the write-only signup audit record under KeyRegisteredUser.
type SessionRepository interface {
	Current(ctx context.Context) (*entities.User, error)
	Save(ctx context.Context, user *entities.User) error
	Clear(ctx context.Context) error
	RecordSignup(ctx context.Context, user *entities.User) error
}

// SyncEvent is one queued best-effort push to the remote sync endpoint.
// Either Task or Tasks is set, depending on the action.
type SyncEvent struct {
	ID         uuid.UUID           `json:"id"`
	Action     entities.SyncAction `json:"action"`
	Task       *entities.Task      `json:"task,omitempty"`
	Tasks      []entities.Task     `json:"tasks,omitempty"`
	EnqueuedAt time.Time           `json:"enqueuedAt"`
}

// SyncOutbox buffers sync events between the mutation path and the drain
// worker. Enqueue must never block the caller: when the buffer is full the
// oldest pending event is dropped.
type SyncOutbox interface {
	Enqueue(event SyncEvent)
	// Dequeue pops the oldest pending event, if any.
	Dequeue() (SyncEvent, bool)
	Len() int
}

// SyncPusher performs the actual best-effort push. Errors are for logging
// only; callers never retry and never surface them to users.
type SyncPusher interface {
	Push(ctx context.Context, event SyncEvent) error
}
