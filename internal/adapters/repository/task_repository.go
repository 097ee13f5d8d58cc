package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface on top of the
// key-value store. The whole collection lives under a single key and is
// rewritten on every mutation, mirroring the access pattern of the store.
type TaskRepositoryImpl struct {
	kv ports.KVStore
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(kv ports.KVStore) ports.TaskRepository {
	return &TaskRepositoryImpl{kv: kv}
}

// seedTasks is the fixed demonstration set written on first load.
func seedTasks(now time.Time) []entities.Task {
	return []entities.Task{
		{ID: 1, Title: "Complete Project Proposal", Description: "Finalize the project proposal for client meeting", DueDate: "2025-04-25", Priority: entities.PriorityHigh, CreatedAt: now},
		{ID: 2, Title: "Schedule Team Meeting", Description: "Discuss upcoming project milestones", DueDate: "2025-04-22", Priority: entities.PriorityMedium, Completed: true, CreatedAt: now},
		{ID: 3, Title: "Research New Technologies", Description: "Look into React and Node.js for future projects", DueDate: "2025-04-30", Priority: entities.PriorityLow, CreatedAt: now},
	}
}

func (r *TaskRepositoryImpl) readAll(ctx context.Context) ([]entities.Task, bool, error) {
	raw, ok, err := r.kv.Get(ctx, ports.KeyTasks)
	if err != nil {
		return nil, false, fmt.Errorf("read tasks: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var tasks []entities.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		// Malformed persisted data falls back to the empty default
		// instead of failing the application.
		return nil, true, nil
	}
	return tasks, true, nil
}

func (r *TaskRepositoryImpl) writeAll(ctx context.Context, tasks []entities.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := r.kv.Set(ctx, ports.KeyTasks, raw); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// Load reads the collection and seeds the sample tasks when the key has
// never been written.
func (r *TaskRepositoryImpl) Load(ctx context.Context) ([]entities.Task, error) {
	tasks, present, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	if !present {
		tasks = seedTasks(time.Now())
		if err := r.writeAll(ctx, tasks); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]entities.Task, error) {
	tasks, _, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Task, error) {
	tasks, _, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			t := tasks[i]
			return &t, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	tasks, _, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	tasks = append(tasks, *task)
	if err := r.writeAll(ctx, tasks); err != nil {
		return nil, err
	}

	created := *task
	return &created, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	tasks, _, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = *task
			if err := r.writeAll(ctx, tasks); err != nil {
				return nil, err
			}
			updated := tasks[i]
			return &updated, nil
		}
	}

	return nil, entities.ErrTaskNotFound
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	tasks, _, err := r.readAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range tasks {
		if tasks[i].ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := r.writeAll(ctx, tasks); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

// NextID assigns ids monotonically: max(existing ids) + 1, or 1 when the
// collection is empty.
func (r *TaskRepositoryImpl) NextID(ctx context.Context) (int, error) {
	tasks, _, err := r.readAll(ctx)
	if err != nil {
		return 0, err
	}

	next := 1
	for i := range tasks {
		if tasks[i].ID >= next {
			next = tasks[i].ID + 1
		}
	}
	return next, nil
}
