package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// TaskService handles dashboard task operations. Every successful mutation
// persists synchronously through the repository; when a session user is
// present it additionally enqueues a best-effort sync event. The local write
// path never waits on the network.
type TaskService struct {
	taskRepo    ports.TaskRepository
	sessionRepo ports.SessionRepository
	outbox      ports.SyncOutbox
	logger      *logger.Logger
}

// NewTaskService creates a new task service. outbox may be nil when remote
// sync is disabled.
func NewTaskService(taskRepo ports.TaskRepository, sessionRepo ports.SessionRepository, outbox ports.SyncOutbox, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		sessionRepo: sessionRepo,
		outbox:      outbox,
		logger:      logger,
	}
}

// Load produces the working set for the session, seeding the sample tasks on
// first use.
func (s *TaskService) Load(ctx context.Context) ([]entities.Task, error) {
	tasks, err := s.taskRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	s.enqueueSync(ctx, ports.SyncEvent{Action: entities.SyncActionSaveTasks, Tasks: tasks})

	return tasks, nil
}

// AddTask creates a new task with the next monotonic id.
func (s *TaskService) AddTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	id, err := s.taskRepo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to assign task id: %w", err)
	}

	task := &entities.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Completed:   false,
		CreatedAt:   time.Now(),
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", created.ID, "title", created.Title)
	s.enqueueSync(ctx, ports.SyncEvent{Action: entities.SyncActionAdd, Task: created})

	return created, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id int) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask mutates the matching record's title, description, due date and
// priority in place.
func (s *TaskService) UpdateTask(ctx context.Context, id int, req ports.UpdateTaskRequest) (*entities.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.DueDate != nil {
		existing.DueDate = *req.DueDate
	}
	if req.Priority != nil {
		existing.Priority = *req.Priority
	}

	updated, err := s.taskRepo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", updated.ID, "title", updated.Title)
	s.enqueueSync(ctx, ports.SyncEvent{Action: entities.SyncActionUpdate, Task: updated})

	return updated, nil
}

// DeleteTask removes the first record with a matching id and reports whether
// a removal occurred. A miss is a no-op, not an error.
func (s *TaskService) DeleteTask(ctx context.Context, id int) (bool, error) {
	removed, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	if !removed {
		return false, nil
	}

	s.logger.Infow("Task deleted", "task_id", id)
	s.enqueueSync(ctx, ports.SyncEvent{Action: entities.SyncActionDelete, Task: &entities.Task{ID: id}})

	return true, nil
}

// ToggleComplete flips the completed flag of the matching task.
func (s *TaskService) ToggleComplete(ctx context.Context, id int) (*entities.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Completed = !existing.Completed

	updated, err := s.taskRepo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	s.logger.Infow("Task toggled", "task_id", updated.ID, "completed", updated.Completed)
	s.enqueueSync(ctx, ports.SyncEvent{Action: entities.SyncActionUpdate, Task: updated})

	return updated, nil
}

// ListTasks returns the tasks matching the filter mode, sorted by due date
// ascending.
func (s *TaskService) ListTasks(ctx context.Context, mode entities.FilterMode) ([]entities.Task, error) {
	if !mode.IsValid() {
		return nil, entities.ErrInvalidFilterMode
	}

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return SortByDueDate(FilterTasks(tasks, mode)), nil
}

// GetStats derives the aggregate counters from the current collection.
func (s *TaskService) GetStats(ctx context.Context) (entities.Stats, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return entities.Stats{}, fmt.Errorf("failed to read tasks for stats: %w", err)
	}
	return ComputeStats(tasks), nil
}

// enqueueSync queues a best-effort push when a user session is present.
// Failures here only suppress the push; they never affect the local mutation
// that already succeeded.
func (s *TaskService) enqueueSync(ctx context.Context, event ports.SyncEvent) {
	if s.outbox == nil {
		return
	}

	if _, err := s.sessionRepo.Current(ctx); err != nil {
		if !errors.Is(err, entities.ErrNotLoggedIn) {
			s.logger.Warnw("Skipping sync, session unavailable", "error", err)
		}
		return
	}

	event.ID = uuid.New()
	event.EnqueuedAt = time.Now()
	s.outbox.Enqueue(event)
}

// FilterTasks returns the subset matching the mode: pending yields
// uncompleted tasks, completed yields completed ones, all yields everything.
func FilterTasks(tasks []entities.Task, mode entities.FilterMode) []entities.Task {
	if mode == entities.FilterAll {
		return tasks
	}

	var out []entities.Task
	for _, t := range tasks {
		if (mode == entities.FilterCompleted) == t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// SortByDueDate sorts a copy of tasks by due date ascending. The sort is
// stable, so same-day tasks keep their insertion order. ISO dates compare
// correctly as strings.
func SortByDueDate(tasks []entities.Task) []entities.Task {
	sorted := make([]entities.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate < sorted[j].DueDate
	})
	return sorted
}

// ComputeStats is a pure function of the collection contents.
func ComputeStats(tasks []entities.Task) entities.Stats {
	stats := entities.Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}
