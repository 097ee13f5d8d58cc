package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// CalendarTaskRepositoryImpl implements the CalendarTaskRepository interface.
// The calendar keeps its own collection under its own key; it is intentionally
// disjoint from the dashboard tasks.
type CalendarTaskRepositoryImpl struct {
	kv ports.KVStore
}

// NewCalendarTaskRepository creates a new calendar task repository
func NewCalendarTaskRepository(kv ports.KVStore) ports.CalendarTaskRepository {
	return &CalendarTaskRepositoryImpl{kv: kv}
}

func (r *CalendarTaskRepositoryImpl) readAll(ctx context.Context) ([]entities.CalendarTask, error) {
	raw, ok, err := r.kv.Get(ctx, ports.KeyCalendarTasks)
	if err != nil {
		return nil, fmt.Errorf("read calendar tasks: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var tasks []entities.CalendarTask
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, nil
	}
	return tasks, nil
}

func (r *CalendarTaskRepositoryImpl) writeAll(ctx context.Context, tasks []entities.CalendarTask) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode calendar tasks: %w", err)
	}
	if err := r.kv.Set(ctx, ports.KeyCalendarTasks, raw); err != nil {
		return fmt.Errorf("write calendar tasks: %w", err)
	}
	return nil
}

func (r *CalendarTaskRepositoryImpl) List(ctx context.Context) ([]entities.CalendarTask, error) {
	return r.readAll(ctx)
}

func (r *CalendarTaskRepositoryImpl) ListByDate(ctx context.Context, isoDate string) ([]entities.CalendarTask, error) {
	tasks, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []entities.CalendarTask
	for _, t := range tasks {
		if t.Date == isoDate {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (r *CalendarTaskRepositoryImpl) Create(ctx context.Context, task *entities.CalendarTask) (*entities.CalendarTask, error) {
	tasks, err := r.readAll(ctx)
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

func (r *CalendarTaskRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	tasks, err := r.readAll(ctx)
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
