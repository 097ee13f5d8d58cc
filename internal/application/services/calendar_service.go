package services

import (
	"context"
	"fmt"
	"time"

	"github.com/taskflow/core/internal/domain/calendar"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// CalendarService handles the calendar view: its own task collection plus
// the month grid. Calendar tasks are intentionally disjoint from the
// dashboard tasks and never enter the sync path.
type CalendarService struct {
	calendarRepo ports.CalendarTaskRepository
	logger       *logger.Logger
	now          func() time.Time
}

// NewCalendarService creates a new calendar service
func NewCalendarService(calendarRepo ports.CalendarTaskRepository, logger *logger.Logger) *CalendarService {
	return &CalendarService{
		calendarRepo: calendarRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// MonthGrid builds the grid for the given zero-based month, with each
// current-month cell carrying the calendar tasks due that day.
func (s *CalendarService) MonthGrid(ctx context.Context, year, month int) (calendar.Grid, error) {
	tasks, err := s.calendarRepo.List(ctx)
	if err != nil {
		return calendar.Grid{}, fmt.Errorf("failed to read calendar tasks: %w", err)
	}

	return calendar.BuildMonthGrid(year, month, s.now(), tasks)
}

// AddTask appends a calendar task. The id is a millisecond clock reading,
// matching the weaker uniqueness guarantee this collection has always had.
func (s *CalendarService) AddTask(ctx context.Context, req ports.CreateCalendarTaskRequest) (*entities.CalendarTask, error) {
	task := &entities.CalendarTask{
		ID:          s.now().UnixMilli(),
		Title:       req.Title,
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
	}

	created, err := s.calendarRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar task: %w", err)
	}

	s.logger.Infow("Calendar task created", "task_id", created.ID, "date", created.Date)

	return created, nil
}

// ListTasks returns the whole calendar collection.
func (s *CalendarService) ListTasks(ctx context.Context) ([]entities.CalendarTask, error) {
	tasks, err := s.calendarRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes a calendar task, reporting whether a removal occurred.
func (s *CalendarService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	removed, err := s.calendarRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete calendar task: %w", err)
	}
	if removed {
		s.logger.Infow("Calendar task deleted", "task_id", id)
	}
	return removed, nil
}
