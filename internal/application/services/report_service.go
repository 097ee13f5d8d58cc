package services

import (
	"context"
	"fmt"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// ReportService builds the read-only reports view directly from the task
// collection.
type ReportService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(taskRepo ports.TaskRepository, logger *logger.Logger) *ReportService {
	return &ReportService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// BuildReport aggregates stats, the priority breakdown and the overdue list
// as of now.
func (s *ReportService) BuildReport(ctx context.Context, now time.Time) (*entities.Report, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks for report: %w", err)
	}

	report := ComputeReport(tasks, now)
	return &report, nil
}

// ComputeReport is a pure function of the collection and the clock. A task
// is overdue when its due date is strictly before today and it is not
// completed.
func ComputeReport(tasks []entities.Task, now time.Time) entities.Report {
	report := entities.Report{
		Stats:   ComputeStats(tasks),
		Overdue: []entities.OverdueTask{},
		Tasks:   tasks,
	}

	today := now.Format(entities.DateLayout)

	for _, t := range tasks {
		switch t.Priority {
		case entities.PriorityHigh:
			report.Priorities.High++
		case entities.PriorityMedium:
			report.Priorities.Medium++
		case entities.PriorityLow:
			report.Priorities.Low++
		}

		if !t.Completed && t.DueDate < today {
			report.Overdue = append(report.Overdue, entities.OverdueTask{Title: t.Title, DueDate: t.DueDate})
		}
	}

	return report
}
