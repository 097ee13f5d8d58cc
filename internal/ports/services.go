package ports

import (
	"context"
	"time"

	"github.com/taskflow/core/internal/domain/calendar"
	"github.com/taskflow/core/internal/domain/entities"
)

// TaskService interface for dashboard task operations
type TaskService interface {
	Load(ctx context.Context) ([]entities.Task, error)
	AddTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id int) (*entities.Task, error)
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id int) (bool, error)
	ToggleComplete(ctx context.Context, id int) (*entities.Task, error)
	// ListTasks filters by mode and sorts by due date ascending.
	ListTasks(ctx context.Context, mode entities.FilterMode) ([]entities.Task, error)
	GetStats(ctx context.Context) (entities.Stats, error)
}

// CalendarService interface for the calendar view
type CalendarService interface {
	MonthGrid(ctx context.Context, year, month int) (calendar.Grid, error)
	AddTask(ctx context.Context, req CreateCalendarTaskRequest) (*entities.CalendarTask, error)
	ListTasks(ctx context.Context) ([]entities.CalendarTask, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

// SessionService interface for the login/signup/settings flows
type SessionService interface {
	Login(ctx context.Context, req LoginRequest) (*entities.User, error)
	Signup(ctx context.Context, req SignupRequest) (*entities.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*entities.User, error)
	SaveProfile(ctx context.Context, req SaveProfileRequest) (*entities.User, error)
}

// ReportService interface for the read-only reports view
type ReportService interface {
	BuildReport(ctx context.Context, now time.Time) (*entities.Report, error)
}

// Task related types
type CreateTaskRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"omitempty,max=1000"`
	DueDate     string            `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Priority    entities.Priority `json:"priority" validate:"required,oneof=low medium high"`
}

type UpdateTaskRequest struct {
	Title       *string            `json:"title" validate:"omitempty,max=200"`
	Description *string            `json:"description" validate:"omitempty,max=1000"`
	DueDate     *string            `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Priority    *entities.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// Calendar related types
type CreateCalendarTaskRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
	Category    entities.Category `json:"category" validate:"required,oneof=work personal meeting"`
	Description string            `json:"description" validate:"omitempty,max=1000"`
}

// Session related types
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

type SaveProfileRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}
