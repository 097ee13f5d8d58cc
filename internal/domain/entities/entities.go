package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrCalendarTaskNotFound = errors.New("calendar task not found")
	ErrNotLoggedIn          = errors.New("no user session")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidFilterMode    = errors.New("invalid filter mode")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth         = errors.New("month must be in [0,11]")
	ErrStoreClosed          = errors.New("store is closed")
)

// DateLayout is the wire format for due dates and calendar dates.
// Dates carry no time-of-day component.
const DateLayout = "2006-01-02"

// Enums and types
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterPending   FilterMode = "pending"
	FilterCompleted FilterMode = "completed"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryMeeting  Category = "meeting"
)

// SyncAction tags an outbound sync event.
type SyncAction string

const (
	SyncActionSaveTasks SyncAction = "saveTasks"
	SyncActionAdd       SyncAction = "add"
	SyncActionUpdate    SyncAction = "update"
	SyncActionDelete    SyncAction = "delete"
)

// Task represents a to-do item on the dashboard. IDs are assigned
// monotonically (max existing id + 1) and are never reused after deletion.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     string    `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CalendarTask is a calendar-only event record. It is a separate entity from
// Task: the calendar manages its own collection and the two never
// cross-reference each other. IDs come from a millisecond clock reading and
// are not collision-checked.
type CalendarTask struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Category    Category `json:"category"`
	Description string   `json:"description,omitempty"`
}

// User is the current session value. Presence alone means "logged in";
// no credential check ever happens.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Stats are the aggregate counters shown on the dashboard.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

// PriorityBreakdown counts tasks per priority for the reports view.
type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// OverdueTask is a report line item: an uncompleted task whose due date has
// passed.
type OverdueTask struct {
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
}

// Report is the read-only aggregation served by the reports view.
type Report struct {
	Stats      Stats             `json:"stats"`
	Priorities PriorityBreakdown `json:"priorities"`
	Overdue    []OverdueTask     `json:"overdue"`
	Tasks      []Task            `json:"tasks"`
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (m FilterMode) IsValid() bool {
	switch m {
	case FilterAll, FilterPending, FilterCompleted:
		return true
	default:
		return false
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryMeeting:
		return true
	default:
		return false
	}
}

// ParseDate validates an ISO YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
