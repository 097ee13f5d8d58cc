// Package calendar builds the month grid for the calendar view. The grid is a
// pure function of (year, month, today, calendar tasks): leading cells for the
// tail of the previous month, one cell per day of the target month, and
// trailing next-month cells padding the final week row.
package calendar

import (
	"time"

	"github.com/taskflow/core/internal/domain/entities"
)

// CellKind distinguishes target-month cells from the leading/trailing filler.
type CellKind string

const (
	CellCurrent CellKind = "current"
	CellOther   CellKind = "other"
)

// Cell is one day square of the month grid.
type Cell struct {
	Kind        CellKind                `json:"kind"`
	Day         int                     `json:"day"`
	MonthOffset int                     `json:"monthOffset"` // -1 previous, 0 current, +1 next
	Date        string                  `json:"date,omitempty"`
	Today       bool                    `json:"today,omitempty"`
	Tasks       []entities.CalendarTask `json:"tasks,omitempty"`
}

// Grid is the flat, row-major month grid. Its length is always a multiple
// of seven.
type Grid struct {
	Year  int    `json:"year"`
	Month int    `json:"month"` // zero-based, [0,11]
	Cells []Cell `json:"cells"`
}

// DaysIn returns the number of days in the given zero-based month. Month
// arithmetic goes through time.Date normalization, so out-of-range values
// roll the year correctly (month -1 is the previous December).
func DaysIn(year, month int) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// firstWeekday returns the day of week (0 = Sunday) of the first of the month.
func firstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildMonthGrid lays out the grid for the given zero-based month. Cells of
// the target month carry their ISO date, the tasks due that day, and a today
// flag matched against the caller-supplied clock value.
func BuildMonthGrid(year, month int, today time.Time, tasks []entities.CalendarTask) (Grid, error) {
	if month < 0 || month > 11 {
		return Grid{}, entities.ErrInvalidMonth
	}

	lead := firstWeekday(year, month)
	days := DaysIn(year, month)
	prevDays := DaysIn(year, month-1)

	byDate := make(map[string][]entities.CalendarTask)
	for _, t := range tasks {
		byDate[t.Date] = append(byDate[t.Date], t)
	}

	cells := make([]Cell, 0, lead+days+6)

	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{
			Kind:        CellOther,
			Day:         prevDays - lead + i + 1,
			MonthOffset: -1,
		})
	}

	for d := 1; d <= days; d++ {
		date := time.Date(year, time.Month(month+1), d, 0, 0, 0, 0, time.UTC)
		iso := date.Format(entities.DateLayout)
		cells = append(cells, Cell{
			Kind:  CellCurrent,
			Day:   d,
			Date:  iso,
			Today: d == today.Day() && month == int(today.Month())-1 && year == today.Year(),
			Tasks: byDate[iso],
		})
	}

	for next := 1; len(cells)%7 != 0; next++ {
		cells = append(cells, Cell{
			Kind:        CellOther,
			Day:         next,
			MonthOffset: 1,
		})
	}

	return Grid{Year: year, Month: month, Cells: cells}, nil
}
