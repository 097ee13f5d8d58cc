package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/domain/entities"
)

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2025, 0))  // January
	assert.Equal(t, 28, DaysIn(2025, 1))  // February
	assert.Equal(t, 29, DaysIn(2024, 1))  // leap February
	assert.Equal(t, 30, DaysIn(2025, 3))  // April
	assert.Equal(t, 31, DaysIn(2025, 11)) // December
	// Month -1 rolls back into the previous December.
	assert.Equal(t, 31, DaysIn(2025, -1))
}

func TestBuildMonthGridApril2025(t *testing.T) {
	today := time.Date(2025, time.April, 15, 10, 30, 0, 0, time.UTC)

	grid, err := BuildMonthGrid(2025, 3, today, nil)
	require.NoError(t, err)

	assert.Equal(t, 2025, grid.Year)
	assert.Equal(t, 3, grid.Month)

	// April 1st 2025 is a Tuesday: two leading cells, 30 current cells,
	// three trailing cells to close the fifth row.
	require.Len(t, grid.Cells, 35)

	assert.Equal(t, CellOther, grid.Cells[0].Kind)
	assert.Equal(t, 30, grid.Cells[0].Day)
	assert.Equal(t, -1, grid.Cells[0].MonthOffset)
	assert.Equal(t, 31, grid.Cells[1].Day)

	first := grid.Cells[2]
	assert.Equal(t, CellCurrent, first.Kind)
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "2025-04-01", first.Date)

	last := grid.Cells[31]
	assert.Equal(t, 30, last.Day)
	assert.Equal(t, "2025-04-30", last.Date)

	trailing := grid.Cells[32:]
	for i, cell := range trailing {
		assert.Equal(t, CellOther, cell.Kind)
		assert.Equal(t, i+1, cell.Day)
		assert.Equal(t, 1, cell.MonthOffset)
	}
}

func TestBuildMonthGridTodayFlag(t *testing.T) {
	today := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)

	grid, err := BuildMonthGrid(2025, 3, today, nil)
	require.NoError(t, err)

	var flagged []string
	for _, cell := range grid.Cells {
		if cell.Today {
			flagged = append(flagged, cell.Date)
		}
	}
	assert.Equal(t, []string{"2025-04-15"}, flagged)

	// Same day number in a different month is not today.
	grid, err = BuildMonthGrid(2025, 4, today, nil)
	require.NoError(t, err)
	for _, cell := range grid.Cells {
		assert.False(t, cell.Today)
	}
}

func TestBuildMonthGridAttachesTasks(t *testing.T) {
	tasks := []entities.CalendarTask{
		{ID: 1, Title: "Standup", Date: "2025-04-03", Category: entities.CategoryMeeting},
		{ID: 2, Title: "Dentist", Date: "2025-04-03", Category: entities.CategoryPersonal},
		{ID: 3, Title: "Release", Date: "2025-04-28", Category: entities.CategoryWork},
	}

	grid, err := BuildMonthGrid(2025, 3, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), tasks)
	require.NoError(t, err)

	byDate := map[string][]entities.CalendarTask{}
	for _, cell := range grid.Cells {
		if cell.Kind == CellCurrent && len(cell.Tasks) > 0 {
			byDate[cell.Date] = cell.Tasks
		}
	}

	require.Len(t, byDate["2025-04-03"], 2)
	assert.Equal(t, "Standup", byDate["2025-04-03"][0].Title)
	assert.Equal(t, "Dentist", byDate["2025-04-03"][1].Title)
	require.Len(t, byDate["2025-04-28"], 1)
	assert.Len(t, byDate, 2)
}

func TestBuildMonthGridJanuaryRollsYear(t *testing.T) {
	grid, err := BuildMonthGrid(2025, 0, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	// January 1st 2025 is a Wednesday: the three leading cells are the tail
	// of December 2024.
	assert.Equal(t, 29, grid.Cells[0].Day)
	assert.Equal(t, 30, grid.Cells[1].Day)
	assert.Equal(t, 31, grid.Cells[2].Day)
	assert.Equal(t, CellCurrent, grid.Cells[3].Kind)
	assert.Equal(t, "2025-01-01", grid.Cells[3].Date)
}

func TestBuildMonthGridInvalidMonth(t *testing.T) {
	_, err := BuildMonthGrid(2025, -1, time.Now(), nil)
	assert.ErrorIs(t, err, entities.ErrInvalidMonth)

	_, err = BuildMonthGrid(2025, 12, time.Now(), nil)
	assert.ErrorIs(t, err, entities.ErrInvalidMonth)
}

func TestBuildMonthGridRowsAlwaysComplete(t *testing.T) {
	now := time.Now()
	for year := 2023; year <= 2026; year++ {
		for month := 0; month < 12; month++ {
			grid, err := BuildMonthGrid(year, month, now, nil)
			require.NoError(t, err)
			assert.Zerof(t, len(grid.Cells)%7, "year %d month %d", year, month)

			current := 0
			for _, cell := range grid.Cells {
				if cell.Kind == CellCurrent {
					current++
				}
			}
			assert.Equal(t, DaysIn(year, month), current)
		}
	}
}
