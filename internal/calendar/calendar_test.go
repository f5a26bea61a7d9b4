package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/plan-builder/internal/domain"
)

func TestProject_EmptyRoutines(t *testing.T) {
	t.Parallel()
	grid := Project(2025, time.January, nil)

	require.Len(t, grid, 31)
	for _, day := range grid {
		assert.False(t, day.HasRoutine(), "day %d should be bare", day.Number)
	}
}

func TestProject_DayShape(t *testing.T) {
	t.Parallel()
	grid := Project(2025, time.January, nil)

	// 2025-01-01 is a Wednesday.
	assert.Equal(t, 1, grid[0].Number)
	assert.Equal(t, "Wednesday", grid[0].Weekday)
	assert.Equal(t, domain.Date("2025-01-01"), grid[0].Date)
	assert.Equal(t, domain.Date("2025-01-31"), grid[30].Date)
}

func TestProject_MonthLengths(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		year  int
		month time.Month
		days  int
	}{
		{"january", 2025, time.January, 31},
		{"april", 2025, time.April, 30},
		{"february common year", 2025, time.February, 28},
		{"february leap year", 2024, time.February, 29},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, Project(tt.year, tt.month, nil), tt.days)
		})
	}
}

func TestProject_WeekdayRoutine(t *testing.T) {
	t.Parallel()
	routines := []domain.Routine{
		{ID: 1, Name: "Pull Day", DayOfWeek: "Monday"},
	}

	// April 2026 is a 30-day month starting on a Wednesday; its Mondays are
	// the 6th, 13th, 20th, and 27th.
	grid := Project(2026, time.April, routines)
	require.Len(t, grid, 30)
	require.Equal(t, "Wednesday", grid[0].Weekday)

	var mondays []int
	for _, day := range grid {
		if day.HasRoutine() {
			assert.Equal(t, "Monday", day.Weekday)
			assert.Equal(t, "Pull Day", day.Routine.Name)
			mondays = append(mondays, day.Number)
		}
	}
	assert.Equal(t, []int{6, 13, 20, 27}, mondays)
}

func TestProject_DuplicateWeekdayFirstWins(t *testing.T) {
	t.Parallel()
	routines := []domain.Routine{
		{ID: 1, Name: "Push Day", DayOfWeek: "Friday"},
		{ID: 2, Name: "Leg Day", DayOfWeek: "Friday"},
	}

	grid := Project(2025, time.January, routines)

	matches := 0
	for _, day := range grid {
		if day.Weekday != "Friday" {
			assert.False(t, day.HasRoutine())
			continue
		}
		// Exactly one event per matching date, never two, and always the
		// first-registered routine.
		require.True(t, day.HasRoutine())
		assert.Equal(t, int64(1), day.Routine.ID)
		matches++
	}
	assert.Equal(t, 5, matches) // January 2025 has five Fridays
}

func TestProject_RoutineIsACopy(t *testing.T) {
	t.Parallel()
	routines := []domain.Routine{{ID: 1, Name: "Push Day", DayOfWeek: "Monday"}}

	grid := Project(2025, time.January, routines)

	for _, day := range grid {
		if day.HasRoutine() {
			day.Routine.Name = "tampered"
		}
	}
	assert.Equal(t, "Push Day", routines[0].Name)
}
