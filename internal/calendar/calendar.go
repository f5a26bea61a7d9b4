// internal/calendar/calendar.go

// Package calendar projects a schedule's weekday-tagged routines onto the
// days of a month. The projection is pure: it is recomputed from the current
// entity model on every render and holds no state of its own.
package calendar

import (
	"time"

	"alcyxob/plan-builder/internal/domain"
)

// Day is one cell of the month grid.
type Day struct {
	Date    domain.Date
	Number  int    // day of month, 1-based
	Weekday string // long name, "Monday" .. "Sunday"
	Routine *domain.Routine
}

// HasRoutine reports whether the day carries an event.
func (d Day) HasRoutine() bool { return d.Routine != nil }

// Project enumerates every day of the given month and attaches the first
// routine whose DayOfWeek matches the day's weekday, or leaves the day bare.
//
// Tie-break: when two routines share a weekday, the first one in the slice's
// order wins and the rest never appear on the calendar. Whether duplicate
// weekdays should be allowed at all is an open product question; the
// projection deliberately does not resolve it.
func Project(year int, month time.Month, routines []domain.Routine) []Day {
	days := daysIn(year, month)
	grid := make([]Day, 0, days)
	for n := 1; n <= days; n++ {
		date := time.Date(year, month, n, 0, 0, 0, 0, time.UTC)
		day := Day{
			Date:    domain.NewDate(date),
			Number:  n,
			Weekday: date.Weekday().String(),
		}
		for i := range routines {
			if routines[i].DayOfWeek == day.Weekday {
				routine := routines[i]
				day.Routine = &routine
				break
			}
		}
		grid = append(grid, day)
	}
	return grid
}

// daysIn returns the number of days in the month; day 0 of the next month
// normalizes to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
