// internal/domain/routine.go
package domain

// DaysOfWeek lists the valid Routine.DayOfWeek values, Monday first, matching
// the remote store's choices.
var DaysOfWeek = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// IsValidDayOfWeek reports whether day is one of DaysOfWeek.
func IsValidDayOfWeek(day string) bool {
	for _, d := range DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// Routine is a weekday-tagged workout template within a Schedule. ScheduleID
// is a back-reference, not ownership: the Schedule owns its routines.
//
// Nothing here stops a Schedule from holding two Routines on the same
// weekday; the calendar shows only the first match. See calendar.Project.
type Routine struct {
	ID         int64         `json:"id"`
	ScheduleID int64         `json:"schedule"`
	Name       string        `json:"name"` // e.g., "Pull Day"
	DayOfWeek  string        `json:"day_of_week"`
	Items      []RoutineItem `json:"items"` // ordered by Order
}

// MatchesWeekday reports whether the routine is pinned to date's weekday.
// Malformed dates never match.
func (r Routine) MatchesWeekday(date Date) bool {
	name, err := date.Weekday()
	if err != nil {
		return false
	}
	return r.DayOfWeek == name
}

// RoutineItem is a target (sets x reps at a weight) for one Exercise within a
// Routine. ExerciseName is denormalized so a routine renders without joining
// against the exercise library. Items are owned exclusively by their Routine
// and are created only as part of routine creation.
type RoutineItem struct {
	ID           int64   `json:"id"`
	RoutineID    int64   `json:"routine"`
	ExerciseID   int64   `json:"exercise"`
	ExerciseName string  `json:"exercise_name"`
	TargetSets   int     `json:"target_sets"`
	TargetReps   int     `json:"target_reps"`
	TargetWeight float64 `json:"target_weight"` // kg, 0 when untracked
	Order        int     `json:"order"`        // position within the routine
}
