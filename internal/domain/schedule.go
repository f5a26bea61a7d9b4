// internal/domain/schedule.go
package domain

// Schedule is a named, date-bounded training plan. A zero EndDate means the
// schedule is ongoing.
//
// IsActive is a cached derivation of IsActive(today, StartDate, EndDate);
// every code path that loads or writes a schedule recomputes it before the
// value is displayed.
//
// Schedules are copy-on-write records: updates produce a new value merged by
// id via ReplaceByID, never an in-place edit, so a list view and a detail
// view can never diverge after a local edit.
type Schedule struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"` // e.g., "Summer Cut 2025"
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	Routines  []Routine `json:"routines"`
}

// WithRoutine returns a copy of the schedule with r appended to its routine
// collection. The receiver is left untouched.
func (s Schedule) WithRoutine(r Routine) Schedule {
	routines := make([]Routine, 0, len(s.Routines)+1)
	routines = append(routines, s.Routines...)
	routines = append(routines, r)
	s.Routines = routines
	return s
}

// WithoutRoutine returns a copy of the schedule with the routine of the given
// id filtered out. The receiver is left untouched.
func (s Schedule) WithoutRoutine(routineID int64) Schedule {
	routines := make([]Routine, 0, len(s.Routines))
	for _, r := range s.Routines {
		if r.ID != routineID {
			routines = append(routines, r)
		}
	}
	s.Routines = routines
	return s
}

// Routine returns the routine with the given id, if the schedule holds one.
func (s Schedule) Routine(routineID int64) (Routine, bool) {
	for _, r := range s.Routines {
		if r.ID == routineID {
			return r, true
		}
	}
	return Routine{}, false
}

// ReplaceByID returns a new slice in which the schedule matching updated.ID
// is swapped for updated. The input slice is never modified. Schedules with
// other ids are carried over as-is; if no entry matches, the result equals
// the input.
func ReplaceByID(schedules []Schedule, updated Schedule) []Schedule {
	out := make([]Schedule, len(schedules))
	for i, s := range schedules {
		if s.ID == updated.ID {
			out[i] = updated
		} else {
			out[i] = s
		}
	}
	return out
}
