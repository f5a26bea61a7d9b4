// internal/domain/activity.go
package domain

// IsActive reports whether a schedule bounded by [start, end] contains today.
// A zero end means the schedule is ongoing. The reference date is supplied by
// the caller, never read from the wall clock, so the evaluation is pure:
//
//	today == start     -> true
//	today == end       -> true
//	today == end + 1d  -> false
//
// IsActive is the single source of truth for Schedule.IsActive; the cached
// field is recomputed from this function on every load and write, never
// trusted stale from a prior response.
func IsActive(today, start, end Date) bool {
	return today.WithinRange(start, end)
}
