// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/plan-builder/internal/api"
	"alcyxob/plan-builder/internal/domain"
)

// --- Error Definitions ---
var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidDateRange = errors.New("end date precedes start date")
	ErrInvalidDayOfWeek = errors.New("invalid day of week")
)

// RemoteClient is the slice of the remote store's API the repository
// consumes. *api.Client satisfies it; tests substitute a fake.
type RemoteClient interface {
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	ListSchedules(ctx context.Context) ([]domain.Schedule, error)
	CreateSchedule(ctx context.Context, draft api.ScheduleDraft) (domain.Schedule, error)
	UpdateSchedule(ctx context.Context, id int64, patch api.SchedulePatch) (domain.Schedule, error)
	CreateRoutine(ctx context.Context, scheduleID int64, name, dayOfWeek string) (domain.Routine, error)
	CreateItem(ctx context.Context, draft api.ItemDraft) (domain.RoutineItem, error)
	DeleteRoutine(ctx context.Context, routineID int64) error
}

// PartialCommitError reports a routine creation that succeeded at phase 1
// (the routine exists remotely) but not fully at phase 2 (one or more items
// were not persisted). This is the one condition where local and remote state
// diverge; callers must surface it, never fold it into a plain success.
// The merged local routine carries exactly the items the server confirmed;
// the rest are listed here. Reconciliation is left to a future re-fetch.
type PartialCommitError struct {
	RoutineID int64
	Failed    []FailedItem
}

// FailedItem identifies one staged item that was not persisted.
type FailedItem struct {
	ExerciseName string
	Err          error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("routine %d committed with %d unsaved item(s)", e.RoutineID, len(e.Failed))
}
