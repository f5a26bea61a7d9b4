// internal/repository/plan_repo.go
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"alcyxob/plan-builder/internal/api"
	"alcyxob/plan-builder/internal/domain"
	"alcyxob/plan-builder/internal/staging"
)

// PlanRepository owns the local schedules and exercises collections and is
// the only component that calls the remote store. Every mutation follows the
// same shape: translate the local intent into remote operations, and on
// success merge the server-authoritative result (ids, canonical fields) back
// into a fresh copy of the local collection. On failure the collection is
// left byte-for-byte unchanged; there is no optimistic insert before the
// server confirms, and no silent retry.
type PlanRepository struct {
	client RemoteClient
	logger zerolog.Logger

	// now is injected so IsActive recomputation is testable without
	// wall-clock coupling.
	now func() time.Time

	mu        sync.RWMutex
	schedules []domain.Schedule
	exercises []domain.Exercise
	loaded    bool
}

// NewPlanRepository creates a repository backed by the given remote client.
func NewPlanRepository(client RemoteClient, logger zerolog.Logger) *PlanRepository {
	return &PlanRepository{
		client: client,
		logger: logger.With().Str("component", "repository").Logger(),
		now:    time.Now,
	}
}

// today is the reference date for every IsActive recomputation.
func (r *PlanRepository) today() domain.Date {
	return domain.NewDate(r.now())
}

// ScheduleDraft is the user's input for a new schedule. A zero EndDate means
// the schedule is ongoing.
type ScheduleDraft struct {
	Name      string
	StartDate domain.Date
	EndDate   domain.Date
}

// NewScheduleDraft returns a draft whose start date defaults to today, the
// same convenience the create form offers. Callers may override it before
// submitting.
func (r *PlanRepository) NewScheduleDraft(name string) ScheduleDraft {
	return ScheduleDraft{Name: name, StartDate: r.today()}
}

// SchedulePatch is a partial schedule update: only the name and end date are
// editable, the start date is immutable after creation.
type SchedulePatch struct {
	Name    string
	EndDate domain.Date
}

// RoutineDraft is the user's input for a new routine shell.
type RoutineDraft struct {
	Name      string
	DayOfWeek string
}

// LoadAll fetches the schedule and exercise collections concurrently and
// fails as a unit: both requests are in flight at once, completion is
// observed only when both settle, and the first error fails the join leaving
// the local model untouched. IsActive is recomputed for every loaded
// schedule; the cached value from the store is never trusted.
func (r *PlanRepository) LoadAll(ctx context.Context) error {
	var (
		schedules []domain.Schedule
		exercises []domain.Exercise
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schedules, err = r.client.ListSchedules(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		exercises, err = r.client.ListExercises(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	today := r.today()
	for i := range schedules {
		schedules[i].IsActive = domain.IsActive(today, schedules[i].StartDate, schedules[i].EndDate)
	}

	r.mu.Lock()
	r.schedules = schedules
	r.exercises = exercises
	r.loaded = true
	r.mu.Unlock()

	r.logger.Info().
		Int("schedules", len(schedules)).
		Int("exercises", len(exercises)).
		Msg("loaded plan data")
	return nil
}

// Loaded reports whether LoadAll has succeeded at least once.
func (r *PlanRepository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Schedules returns a copy of the schedule collection in display order
// (newest created first).
func (r *PlanRepository) Schedules() []domain.Schedule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Schedule, len(r.schedules))
	copy(out, r.schedules)
	return out
}

// Exercises returns a copy of the exercise library.
func (r *PlanRepository) Exercises() []domain.Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Exercise, len(r.exercises))
	copy(out, r.exercises)
	return out
}

// ScheduleByID resolves a schedule from the local collection. Views hold
// focus as an id and resolve through here at render time, so a merge is
// visible everywhere at once.
func (r *PlanRepository) ScheduleByID(id int64) (domain.Schedule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return findSchedule(r.schedules, id)
}

// CreateSchedule validates the draft, computes IsActive from today's date,
// and persists it. On success the server-returned schedule (authoritative id)
// is prepended to the local collection; on any failure the collection is
// unchanged and the error is returned to the caller.
func (r *PlanRepository) CreateSchedule(ctx context.Context, draft ScheduleDraft) (domain.Schedule, error) {
	if draft.Name == "" || draft.StartDate.IsZero() {
		return domain.Schedule{}, ErrValidationFailed
	}
	if !draft.EndDate.IsZero() && draft.EndDate.Before(draft.StartDate) {
		return domain.Schedule{}, ErrInvalidDateRange
	}

	today := r.today()
	created, err := r.client.CreateSchedule(ctx, api.ScheduleDraft{
		Name:      draft.Name,
		StartDate: draft.StartDate,
		EndDate:   draft.EndDate,
		IsActive:  domain.IsActive(today, draft.StartDate, draft.EndDate),
	})
	if err != nil {
		return domain.Schedule{}, err
	}
	created.IsActive = domain.IsActive(today, created.StartDate, created.EndDate)

	r.mu.Lock()
	r.schedules = append([]domain.Schedule{created}, r.schedules...)
	r.mu.Unlock()

	r.logger.Info().Int64("schedule_id", created.ID).Str("name", created.Name).Msg("schedule created")
	return created, nil
}

// UpdateSchedule applies a name/end-date patch. IsActive is recomputed from
// the patch's end date and the existing start date before sending. On success
// the matching entry is replaced by id, so the flat list and a focused detail
// view (which resolves by id) both reflect the new value without a re-fetch.
func (r *PlanRepository) UpdateSchedule(ctx context.Context, id int64, patch SchedulePatch) (domain.Schedule, error) {
	r.mu.RLock()
	current, ok := findSchedule(r.schedules, id)
	r.mu.RUnlock()
	if !ok {
		return domain.Schedule{}, ErrScheduleNotFound
	}
	if patch.Name == "" {
		return domain.Schedule{}, ErrValidationFailed
	}
	if !patch.EndDate.IsZero() && patch.EndDate.Before(current.StartDate) {
		return domain.Schedule{}, ErrInvalidDateRange
	}

	today := r.today()
	updated, err := r.client.UpdateSchedule(ctx, id, api.SchedulePatch{
		Name:     patch.Name,
		EndDate:  patch.EndDate,
		IsActive: domain.IsActive(today, current.StartDate, patch.EndDate),
	})
	if err != nil {
		return domain.Schedule{}, err
	}
	updated.IsActive = domain.IsActive(today, updated.StartDate, updated.EndDate)

	r.mu.Lock()
	r.schedules = domain.ReplaceByID(r.schedules, updated)
	r.mu.Unlock()

	r.logger.Info().Int64("schedule_id", updated.ID).Msg("schedule updated")
	return updated, nil
}

// CreateRoutineWithItems commits a staged routine with a two-phase, non-atomic
// protocol against a store that has no transactional endpoint:
//
//  1. Create the routine shell, obtaining its id. If this fails, nothing was
//     persisted and the local collection is untouched.
//  2. Create every staged item concurrently, each referencing the new routine
//     id. The batch is unordered in flight but the merged result preserves
//     submission order, and each item's Order field is its draft index. A
//     failing item does not cancel its in-flight siblings.
//
// If any phase-2 item fails, the routine exists remotely with a partial item
// set. The merged local routine then carries exactly the items the server
// confirmed, and the returned error is a *PartialCommitError naming the rest;
// callers must report it, not treat the commit as a success.
//
// Neither phase retries: creates are not idempotent and a hidden retry would
// duplicate remote entities.
func (r *PlanRepository) CreateRoutineWithItems(ctx context.Context, scheduleID int64, draft RoutineDraft, drafts []staging.Draft) (domain.Routine, error) {
	if draft.Name == "" {
		return domain.Routine{}, ErrValidationFailed
	}
	if !domain.IsValidDayOfWeek(draft.DayOfWeek) {
		return domain.Routine{}, ErrInvalidDayOfWeek
	}
	r.mu.RLock()
	_, ok := findSchedule(r.schedules, scheduleID)
	r.mu.RUnlock()
	if !ok {
		return domain.Routine{}, ErrScheduleNotFound
	}

	// Phase 1: the routine shell.
	routine, err := r.client.CreateRoutine(ctx, scheduleID, draft.Name, draft.DayOfWeek)
	if err != nil {
		return domain.Routine{}, err
	}
	routine.ScheduleID = scheduleID

	// Phase 2: all items in flight at once, results indexed by draft position
	// so submission order survives unordered completion.
	items := make([]domain.RoutineItem, len(drafts))
	errs := make([]error, len(drafts))
	var wg sync.WaitGroup
	for i, d := range drafts {
		wg.Add(1)
		go func(i int, d staging.Draft) {
			defer wg.Done()
			items[i], errs[i] = r.client.CreateItem(ctx, api.ItemDraft{
				RoutineID:    routine.ID,
				ExerciseID:   d.ExerciseID,
				TargetSets:   d.TargetSets,
				TargetReps:   d.TargetReps,
				TargetWeight: d.TargetWeight,
				Order:        i,
			})
		}(i, d)
	}
	wg.Wait()

	var failed []FailedItem
	confirmed := make([]domain.RoutineItem, 0, len(drafts))
	for i, itemErr := range errs {
		if itemErr != nil {
			failed = append(failed, FailedItem{ExerciseName: drafts[i].ExerciseName, Err: itemErr})
			continue
		}
		confirmed = append(confirmed, items[i])
	}
	routine.Items = confirmed

	// Merge the new routine into the owning schedule without a re-fetch; the
	// flat collection is replaced so every view sees the same value.
	r.mu.Lock()
	if schedule, ok := findSchedule(r.schedules, scheduleID); ok {
		r.schedules = domain.ReplaceByID(r.schedules, schedule.WithRoutine(routine))
	}
	r.mu.Unlock()

	if len(failed) > 0 {
		r.logger.Error().
			Int64("routine_id", routine.ID).
			Int("failed_items", len(failed)).
			Msg("routine committed with unsaved items")
		return routine, &PartialCommitError{RoutineID: routine.ID, Failed: failed}
	}

	r.logger.Info().
		Int64("routine_id", routine.ID).
		Int("items", len(confirmed)).
		Msg("routine created")
	return routine, nil
}

// DeleteRoutine removes a routine remotely (the store cascades to its items)
// and, on success, filters it out of the owning schedule. On failure the
// routine remains in the local collection and the error is surfaced.
func (r *PlanRepository) DeleteRoutine(ctx context.Context, scheduleID, routineID int64) error {
	r.mu.RLock()
	schedule, ok := findSchedule(r.schedules, scheduleID)
	r.mu.RUnlock()
	if !ok {
		return ErrScheduleNotFound
	}
	if _, ok := schedule.Routine(routineID); !ok {
		return ErrRoutineNotFound
	}

	if err := r.client.DeleteRoutine(ctx, routineID); err != nil {
		return err
	}

	r.mu.Lock()
	if schedule, ok := findSchedule(r.schedules, scheduleID); ok {
		r.schedules = domain.ReplaceByID(r.schedules, schedule.WithoutRoutine(routineID))
	}
	r.mu.Unlock()

	r.logger.Info().Int64("routine_id", routineID).Msg("routine deleted")
	return nil
}

func findSchedule(schedules []domain.Schedule, id int64) (domain.Schedule, bool) {
	for _, s := range schedules {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Schedule{}, false
}
