// internal/staging/buffer.go
package staging

import (
	"errors"

	"github.com/google/uuid"

	"alcyxob/plan-builder/internal/domain"
)

// --- Error Definitions ---
var (
	ErrNoExerciseSelected = errors.New("no exercise selected")
	ErrUnknownExercise    = errors.New("exercise not found in library")
	ErrInvalidTarget      = errors.New("target sets and reps must be positive")
)

// Draft is a RoutineItem-shaped draft held client-side before commit.
//
// TempID exists only so callers can key drafts in a list; it is unique for
// the lifetime of the buffer and is never sent to the server. The server
// assigns the real id when the draft is promoted.
type Draft struct {
	TempID       string
	ExerciseID   int64
	ExerciseName string // denormalized from the library at staging time
	TargetSets   int
	TargetReps   int
	TargetWeight float64
}

// Buffer accumulates routine item drafts during one open create-routine
// interaction. Insertion order is preserved and becomes each promoted item's
// Order field (the draft's index).
//
// A Buffer belongs to a single interaction: discard it (or Clear it) on
// cancel, Clear it after a successful commit.
type Buffer struct {
	library map[int64]domain.Exercise
	drafts  []Draft
}

// NewBuffer creates a buffer that resolves display names against the given
// exercise library snapshot.
func NewBuffer(library []domain.Exercise) *Buffer {
	m := make(map[int64]domain.Exercise, len(library))
	for _, ex := range library {
		m[ex.ID] = ex
	}
	return &Buffer{library: m}
}

// AddDraft stages one item. A zero exerciseID is rejected so callers can keep
// the action disabled until an exercise is picked; the buffer is left
// unchanged on any error.
func (b *Buffer) AddDraft(exerciseID int64, sets, reps int, weight float64) (Draft, error) {
	if exerciseID == 0 {
		return Draft{}, ErrNoExerciseSelected
	}
	ex, ok := b.library[exerciseID]
	if !ok {
		return Draft{}, ErrUnknownExercise
	}
	if sets <= 0 || reps <= 0 {
		return Draft{}, ErrInvalidTarget
	}

	draft := Draft{
		TempID:       uuid.NewString(),
		ExerciseID:   exerciseID,
		ExerciseName: ex.Name,
		TargetSets:   sets,
		TargetReps:   reps,
		TargetWeight: weight,
	}
	b.drafts = append(b.drafts, draft)
	return draft, nil
}

// Drafts returns the staged items in insertion order. The slice is a copy;
// mutating it does not affect the buffer.
func (b *Buffer) Drafts() []Draft {
	out := make([]Draft, len(b.drafts))
	copy(out, b.drafts)
	return out
}

// Len reports the number of staged drafts.
func (b *Buffer) Len() int { return len(b.drafts) }

// Clear discards all drafts. Called on cancel and after a successful commit.
func (b *Buffer) Clear() { b.drafts = nil }
