// internal/domain/exercise.go
package domain

// Exercise is a single exercise definition from the library. The library is
// owned by the remote store and is read-only to the plan builder; nothing in
// this module ever creates or mutates one.
type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"` // e.g., "Chest", "Legs", "Back"
}
