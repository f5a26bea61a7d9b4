// internal/api/dto.go
package api

import (
	"fmt"

	"alcyxob/plan-builder/internal/domain"
)

// Wire payloads for the remote plan store. Field names mirror the
// collaborator's serializers exactly (snake_case, integer primary keys,
// nullable end_date). Decoding happens only here, at the repository boundary;
// malformed records are rejected or quarantined before they can reach the
// entity model.

type exercisePayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
}

func (p exercisePayload) toDomain() (domain.Exercise, error) {
	if p.ID == 0 || p.Name == "" {
		return domain.Exercise{}, fmt.Errorf("exercise record missing id or name")
	}
	return domain.Exercise{ID: p.ID, Name: p.Name, MuscleGroup: p.MuscleGroup}, nil
}

type itemPayload struct {
	ID           int64   `json:"id"`
	Routine      int64   `json:"routine"`
	Exercise     int64   `json:"exercise"`
	ExerciseName string  `json:"exercise_name"`
	TargetSets   int     `json:"target_sets"`
	TargetReps   int     `json:"target_reps"`
	TargetWeight float64 `json:"target_weight"`
	Order        int     `json:"order"`
}

func (p itemPayload) toDomain() (domain.RoutineItem, error) {
	if p.ID == 0 {
		return domain.RoutineItem{}, fmt.Errorf("item record missing id")
	}
	if p.TargetSets <= 0 || p.TargetReps <= 0 {
		return domain.RoutineItem{}, fmt.Errorf("item %d has non-positive targets", p.ID)
	}
	return domain.RoutineItem{
		ID:           p.ID,
		RoutineID:    p.Routine,
		ExerciseID:   p.Exercise,
		ExerciseName: p.ExerciseName,
		TargetSets:   p.TargetSets,
		TargetReps:   p.TargetReps,
		TargetWeight: p.TargetWeight,
		Order:        p.Order,
	}, nil
}

type routinePayload struct {
	ID        int64         `json:"id"`
	Schedule  int64         `json:"schedule"`
	Name      string        `json:"name"`
	DayOfWeek string        `json:"day_of_week"`
	Items     []itemPayload `json:"items"`
}

func (p routinePayload) toDomain() (domain.Routine, error) {
	if p.ID == 0 {
		return domain.Routine{}, fmt.Errorf("routine record missing id")
	}
	if !domain.IsValidDayOfWeek(p.DayOfWeek) {
		return domain.Routine{}, fmt.Errorf("routine %d has invalid day_of_week %q", p.ID, p.DayOfWeek)
	}
	routine := domain.Routine{
		ID:         p.ID,
		ScheduleID: p.Schedule,
		Name:       p.Name,
		DayOfWeek:  p.DayOfWeek,
	}
	for _, ip := range p.Items {
		item, err := ip.toDomain()
		if err != nil {
			return domain.Routine{}, fmt.Errorf("routine %d: %w", p.ID, err)
		}
		routine.Items = append(routine.Items, item)
	}
	return routine, nil
}

type schedulePayload struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	StartDate string           `json:"start_date"`
	EndDate   *string          `json:"end_date"`
	IsActive  bool             `json:"is_active"`
	Routines  []routinePayload `json:"routines"`
}

func (p schedulePayload) toDomain() (domain.Schedule, error) {
	if p.ID == 0 {
		return domain.Schedule{}, fmt.Errorf("schedule record missing id")
	}
	start, err := domain.ParseDate(p.StartDate)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("schedule %d: %w", p.ID, err)
	}
	var end domain.Date
	if p.EndDate != nil && *p.EndDate != "" {
		end, err = domain.ParseDate(*p.EndDate)
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("schedule %d: %w", p.ID, err)
		}
	}
	schedule := domain.Schedule{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: start,
		EndDate:   end,
		IsActive:  p.IsActive,
	}
	for _, rp := range p.Routines {
		routine, err := rp.toDomain()
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("schedule %d: %w", p.ID, err)
		}
		schedule.Routines = append(schedule.Routines, routine)
	}
	return schedule, nil
}

// optionalDate renders a Date as the collaborator's nullable end_date.
func optionalDate(d domain.Date) *string {
	if d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

type createSchedulePayload struct {
	Name      string  `json:"name"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  bool    `json:"is_active"`
}

type patchSchedulePayload struct {
	Name     string  `json:"name"`
	EndDate  *string `json:"end_date"`
	IsActive bool    `json:"is_active"`
}

type createRoutinePayload struct {
	Schedule  int64  `json:"schedule"`
	Name      string `json:"name"`
	DayOfWeek string `json:"day_of_week"`
}

type createItemPayload struct {
	Routine      int64   `json:"routine"`
	Exercise     int64   `json:"exercise"`
	TargetSets   int     `json:"target_sets"`
	TargetReps   int     `json:"target_reps"`
	TargetWeight float64 `json:"target_weight"`
	Order        int     `json:"order"`
}
