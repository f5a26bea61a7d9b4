// internal/view/selector.go

// Package view tracks which part of the planner surface is focused: a small
// explicit state machine instead of scattered "currently selected" globals.
package view

import "errors"

// ErrInvalidTransition is returned when a transition is requested from a base
// state that does not allow it.
var ErrInvalidTransition = errors.New("invalid view transition")

// Base is the planner surface's base state.
type Base int

const (
	// ListView shows the flat schedule list. Initial state.
	ListView Base = iota
	// DetailView shows one schedule's calendar and routines.
	DetailView
	// RoutineOverlay shows one routine's items on top of DetailView.
	RoutineOverlay
)

func (b Base) String() string {
	switch b {
	case ListView:
		return "list"
	case DetailView:
		return "detail"
	case RoutineOverlay:
		return "routine-overlay"
	default:
		return "unknown"
	}
}

// Modal identifies a dialog that composes with any base state.
type Modal string

const (
	ModalCreateSchedule Modal = "create-schedule"
	ModalEditSchedule   Modal = "edit-schedule"
	ModalCreateRoutine  Modal = "create-routine"
)

// Selector holds the focused schedule and routine as ids only. Entities are
// resolved from the repository at render time, so there is never a second
// copy of a schedule that can drift after an edit.
//
// Modals never replace the base state: opening one changes no focus and
// closing one restores exactly the view underneath.
type Selector struct {
	base       Base
	scheduleID int64
	routineID  int64
	modals     map[Modal]bool
}

// NewSelector starts at ListView with nothing focused and no modals open.
func NewSelector() *Selector {
	return &Selector{base: ListView, modals: make(map[Modal]bool)}
}

// Base returns the current base state.
func (s *Selector) Base() Base { return s.base }

// FocusedSchedule returns the focused schedule id, if any.
func (s *Selector) FocusedSchedule() (int64, bool) {
	if s.base == ListView {
		return 0, false
	}
	return s.scheduleID, true
}

// FocusedRoutine returns the overlaid routine id, if any.
func (s *Selector) FocusedRoutine() (int64, bool) {
	if s.base != RoutineOverlay {
		return 0, false
	}
	return s.routineID, true
}

// SelectSchedule moves List -> Detail, focusing the given schedule.
func (s *Selector) SelectSchedule(scheduleID int64) error {
	if s.base != ListView {
		return ErrInvalidTransition
	}
	s.base = DetailView
	s.scheduleID = scheduleID
	return nil
}

// Back moves Detail -> List, dropping the schedule focus.
func (s *Selector) Back() error {
	if s.base != DetailView {
		return ErrInvalidTransition
	}
	s.base = ListView
	s.scheduleID = 0
	return nil
}

// OpenRoutine overlays a routine on the detail view without leaving it.
func (s *Selector) OpenRoutine(routineID int64) error {
	if s.base != DetailView {
		return ErrInvalidTransition
	}
	s.base = RoutineOverlay
	s.routineID = routineID
	return nil
}

// CloseRoutine dismisses the overlay, returning to the detail view with the
// schedule focus intact.
func (s *Selector) CloseRoutine() error {
	if s.base != RoutineOverlay {
		return ErrInvalidTransition
	}
	s.base = DetailView
	s.routineID = 0
	return nil
}

// OpenModal shows a dialog over the current base state.
func (s *Selector) OpenModal(m Modal) { s.modals[m] = true }

// CloseModal dismisses a dialog; the base state is untouched.
func (s *Selector) CloseModal(m Modal) { delete(s.modals, m) }

// ModalOpen reports whether the given dialog is showing.
func (s *Selector) ModalOpen(m Modal) bool { return s.modals[m] }
