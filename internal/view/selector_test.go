package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_InitialState(t *testing.T) {
	t.Parallel()
	s := NewSelector()

	assert.Equal(t, ListView, s.Base())
	_, ok := s.FocusedSchedule()
	assert.False(t, ok)
	_, ok = s.FocusedRoutine()
	assert.False(t, ok)
}

func TestSelector_ListDetailRoundTrip(t *testing.T) {
	t.Parallel()
	s := NewSelector()

	require.NoError(t, s.SelectSchedule(7))
	assert.Equal(t, DetailView, s.Base())
	id, ok := s.FocusedSchedule()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	require.NoError(t, s.Back())
	assert.Equal(t, ListView, s.Base())
	_, ok = s.FocusedSchedule()
	assert.False(t, ok)
}

func TestSelector_RoutineOverlay(t *testing.T) {
	t.Parallel()
	s := NewSelector()
	require.NoError(t, s.SelectSchedule(7))

	require.NoError(t, s.OpenRoutine(42))
	assert.Equal(t, RoutineOverlay, s.Base())

	// The schedule focus survives the overlay.
	id, ok := s.FocusedSchedule()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	routineID, ok := s.FocusedRoutine()
	require.True(t, ok)
	assert.Equal(t, int64(42), routineID)

	// Closing the overlay returns to the detail view with focus intact.
	require.NoError(t, s.CloseRoutine())
	assert.Equal(t, DetailView, s.Base())
	id, ok = s.FocusedSchedule()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	_, ok = s.FocusedRoutine()
	assert.False(t, ok)
}

func TestSelector_InvalidTransitions(t *testing.T) {
	t.Parallel()
	s := NewSelector()

	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, s.OpenRoutine(1), ErrInvalidTransition)
	assert.ErrorIs(t, s.CloseRoutine(), ErrInvalidTransition)

	require.NoError(t, s.SelectSchedule(1))
	assert.ErrorIs(t, s.SelectSchedule(2), ErrInvalidTransition)

	require.NoError(t, s.OpenRoutine(10))
	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
}

func TestSelector_ModalsComposeWithBaseState(t *testing.T) {
	t.Parallel()
	s := NewSelector()
	require.NoError(t, s.SelectSchedule(3))

	s.OpenModal(ModalEditSchedule)
	s.OpenModal(ModalCreateRoutine)

	// Opening modals changes neither the base state nor the focus.
	assert.Equal(t, DetailView, s.Base())
	id, ok := s.FocusedSchedule()
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
	assert.True(t, s.ModalOpen(ModalEditSchedule))
	assert.True(t, s.ModalOpen(ModalCreateRoutine))
	assert.False(t, s.ModalOpen(ModalCreateSchedule))

	s.CloseModal(ModalEditSchedule)
	assert.False(t, s.ModalOpen(ModalEditSchedule))
	assert.True(t, s.ModalOpen(ModalCreateRoutine))
	assert.Equal(t, DetailView, s.Base())
}

func TestBase_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "list", ListView.String())
	assert.Equal(t, "detail", DetailView.String())
	assert.Equal(t, "routine-overlay", RoutineOverlay.String())
	assert.Equal(t, "unknown", Base(99).String())
}
