package repository

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/plan-builder/internal/api"
	"alcyxob/plan-builder/internal/remote"
	"alcyxob/plan-builder/internal/staging"
)

// These tests run the repository against the gin fake over real HTTP, so the
// whole chain (wire DTOs, error mapping, two-phase commit) is exercised the
// way production traffic would.

func newRemoteRepo(t *testing.T) (*PlanRepository, *remote.Stub) {
	t.Helper()
	stub := remote.NewStub("integration-token")
	stub.SeedExercise("Bench Press", "Chest")
	stub.SeedExercise("Squat", "Legs")
	stub.SeedExercise("Deadlift", "Back")
	stub.SeedSchedule("Strength Base", "2025-01-01", "", true)

	server := httptest.NewServer(stub.Router())
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, api.StaticToken("integration-token"), 5*time.Second, zerolog.Nop())
	repo := NewPlanRepository(client, zerolog.Nop())
	repo.now = func() time.Time {
		return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	}
	return repo, stub
}

func stageAll(t *testing.T, repo *PlanRepository) []staging.Draft {
	t.Helper()
	buffer := staging.NewBuffer(repo.Exercises())
	for _, ex := range repo.Exercises() {
		_, err := buffer.AddDraft(ex.ID, 3, 10, 50)
		require.NoError(t, err)
	}
	return buffer.Drafts()
}

func TestPlanRepository_RemoteRoundTrip(t *testing.T) {
	t.Parallel()
	repo, _ := newRemoteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.LoadAll(ctx))
	require.Len(t, repo.Schedules(), 1)
	scheduleID := repo.Schedules()[0].ID

	routine, err := repo.CreateRoutineWithItems(ctx, scheduleID,
		RoutineDraft{Name: "Full Body", DayOfWeek: "Monday"}, stageAll(t, repo))
	require.NoError(t, err)
	require.Len(t, routine.Items, 3)
	for i, item := range routine.Items {
		assert.Equal(t, i, item.Order)
		assert.NotZero(t, item.ID, "items carry server-assigned ids")
	}

	// A fresh load from the store agrees with the locally merged state.
	localSchedule, ok := repo.ScheduleByID(scheduleID)
	require.True(t, ok)
	require.NoError(t, repo.LoadAll(ctx))
	fetched, ok := repo.ScheduleByID(scheduleID)
	require.True(t, ok)
	require.Len(t, fetched.Routines, 1)
	// The store persisted items in completion order, which is unordered; the
	// Order field still identifies each item's submitted position.
	assert.ElementsMatch(t, localSchedule.Routines[0].Items, fetched.Routines[0].Items)

	require.NoError(t, repo.DeleteRoutine(ctx, scheduleID, routine.ID))
	require.NoError(t, repo.LoadAll(ctx))
	fetched, _ = repo.ScheduleByID(scheduleID)
	assert.Empty(t, fetched.Routines, "delete cascaded remotely")
}

func TestPlanRepository_RemotePhase1Rejection(t *testing.T) {
	t.Parallel()
	repo, stub := newRemoteRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.LoadAll(ctx))
	scheduleID := repo.Schedules()[0].ID
	before := repo.Schedules()

	stub.RejectNextRoutineCreate(1)
	_, err := repo.CreateRoutineWithItems(ctx, scheduleID,
		RoutineDraft{Name: "Doomed", DayOfWeek: "Friday"}, stageAll(t, repo))

	var rejected *api.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, before, repo.Schedules())
}

func TestPlanRepository_RemoteAllItemsRejected(t *testing.T) {
	t.Parallel()
	repo, stub := newRemoteRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.LoadAll(ctx))
	scheduleID := repo.Schedules()[0].ID

	drafts := stageAll(t, repo)
	stub.RejectNextItemCreates(len(drafts))
	routine, err := repo.CreateRoutineWithItems(ctx, scheduleID,
		RoutineDraft{Name: "Empty Shell", DayOfWeek: "Sunday"}, drafts)

	var partial *PartialCommitError
	require.ErrorAs(t, err, &partial)
	assert.Len(t, partial.Failed, len(drafts))
	assert.Empty(t, routine.Items)
	assert.Zero(t, stub.ItemCount(routine.ID), "the shell exists remotely with no items")
}
