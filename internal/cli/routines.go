package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"alcyxob/plan-builder/internal/repository"
	"alcyxob/plan-builder/internal/staging"
)

func newRoutinesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routines",
		Short: "Add and delete routines within a schedule",
	}
	cmd.AddCommand(
		newRoutinesAddCmd(app),
		newRoutinesDeleteCmd(app),
	)
	return cmd
}

func newRoutinesAddCmd(app *App) *cobra.Command {
	var (
		name  string
		day   string
		items []string
	)
	cmd := &cobra.Command{
		Use:   "add <schedule-id>",
		Short: "Create a routine with its staged exercises",
		Long: `Create a routine with its staged exercises in one commit.

Each --item stages one exercise as exercise-id:sets:reps[:weight], in the
order the targets should appear in the routine.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid schedule id %q", args[0])
			}
			if err := app.repo.LoadAll(cmd.Context()); err != nil {
				return err
			}

			buffer := staging.NewBuffer(app.repo.Exercises())
			for _, raw := range items {
				exerciseID, sets, reps, weight, err := parseItemFlag(raw)
				if err != nil {
					return err
				}
				if _, err := buffer.AddDraft(exerciseID, sets, reps, weight); err != nil {
					return fmt.Errorf("stage %q: %w", raw, err)
				}
			}

			routine, err := app.repo.CreateRoutineWithItems(
				cmd.Context(),
				scheduleID,
				repository.RoutineDraft{Name: name, DayOfWeek: day},
				buffer.Drafts(),
			)

			var partial *repository.PartialCommitError
			if errors.As(err, &partial) {
				// The routine exists remotely but some items were not saved;
				// say so explicitly instead of pretending the commit worked.
				fmt.Fprintf(cmd.ErrOrStderr(), "routine %d saved, but %d item(s) failed:\n", partial.RoutineID, len(partial.Failed))
				for _, f := range partial.Failed {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", f.ExerciseName, f.Err)
				}
				buffer.Clear()
				return err
			}
			if err != nil {
				return err
			}

			buffer.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "created routine %d: %s on %s with %d exercise(s)\n",
				routine.ID, routine.Name, routine.DayOfWeek, len(routine.Items))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "routine name")
	cmd.Flags().StringVar(&day, "day", "Monday", "day of week")
	cmd.Flags().StringArrayVar(&items, "item", nil, "staged exercise as exercise-id:sets:reps[:weight] (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRoutinesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <schedule-id> <routine-id>",
		Short: "Delete a routine and its items",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid schedule id %q", args[0])
			}
			routineID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid routine id %q", args[1])
			}
			if err := app.repo.LoadAll(cmd.Context()); err != nil {
				return err
			}
			if err := app.repo.DeleteRoutine(cmd.Context(), scheduleID, routineID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted routine %d\n", routineID)
			return nil
		},
	}
}

// parseItemFlag splits an --item value of the form id:sets:reps[:weight].
func parseItemFlag(raw string) (exerciseID int64, sets, reps int, weight float64, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("invalid item %q: want exercise-id:sets:reps[:weight]", raw)
	}
	exerciseID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid exercise id in %q", raw)
	}
	sets, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid sets in %q", raw)
	}
	reps, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid reps in %q", raw)
	}
	if len(parts) == 4 {
		weight, err = strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("invalid weight in %q", raw)
		}
	}
	return exerciseID, sets, reps, weight, nil
}
