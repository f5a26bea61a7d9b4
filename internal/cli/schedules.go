package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"alcyxob/plan-builder/internal/calendar"
	"alcyxob/plan-builder/internal/domain"
	"alcyxob/plan-builder/internal/repository"
	"alcyxob/plan-builder/internal/view"
)

func newSchedulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "List, create, and edit training schedules",
	}
	cmd.AddCommand(
		newSchedulesListCmd(app),
		newSchedulesCreateCmd(app),
		newSchedulesEditCmd(app),
		newSchedulesShowCmd(app),
	)
	return cmd
}

func newSchedulesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.repo.LoadAll(cmd.Context()); err != nil {
				return err
			}
			for _, s := range app.repo.Schedules() {
				end := s.EndDate.String()
				if s.EndDate.IsZero() {
					end = "Ongoing"
				}
				marker := ""
				if s.IsActive {
					marker = " (Active)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s to %s%s\n", s.ID, s.Name, s.StartDate, end, marker)
			}
			return nil
		},
	}
}

func newSchedulesCreateCmd(app *App) *cobra.Command {
	var name, start, end string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.repo.LoadAll(cmd.Context()); err != nil {
				return err
			}
			draft := app.repo.NewScheduleDraft(name)
			if start != "" {
				d, err := domain.ParseDate(start)
				if err != nil {
					return err
				}
				draft.StartDate = d
			}
			if end != "" {
				d, err := domain.ParseDate(end)
				if err != nil {
					return err
				}
				draft.EndDate = d
			}
			created, err := app.repo.CreateSchedule(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created schedule %d: %s\n", created.ID, created.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "schedule name")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD, empty for ongoing)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSchedulesEditCmd(app *App) *cobra.Command {
	var name, end string
	cmd := &cobra.Command{
		Use:   "edit <schedule-id>",
		Short: "Edit a schedule's name and end date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid schedule id %q", args[0])
			}
			if err := app.repo.LoadAll(cmd.Context()); err != nil {
				return err
			}
			current, ok := app.repo.ScheduleByID(id)
			if !ok {
				return repository.ErrScheduleNotFound
			}
			patch := repository.SchedulePatch{Name: current.Name, EndDate: current.EndDate}
			if name != "" {
				patch.Name = name
			}
			if end != "" {
				d, err := domain.ParseDate(end)
				if err != nil {
					return err
				}
				patch.EndDate = d
			}
			updated, err := app.repo.UpdateSchedule(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated schedule %d: %s\n", updated.ID, updated.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new schedule name")
	cmd.Flags().StringVar(&end, "end", "", "new end date (YYYY-MM-DD)")
	return cmd
}

func newSchedulesShowCmd(app *App) *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "show <schedule-id>",
		Short: "Show a schedule's routines and month calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid schedule id %q", args[0])
			}
			if err := app.repo.LoadAll(cmd.Context()); err != nil {
				return err
			}

			selector := view.NewSelector()
			if err := selector.SelectSchedule(id); err != nil {
				return err
			}
			focusedID, _ := selector.FocusedSchedule()
			schedule, ok := app.repo.ScheduleByID(focusedID)
			if !ok {
				return repository.ErrScheduleNotFound
			}

			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			out := cmd.OutOrStdout()
			end := schedule.EndDate.String()
			if schedule.EndDate.IsZero() {
				end = "Ongoing"
			}
			fmt.Fprintf(out, "%s (%s to %s)\n\n", schedule.Name, schedule.StartDate, end)

			fmt.Fprintf(out, "Routines:\n")
			if len(schedule.Routines) == 0 {
				fmt.Fprintln(out, "  none yet")
			}
			for _, r := range schedule.Routines {
				fmt.Fprintf(out, "  %d\t%-9s %s (%d exercises)\n", r.ID, r.DayOfWeek, r.Name, len(r.Items))
			}

			fmt.Fprintf(out, "\n%s %d:\n", time.Month(month), year)
			for _, day := range calendar.Project(year, time.Month(month), schedule.Routines) {
				if day.HasRoutine() {
					fmt.Fprintf(out, "  %2d %-9s %s\n", day.Number, day.Weekday, day.Routine.Name)
				} else {
					fmt.Fprintf(out, "  %2d %-9s\n", day.Number, day.Weekday)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (defaults to current)")
	cmd.Flags().IntVar(&month, "month", 0, "calendar month 1-12 (defaults to current)")
	return cmd
}
