package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/weekwise/internal/cli/formatter"
	"github.com/alexanderramin/weekwise/internal/domain"
)

func newTasksCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Fetch open Jira tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, err := app.plannerUseCase()
			if err != nil {
				return err
			}
			tasks, err := planner.FetchJiraTasks(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				if tasks == nil {
					tasks = []domain.JiraTask{}
				}
				return writeJSON(cmd.OutOrStdout(), tasks)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTasks(tasks, app.now().In(app.location())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tasks as JSON")
	return cmd
}

func newEventsCmd(app *App) *cobra.Command {
	var start string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Fetch calendar events for the week",
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, err := app.plannerUseCase()
			if err != nil {
				return err
			}
			if start == "" {
				start = app.today()
			}
			events, err := planner.FetchCalendarEvents(cmd.Context(), start)
			if err != nil {
				return err
			}
			if asJSON {
				if events == nil {
					events = []domain.CalendarEvent{}
				}
				return writeJSON(cmd.OutOrStdout(), events)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvents(events, app.location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day of the week (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print events as JSON")
	return cmd
}
