package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/weekwise/internal/cli/formatter"
	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/scheduler"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		start       string
		input       string
		fetch       bool
		unavailable []domain.UnavailableHour
		asJSON      bool
		view        bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a schedule for the week",
		Long: `Generate a seven-day schedule with the configured LLM.

Tasks and events come from Jira and Google Calendar (--fetch) and/or from a
JSON request file (--input) shaped like the POST /api/schedule body. Without
--input, --fetch is implied and, on a terminal, a form offers to add tasks,
events and unavailable hours by hand.`,
		Example: `  weekwise plan --fetch --unavailable "Monday 12:00-13:00"
  weekwise plan --input week.json --start 2025-03-03 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.scheduleUseCase()
			if err != nil {
				return err
			}

			req := contract.NewGenerateScheduleRequest("")
			if input != "" {
				if err := readRequestFile(input, &req); err != nil {
					return err
				}
			} else {
				fetch = true
				if !asJSON && app.interactive() {
					if err := collectEntries(app, &req); err != nil {
						return err
					}
				}
			}
			if start != "" {
				if _, err := domain.ParseDate(start, app.location()); err != nil {
					return err
				}
				req.CurrentDate = start
			}
			if req.CurrentDate == "" {
				req.CurrentDate = app.today()
			}
			req.UnavailableHours = append(req.UnavailableHours, unavailable...)
			req.Fetch = req.Fetch || fetch

			stop := func() {}
			if !asJSON && app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Generating schedule...")
			}
			resp, err := schedules.Generate(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			grid, err := scheduler.BuildWeekGrid(resp.Schedule, req.CurrentDate, app.location())
			if err != nil {
				return err
			}
			if view {
				title := fmt.Sprintf("Week of %s", req.CurrentDate)
				return app.runTUI(newWeekModel(title, grid, app.location()).withFeedback(app.feedbackSubmitter(cmd.Context())))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScheduleSummary(resp.ID, resp.Model, req.CurrentDate, len(resp.Schedule)))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(grid, app.location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day of the week (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&input, "input", "", "JSON file with manual tasks, events and unavailable hours")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "Fetch Jira tasks and calendar events")
	cmd.Flags().Var(&unavailableFlag{hours: &unavailable}, "unavailable", `Blocked window, e.g. "Monday 12:00-13:00" (repeatable)`)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")
	cmd.Flags().BoolVar(&view, "view", false, "Browse the week interactively")
	cmd.MarkFlagsMutuallyExclusive("json", "view")

	return cmd
}

func readRequestFile(path string, req *contract.GenerateScheduleRequest) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, req); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
	}
	return nil
}
