package cli

import (
	"fmt"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/weekwise/internal/cli/formatter"
	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/repository"
	"github.com/alexanderramin/weekwise/internal/scheduler"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.scheduleUseCase()
			if err != nil {
				return err
			}
			runs, err := schedules.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			summaries := make([]contract.ScheduleRunSummary, len(runs))
			for i, r := range runs {
				summaries[i] = contract.NewScheduleRunSummary(r)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(summaries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", repository.DefaultListLimit, "Maximum runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")

	cmd.AddCommand(newHistoryShowCmd(app))
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var (
		asJSON bool
		view   bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.scheduleUseCase()
			if err != nil {
				return err
			}
			run, err := schedules.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), contract.NewScheduleRunDetail(run))
			}
			grid, err := scheduler.BuildWeekGrid(run.Items, run.StartDate, app.location())
			if err != nil {
				return err
			}
			if view {
				wm := newWeekModel(fmt.Sprintf("Week of %s", run.StartDate), grid, app.location())
				return app.runTUI(wm.withFeedback(app.feedbackSubmitter(cmd.Context())))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScheduleSummary(run.ID, run.Model, run.StartDate, len(run.Items)))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(grid, app.location()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	cmd.Flags().BoolVar(&view, "view", false, "Browse the week interactively")
	cmd.MarkFlagsMutuallyExclusive("json", "view")
	return cmd
}
