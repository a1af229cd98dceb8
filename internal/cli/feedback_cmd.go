package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/weekwise/internal/cli/formatter"
	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/repository"
)

func newFeedbackCmd(app *App) *cobra.Command {
	var (
		item        string
		actual      float64
		estimated   float64
		adjustments string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Report how long a scheduled Jira task actually took",
		Example: `  weekwise feedback --item PROJ-1 --actual 1.5
  weekwise feedback list --item PROJ-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			feedback, err := app.feedbackUseCase()
			if err != nil {
				return err
			}

			if item == "" || actual <= 0 {
				if !app.interactive() {
					return fmt.Errorf("%w: --item and --actual are required", domain.ErrInvalidInput)
				}
				if err := runFeedbackForm(&item, &actual, &adjustments); err != nil {
					return err
				}
			}

			req := contract.NewFeedbackRequest(item, actual)
			if estimated > 0 {
				req.EstimatedTime = estimated
			}
			req.ManualAdjustments = adjustments

			resp, err := feedback.Submit(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVerdict(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Jira issue key")
	cmd.Flags().Float64Var(&actual, "actual", 0, "Hours actually spent")
	cmd.Flags().Float64Var(&estimated, "estimated", 0, "Hours that were scheduled (default 1)")
	cmd.Flags().StringVar(&adjustments, "adjustments", "", "Free-form notes about what changed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")

	cmd.AddCommand(newFeedbackListCmd(app))
	return cmd
}

func newFeedbackListCmd(app *App) *cobra.Command {
	var (
		item   string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			feedback, err := app.feedbackUseCase()
			if err != nil {
				return err
			}

			var entries []*domain.FeedbackEntry
			if item != "" {
				entries, err = feedback.ListByJiraItem(cmd.Context(), item)
			} else {
				entries, err = feedback.ListRecent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			views := make([]contract.FeedbackEntryView, len(entries))
			for i, e := range entries {
				views[i] = contract.NewFeedbackEntryView(e)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), views)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeedbackList(views, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Only show feedback for this Jira issue")
	cmd.Flags().IntVar(&limit, "limit", repository.DefaultListLimit, "Maximum entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

// feedbackDraft holds the feedback form's answers as typed.
type feedbackDraft struct {
	Item        string
	Actual      string
	Adjustments string
}

func newFeedbackForm(d *feedbackDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jira issue").
				Placeholder("PROJ-123").
				Value(&d.Item).
				Validate(requiredText("issue key")),
			huh.NewInput().
				Title("Hours actually spent").
				Value(&d.Actual).
				Validate(validatePositiveHours),
			huh.NewText().
				Title("Adjustments").
				Description("Optional notes, e.g. blocked by review").
				Value(&d.Adjustments),
		),
	).WithShowHelp(false)
}

func (d feedbackDraft) request() (contract.FeedbackRequest, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(d.Actual), 64)
	if err != nil {
		return contract.FeedbackRequest{}, fmt.Errorf("%w: actual hours %q is not a number", domain.ErrInvalidInput, d.Actual)
	}
	req := contract.NewFeedbackRequest(strings.TrimSpace(d.Item), v)
	req.ManualAdjustments = strings.TrimSpace(d.Adjustments)
	return req, nil
}

func runFeedbackForm(item *string, actual *float64, adjustments *string) error {
	d := feedbackDraft{Item: *item, Adjustments: *adjustments}
	if *actual > 0 {
		d.Actual = strconv.FormatFloat(*actual, 'f', -1, 64)
	}
	if err := newFeedbackForm(&d).Run(); err != nil {
		return err
	}
	req, err := d.request()
	if err != nil {
		return err
	}
	*item, *actual, *adjustments = req.JiraItemID, req.ActualTime, req.ManualAdjustments
	return nil
}

func validatePositiveHours(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v <= 0 {
		return fmt.Errorf("must be greater than 0")
	}
	return nil
}
