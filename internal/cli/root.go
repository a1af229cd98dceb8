package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/weekwise/internal/service"
	"github.com/alexanderramin/weekwise/internal/web"
)

// DefaultAddr is where `weekwise serve` listens unless told otherwise.
const DefaultAddr = ":9002"

// App holds the services and environment used by CLI commands.
type App struct {
	Planner   service.PlannerService
	Schedules service.ScheduleService
	Feedback  service.FeedbackService
	LLM       web.Health
	Logger    *slog.Logger
	Location  *time.Location
	Addr      string

	// Now, Interactive and RunTUI default to the real clock, a TTY check on
	// stdin/stdout and a full-screen bubbletea program.
	Now         func() time.Time
	Interactive func() bool
	RunTUI      func(m tea.Model) error
}

// NewRootCmd creates the top-level "weekwise" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "weekwise",
		Short:         "Plan your week from Jira tasks and calendar events with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newTasksCmd(app),
		newEventsCmd(app),
		newPlanCmd(app),
		newFeedbackCmd(app),
		newHistoryCmd(app),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) today() string {
	return a.now().In(a.location()).Format("2006-01-02")
}

func (a *App) interactive() bool {
	if a.Interactive != nil {
		return a.Interactive()
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func (a *App) runTUI(m tea.Model) error {
	if a.RunTUI != nil {
		return a.RunTUI(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
