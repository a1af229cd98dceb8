package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/weekwise/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Addr
			}
			if addr == "" {
				addr = DefaultAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := web.NewServer(web.Deps{
				Planner:   app.Planner,
				Schedules: app.Schedules,
				Feedback:  app.Feedback,
				LLM:       app.LLM,
				Logger:    app.logger(),
				Location:  app.location(),
				Now:       app.Now,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "WeekWise listening on %s\n", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default $WEEKWISE_ADDR or :9002)")
	return cmd
}
