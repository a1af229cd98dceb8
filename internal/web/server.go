package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/weekwise/internal/app"
)

// DefaultRequestTimeout bounds a request, LLM generation included.
const DefaultRequestTimeout = 3 * time.Minute

// Health reports whether the model backend is reachable.
type Health interface {
	Available(ctx context.Context) bool
}

// Deps are the use cases the server exposes. Any of them may be nil, in
// which case its routes answer 503.
type Deps struct {
	Planner   app.PlannerUseCase
	Schedules app.ScheduleUseCase
	Feedback  app.FeedbackUseCase
	LLM       Health
	Logger    *slog.Logger
	Location  *time.Location
	Timeout   time.Duration
	Now       func() time.Time
}

// Server handles HTTP requests.
type Server struct {
	Router *chi.Mux
	deps   Deps
	pages  *pageRenderer
}

// NewServer builds the router.
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Timeout <= 0 {
		deps.Timeout = DefaultRequestTimeout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{deps: deps, pages: newPageRenderer(deps.Location)}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.deps.Timeout))

	r.Get("/health", s.healthCheck)
	r.Get("/", s.dashboard)
	r.Get("/dashboard", s.dashboard)

	r.Route("/api", func(r chi.Router) {
		r.Get("/jira/tasks", s.getJiraTasks)
		r.Get("/calendar/events", s.getCalendarEvents)
		r.Post("/schedule", s.generateSchedule)
		r.Get("/schedules", s.listSchedules)
		r.Get("/schedules/{id}", s.getSchedule)
		r.Post("/feedback", s.submitFeedback)
		r.Get("/feedback", s.listFeedback)
	})

	s.Router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.InfoContext(ctx, "http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.deps.Logger.InfoContext(shutdownCtx, "shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
