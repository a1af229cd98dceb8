package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexanderramin/weekwise/internal/cli"
	"github.com/alexanderramin/weekwise/internal/db"
	"github.com/alexanderramin/weekwise/internal/gcal"
	"github.com/alexanderramin/weekwise/internal/intelligence"
	"github.com/alexanderramin/weekwise/internal/jira"
	"github.com/alexanderramin/weekwise/internal/llm"
	"github.com/alexanderramin/weekwise/internal/repository"
	"github.com/alexanderramin/weekwise/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; anything else is a broken file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(os.Getenv("WEEKWISE_LOG_LEVEL"))}))

	loc := time.Local
	if tz := os.Getenv("WEEKWISE_TZ"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("loading WEEKWISE_TZ: %w", err)
		}
		loc = l
	}

	// Determine DB path: env var or default ~/.weekwise/weekwise.db
	dbPath := os.Getenv("WEEKWISE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".weekwise", "weekwise.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	runRepo := repository.NewSQLiteScheduleRunRepo(database)
	feedbackRepo := repository.NewSQLiteFeedbackRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	jiraClient := jira.NewClient(jira.LoadConfig(), jira.WithLogger(logger))
	gcalClient := gcal.NewClient(gcal.LoadConfig(), gcal.WithLocation(loc), gcal.WithLogger(logger))
	observer := service.NewLogUseCaseObserver(logger)
	planner := service.NewPlannerService(jiraClient, gcalClient, observer)

	llmCfg := llm.LoadConfig()
	var llmObserver llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		llmObserver = llm.NewLogObserver(logger)
	}
	llmClient, err := llm.NewClient(llmCfg, llmObserver)
	if err != nil {
		return fmt.Errorf("configuring LLM: %w", err)
	}

	app := &cli.App{
		Planner: planner,
		Schedules: service.NewScheduleService(
			intelligence.NewScheduleService(llmClient, llmObserver),
			planner, runRepo, uow, string(llmCfg.Provider), observer),
		Feedback: service.NewFeedbackService(
			intelligence.NewFeedbackService(llmClient, llmObserver),
			feedbackRepo, uow, observer),
		LLM:      llmClient,
		Logger:   logger,
		Location: loc,
		Addr:     os.Getenv("WEEKWISE_ADDR"),
	}

	return cli.NewRootCmd(app).Execute()
}

func logLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
