package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/pauta/internal/cli"
	"github.com/alexanderramin/pauta/internal/config"
	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/logger"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// configPath picks --config out of args ahead of cobra, falling back to
// PAUTA_CONFIG. Other flags are left for the commands.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("pauta", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	if *path != "" {
		return *path
	}
	return os.Getenv("PAUTA_CONFIG")
}

// stripConfigFlag removes --config and its value so cobra does not reject it.
func stripConfigFlag(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "--config":
			i++
		case strings.HasPrefix(a, "--config="):
		default:
			out = append(out, a)
		}
	}
	return out
}

func run(args []string) error {
	cfg, err := config.Load(configPath(args))
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	log.Debug("database ready", "path", cfg.DBPath)

	var clock service.Clock = service.SystemClock{}
	if cfg.Today != "" {
		today, err := domain.ParseDate(cfg.Today)
		if err != nil {
			return fmt.Errorf("today: %w", err)
		}
		clock = service.FixedClock{Date: today}
		log.Info("clock pinned", "today", cfg.Today)
	}

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(log))
	}

	// Wire repositories
	profileRepo := repository.NewSQLiteProfileRepo(database)
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	planRepo := repository.NewSQLiteDailyPlanRepo(database)
	execRepo := repository.NewSQLiteExecutionRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// The projection must never write.
	ro := db.ReadOnly(database)
	projection := service.NewProjectionService(
		repository.NewSQLiteProfileRepo(ro),
		repository.NewSQLiteSubjectRepo(ro),
		repository.NewSQLiteReviewLedgerRepo(ro),
		repository.NewSQLiteDailyPlanRepo(ro),
		repository.NewSQLiteExecutionRepo(ro),
		clock,
		cfg.ProjectionMaxDays,
		observers...,
	)

	app := &cli.App{
		Plans:      service.NewPlanService(planRepo, uow, clock, observers...),
		Executions: service.NewExecutionService(execRepo, uow, clock, observers...),
		Reviews:    service.NewReviewService(uow, clock, observers...),
		Projection: projection,
		Profiles:   service.NewProfileService(profileRepo, uow, observers...),
		Subjects:   service.NewSubjectService(subjectRepo, uow),
		Import:     service.NewImportService(uow),
		UserID:     cfg.UserID,
		Clock:      clock,
	}

	// Prompts and the calendar browser need a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SetArgs(stripConfigFlag(args))
	return rootCmd.Execute()
}
