package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/backup"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/config"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/identifier"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/service"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/storage"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/store"
)

// Registry bundles the domain services handed to the presentation layer. It
// is the entire surface the UI is allowed to call.
type Registry struct {
	Users       service.UserService
	Courses     service.CourseService
	Enrollments service.EnrollmentService
	Assignments service.AssignmentService
	Grades      service.GradeService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	fs := storage.New(cfg.DataDir, logger)
	if fs.Degraded() {
		logger.Error().Str("dir", cfg.DataDir).Msg("persistence unavailable, continuing in-memory only")
	}

	gen := identifier.New()
	st := store.Open(fs, gen, logger)
	validate := validator.New(validator.WithRequiredStructEnabled())

	registry := Registry{
		Users:       service.NewUserService(st, gen, validate, cfg.JWTSecret, cfg.TokenTTL, logger),
		Courses:     service.NewCourseService(st, gen, validate, logger),
		Enrollments: service.NewEnrollmentService(st, gen, logger),
		Assignments: service.NewAssignmentService(st, gen, validate, logger),
		Grades:      service.NewGradeService(st, gen, validate, logger),
	}

	var scheduler *backup.Scheduler
	if cfg.BackupEnabled && !fs.Degraded() {
		scheduler = backup.NewScheduler(st, cfg.AutosaveInterval, cfg.ShutdownGrace, logger)
		if err := scheduler.Start(); err != nil {
			logger.Error().Err(err).Msg("autosave scheduler failed to start")
			scheduler = nil
		}
	}

	logger.Info().
		Str("app", cfg.AppName).
		Str("env", cfg.AppEnv).
		Str("data_dir", cfg.DataDir).
		Int("users", len(registry.Users.List())).
		Msg("academic store ready")

	waitForShutdown(scheduler, logger)
}

func waitForShutdown(scheduler *backup.Scheduler, logger zerolog.Logger) {
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	if scheduler != nil {
		scheduler.Close()
	}

	logger.Info().Msg("academic store stopped")
}
