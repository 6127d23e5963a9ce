package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/placeprep/placeprep-backend/internal/bank"
	"github.com/placeprep/placeprep-backend/internal/config"
	"github.com/placeprep/placeprep-backend/internal/database"
	"github.com/placeprep/placeprep-backend/internal/handler"
	"github.com/placeprep/placeprep-backend/internal/logger"
	"github.com/placeprep/placeprep-backend/internal/repository"
	"github.com/placeprep/placeprep-backend/internal/router"
	"github.com/placeprep/placeprep-backend/internal/service"
	"github.com/placeprep/placeprep-backend/internal/validator"
	"github.com/placeprep/placeprep-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting PlacePrep Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	classroomRepo := repository.NewClassroomRepository(pool)
	testRepo := repository.NewScheduledTestRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	resultRepo := repository.NewResultRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	accessor := bank.NewAccessor(questionRepo)
	authService := service.NewAuthService(cfg, userRepo)
	attemptService := service.NewAttemptService(accessor, questionRepo, sessionRepo, testRepo, classroomRepo, rdb, log)
	resultService := service.NewResultService(questionRepo, sessionRepo, testRepo, resultRepo, rdb, log)
	analyticsService := service.NewAnalyticsService(testRepo, classroomRepo, resultRepo, log)
	classroomService := service.NewClassroomService(classroomRepo, testRepo, log)
	questionService := service.NewQuestionService(questionRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Test:      handler.NewTestHandler(attemptService),
		Result:    handler.NewResultHandler(resultService),
		Classroom: handler.NewClassroomHandler(classroomService),
		Question:  handler.NewQuestionHandler(questionService),
		Analytics: handler.NewAnalyticsHandler(analyticsService, resultService),
		WS:        handler.NewWSHandler(rdb, sessionRepo, resultRepo, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	proctorWorker := worker.NewProctorWorker(pool, rdb, log)
	go proctorWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
