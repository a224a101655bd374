package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/auth"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/guard"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/handler"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/infra"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	coachExpiry, err := time.ParseDuration(cfg.JWTCoachExpiry)
	if err != nil {
		return fmt.Errorf("parse coach JWT expiry: %w", err)
	}
	adminExpiry, err := time.ParseDuration(cfg.JWTAdminExpiry)
	if err != nil {
		return fmt.Errorf("parse admin JWT expiry: %w", err)
	}
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, coachExpiry, adminExpiry)

	metrics := infra.NewMetrics()

	// Repositories
	seasonRepo := repository.NewSeasonRepository()
	teamRepo := repository.NewTeamRepository()
	playerRepo := repository.NewPlayerRepository()
	gameRepo := repository.NewGameRepository()
	assignmentRepo := repository.NewAssignmentRepository()
	pitchingRepo := repository.NewPitchingRepository()
	outboxRepo := repository.NewOutboxRepository()
	authUserRepo := repository.NewAuthUserRepository()

	// Services
	authSvc := service.NewAuthService(pool, authUserRepo, teamRepo, jwtMgr)
	gameSvc := service.NewGameService(pool, gameRepo, teamRepo, playerRepo, assignmentRepo, pitchingRepo, outboxRepo, metrics, logger)
	rosterSvc := service.NewRosterService(pool, teamRepo, playerRepo, outboxRepo, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	seasonHandler := handler.NewSeasonHandler(seasonRepo, teamRepo, pool)
	teamHandler := handler.NewTeamHandler(teamRepo, seasonRepo, rosterSvc, pool)
	playerHandler := handler.NewPlayerHandler(playerRepo, teamRepo, gameSvc, pool)
	gameHandler := handler.NewGameHandler(gameSvc, gameRepo, assignmentRepo, pitchingRepo, pool)

	authLimiter := guard.NewRateLimiter(20, time.Minute)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)
	r.Use(handler.Instrument(metrics))

	// Health and metrics (no auth)
	r.Get("/health", handler.HealthHandler(pool))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Auth routes (no auth, rate limited)
	r.Route("/auth", func(r chi.Router) {
		r.Use(handler.RateLimit(authLimiter))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Routes open to both coaches and league officials
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticateAny(jwtMgr))

		r.Get("/seasons", seasonHandler.List)
		r.Get("/seasons/{seasonID}/teams", seasonHandler.ListTeams)
		r.Get("/seasons/{seasonID}/games", gameHandler.ListBySeason)
		r.Get("/teams/{teamID}", teamHandler.Get)
		r.Get("/teams/{teamID}/players", playerHandler.ListByTeam)
		r.Get("/players/{playerID}/eligibility", playerHandler.Eligibility)
		r.Get("/games/{gameID}", gameHandler.Get)
		r.Get("/games/{gameID}/violations", gameHandler.Violations)
	})

	// Coach routes: roster and game-entry writes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticateCoach(jwtMgr))

		r.Post("/players", playerHandler.Create)
		r.Put("/players/{playerID}", playerHandler.Update)
		r.Post("/teams/{teamID}/roster/import", teamHandler.ImportRoster)
		r.Post("/games", gameHandler.Create)
		r.Put("/games/{gameID}/players", gameHandler.SavePlayers)
	})

	// League-official routes: season and team administration
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(jwtMgr))

		r.Post("/seasons", seasonHandler.Create)
		r.Post("/teams", teamHandler.Create)
		r.Delete("/games/{gameID}", gameHandler.Delete)
	})

	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
