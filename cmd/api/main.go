// Package main is the entry point for the travel CRM API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/travel-crm/backend/internal/auth"
	"github.com/pkordes/travel-crm/backend/internal/config"
	"github.com/pkordes/travel-crm/backend/internal/handler"
	"github.com/pkordes/travel-crm/backend/internal/metrics"
	"github.com/pkordes/travel-crm/backend/internal/middleware"
	"github.com/pkordes/travel-crm/backend/internal/report"
	"github.com/pkordes/travel-crm/backend/internal/repo"
	"github.com/pkordes/travel-crm/backend/internal/service"
	"github.com/pkordes/travel-crm/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(context.Background(), sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Services ---------------------------------------------------------
	loc, err := time.LoadLocation(cfg.ExportTimezone)
	if err != nil {
		// config.Load already validated the zone.
		slog.Error("failed to load export timezone", "error", err)
		os.Exit(1)
	}

	customerRepo := repo.NewCustomerRepo(pool)
	destinationRepo := repo.NewDestinationRepo(pool)
	staffRepo := repo.NewStaffRepo(pool)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	m := metrics.New()

	server := handler.NewServer(handler.Deps{
		Customers:    service.NewCustomerService(customerRepo),
		Destinations: service.NewDestinationService(customerRepo, destinationRepo),
		Auth:         service.NewAuthService(staffRepo, auth.NewBcryptHasher(cfg.BcryptCost), tokens),
		History:      service.NewHistoryService(customerRepo, destinationRepo),
		Verifier:     tokens,
		Renderers:    report.Renderers(loc),
		Metrics:      m,
		Logger:       logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body cap → metrics. The logger sits outside Recoverer so a
	// recovered panic is still logged with its 500 status.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.NewMetricsHandler(m))

	r.Handle("/metrics", m.Handler())
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for rendering large history documents.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
