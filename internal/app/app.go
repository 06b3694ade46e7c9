// Package app wires the calendar service together: configuration, logging,
// the classification oracle, the route table and the HTTP server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chinacal/internal/calendar"
	"chinacal/internal/config"
	apierrors "chinacal/internal/errors"
	"chinacal/internal/infrastructure"
	"chinacal/internal/middleware"
	transporthttp "chinacal/internal/transport/http"
)

const (
	// AppName is the service name used in logs.
	AppName = "chinese-calendar-api"
	// Version is reported by the health endpoint.
	Version = "1.1.0"
)

// Application holds the assembled service.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Oracle *calendar.Oracle
	Router chi.Router
	Server *http.Server
}

// New loads configuration and assembles the application.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig assembles the application from an explicit configuration.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	oracle, err := calendar.NewOracle()
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar table: %w", err)
	}

	a := &Application{
		Config: cfg,
		Logger: logger.With(slog.String("service", AppName)),
		Oracle: oracle,
	}
	a.setupRouter()
	a.Server = &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

// setupRouter builds the immutable route table. Routes are fixed paths
// registered at construction; nothing mutates the router afterwards.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}))
	if a.Config.Security.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}
	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)
	r.Use(metrics.Handler)

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errorHandler.HandleError(w, req, apierrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		errorHandler.HandleError(w, req, apierrors.ErrMethodNotAllowed)
	})

	healthHandler := transporthttp.NewHealthHandler(Version, a.Logger)
	r.Get("/api/health", healthHandler.HealthCheck)

	calendarHandler := transporthttp.NewCalendarHandler(a.Oracle, a.Logger, errorHandler)
	calendarHandler.RegisterRoutes(r)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	a.Router = r
}

// Run starts the HTTP server and blocks until shutdown. In-flight requests
// are drained before the listener closes.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version),
		)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.Logger.Info("server stopped")
	return nil
}
