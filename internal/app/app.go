package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"dgrhcli/internal/config"
	apierrors "dgrhcli/internal/errors"
	"dgrhcli/internal/infrastructure"
	"dgrhcli/internal/middleware"
	"dgrhcli/internal/services"
	handlers "dgrhcli/internal/transport/http"
	"dgrhcli/pkg/contracts"
)

// Application holds the wired server components.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	Router        *chi.Mux
	Server        *http.Server
	Registry      *prometheus.Registry
	ReconService  *services.ReconService
	HealthService *services.HealthService

	logCloser io.Closer
}

// New loads configuration and builds the application.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	app := NewWithConfig(cfg, logger)
	app.logCloser = closer
	return app, nil
}

// NewWithConfig builds the application from pre-made dependencies. Used
// directly by tests.
func NewWithConfig(cfg *config.Config, logger *slog.Logger) *Application {
	registry := prometheus.NewRegistry()
	metrics := services.NewMetrics(registry)

	reconService := services.NewReconService(logger, metrics)
	healthService := services.NewHealthService(contracts.Version, reconService, logger)

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		Registry:      registry,
		ReconService:  reconService,
		HealthService: healthService,
	}
	app.setupRouter()
	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}
	return app
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger, false)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	reconHandler := handlers.NewReconHandler(
		a.ReconService,
		errorHandler,
		a.Logger,
		a.Config.Upload.MaxFileBytes,
		a.Config.Upload.MaxAlarmFiles,
	)
	healthHandler := handlers.NewHealthHandler(a.HealthService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			// Pipeline runs can be slow on large uploads; give them
			// their own deadline.
			r.Use(middleware.Timeout(a.Config.Server.RunTimeout))
			r.Use(middleware.ContentTypeValidator("multipart/form-data"))
			r.Mount("/reconcile", reconHandler.Routes())
		})
		r.Mount("/health", healthHandler.Routes())
	})

	r.Handle("/metrics", handlers.MetricsHandler(a.Registry))

	a.Router = r
}

// Start begins serving. It returns once the listener is running; server
// errors cancel the passed context through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) {
	a.Logger.InfoContext(ctx, "server starting",
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("log_level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()
}

// Stop shuts the server down gracefully within the configured timeout.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
	a.Logger.InfoContext(ctx, "server shutdown complete")
	return nil
}

// Run serves until SIGINT or SIGTERM, then stops gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	a.Start(ctx, cancel)

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "signal received", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
