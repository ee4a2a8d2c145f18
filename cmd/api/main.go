// Package main is the entrypoint for the Letterdrop API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/letterdrop/letterdrop/internal/config"
	"github.com/letterdrop/letterdrop/internal/email"
	"github.com/letterdrop/letterdrop/internal/handler"
	"github.com/letterdrop/letterdrop/internal/metrics"
	"github.com/letterdrop/letterdrop/internal/middleware"
	"github.com/letterdrop/letterdrop/internal/repository"
	"github.com/letterdrop/letterdrop/internal/server"
	"github.com/letterdrop/letterdrop/internal/service"
)

func main() {
	ctx := context.Background()

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize email gateway client
	sender, err := cfg.SenderEmail()
	if err != nil {
		// Validate already checked this; belt and braces.
		logger.Error("invalid sender address", "error", err)
		os.Exit(1)
	}
	emailClient := email.NewClient(cfg.EmailBaseURL, sender, cfg.EmailAuthToken, cfg.EmailTimeout)

	// Initialize services
	recorder := metrics.NewPrometheus(prometheus.DefaultRegisterer)
	subscriptionService := service.NewSubscriptionService(repo, emailClient, cfg.BaseURL, recorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, logger)

	// Setup router
	r := setupRouter(h, healthHandler, subscriptionHandler, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(h)
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	// Liveness and readiness
	r.Get("/health_check", healthHandler.HealthCheck)
	r.Get("/readyz", healthHandler.Readyz)

	// Prometheus metrics
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Subscription lifecycle
	r.Post("/subscriptions", subscriptionHandler.Subscribe)
	r.Get("/subscriptions/confirm", subscriptionHandler.Confirm)

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
