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
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/tally/internal/tally/http"
	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/internal/tally/store/drivers/postgres"
	"github.com/aussiebroadwan/tally/internal/tally/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the tally service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db    store.Store
	redis *redis.Client // nil unless REDIS_URL is set

	// Services
	gate                *service.Gate
	sessionService      *service.SessionService
	expenseService      *service.ExpenseService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	return NewWithLogger(cfg, slogx.New(slogx.Config{
		Service: "tally",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

// NewWithLogger is New with a caller supplied logger.
func NewWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	app := &Application{cfg: cfg, logger: logger}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initRateLimiting(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler is the root HTTP handler, exposed for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("tally starting", "port", app.cfg.Port, "version", BuildVersion, "driver", app.cfg.DatabaseDriver)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones up to the grace
// period, then releases the database and cache.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tally...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("tally stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "", "sqlite":
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	case "postgres":
		if app.cfg.DatabaseURL == "" {
			return errors.New("TALLY_DATABASE_URL is required for the postgres driver")
		}
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initServices builds the token issuer, password hasher and services
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	accessSecret, refreshSecret, err := resolveSecrets(app.cfg, app.logger)
	if err != nil {
		return err
	}

	tokens, err := service.NewTokenIssuer(accessSecret, refreshSecret, app.cfg.Issuer, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	app.gate = &service.Gate{Store: app.db, Tokens: tokens}
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Hasher: cryptox.NewPasswordHasher(pepper, cryptox.DefaultArgon2Params),
		Tokens: tokens,
	}
	app.expenseService = &service.ExpenseService{Store: app.db}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

// initRateLimiting connects to Redis when configured. Without it every
// replica counts on its own.
func (app *Application) initRateLimiting() error {
	if app.cfg.RedisURL == "" {
		app.logger.Info("rate limiting in memory")
		return nil
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	app.redis = client
	app.logger.Info("rate limiting backed by redis", "addr", opts.Addr)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	rcfg := httpapi.RouterConfig{
		Prefix:      app.cfg.APIPrefix,
		FrontendURL: app.cfg.FrontendURL,
		Version:     BuildVersion,
	}
	if app.redis != nil {
		rcfg.Limiters = httpx.RedisLimiters(app.redis)
		rcfg.Cache = func(ctx context.Context) error { return app.redis.Ping(ctx).Err() }
	}

	router := httpapi.NewRouter(rcfg, app.db, app.logger)
	router.Gate = app.gate
	router.Sessions = app.sessionService
	router.Expenses = app.expenseService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
