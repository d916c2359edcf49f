package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/platform/logger"
	"github.com/taskboard/taskboard-api/internal/platform/postgres"
	"github.com/taskboard/taskboard-api/internal/platform/rediscache"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/service/auth"
	"github.com/taskboard/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	rdb    *redis.Client // nil when caching is disabled

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	taskService      service.TaskService
	analyticsService *service.AnalyticsService
}

// newApplication loads configuration and constructs every dependency the
// server needs. Fails fast on any misconfiguration.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_enabled", cfg.Cache.RedisURL != "")

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, appLogger)
	taskStore := postgres.NewPostgresTaskStore(db, appLogger)

	var rdb *redis.Client
	var analyticsCache service.AnalyticsCache
	if cfg.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		analyticsCache = rediscache.New(rdb, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}

	analyticsService, err := service.NewAnalyticsService(taskStore, analyticsCache, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	taskService, err := service.NewTaskService(taskStore, db, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           appLogger,
		db:               db,
		rdb:              rdb,
		userStore:        userStore,
		taskStore:        taskStore,
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
		taskService:      taskService,
		analyticsService: analyticsService,
	}, nil
}

// cleanup releases held resources. Safe to call more than once.
func (app *application) cleanup() {
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("failed to close redis client", "error", err)
		}
		app.rdb = nil
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
		app.db = nil
	}
}
