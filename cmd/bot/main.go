package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polarproperty/internal/config"
	"polarproperty/internal/handler"
	"polarproperty/internal/logger"
	"polarproperty/internal/middleware"
	"polarproperty/internal/repository"
	boltrepo "polarproperty/internal/repository/bolt"
	"polarproperty/internal/repository/memory"
	"polarproperty/internal/repository/postgres"
	"polarproperty/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Bootstrap logger until the configured one is ready
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	configured, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal("Failed to initialize configured logger", zap.Error(err))
	}
	log = configured
	defer log.Sync()

	log.Info("Starting PolarProperty bot")
	for _, warning := range cfg.Warnings {
		log.Warn(warning)
	}

	// Session store
	sessions, closeSessions, err := openSessionStore(cfg.Session, log)
	if err != nil {
		log.Fatal("Failed to open session store", zap.Error(err))
	}
	defer closeSessions()

	// Submission journal is optional
	var submissionRepo repository.SubmissionRepository
	if cfg.JournalEnabled() {
		db, err := connectDatabase(cfg.DSN(), log)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := runMigrations(db, cfg.Database.MigrationsPath, log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
		submissionRepo = postgres.NewSubmissionRepo(db)
		log.Info("Submission journal enabled")
	} else {
		log.Info("Submission journal disabled, DB_PASSWORD not set")
	}

	// Initialize Telegram bot
	var h *handler.Handler
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			h.HandleError(err, c)
		},
	})
	if err != nil {
		log.Fatal("Failed to create bot", zap.Error(err))
	}

	log.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	// Initialize services
	channel := service.NewChannel(cfg.ChannelUsername)
	subscriptionService := service.NewSubscriptionService(bot, channel, cfg.SkipSubscriptionCheck, log)
	catalogService := service.NewCatalogService(bot, cfg.CatalogPath, log)
	submissionService := service.NewSubmissionService(bot, cfg.AdminID, submissionRepo, log)
	maintenanceService := service.NewMaintenanceService(sessions, submissionRepo, cfg.Database.RetentionDays, log)

	if !catalogService.Available() {
		log.Warn("Catalog file not found, catalog will be unavailable", zap.String("path", cfg.CatalogPath))
	}
	if cfg.SkipSubscriptionCheck {
		log.Warn("Subscription check is disabled")
	}
	if cfg.AdminID == 0 {
		log.Warn("ADMIN_ID not set, submissions will not be forwarded")
	}

	// Initialize handler
	h = handler.NewHandler(bot, sessions, subscriptionService, catalogService, submissionService, cfg.WelcomePhotoURL, log)
	bot.Use(middleware.Recover(log), middleware.Logging(log))
	h.RegisterHandlers()

	log.Info("Handlers registered")

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCleanupJob(ctx, maintenanceService, log)

	// Start bot in background
	go func() {
		log.Info("Bot started successfully", zap.String("channel", string(channel)))
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	log.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	log.Info("Bot stopped gracefully")
}

// openSessionStore builds the configured session store and its closer
func openSessionStore(cfg config.SessionConfig, log *zap.Logger) (repository.SessionStore, func(), error) {
	if cfg.Store != config.SessionStoreBolt {
		log.Info("Using in-memory session store", zap.Duration("ttl", cfg.TTL))
		return memory.NewSessionStore(cfg.TTL), func() {}, nil
	}

	db, err := bolt.Open(cfg.DBPath, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", cfg.DBPath, err)
	}

	store, err := boltrepo.NewSessionStore(db, cfg.TTL)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	log.Info("Using bbolt session store", zap.String("path", cfg.DBPath), zap.Duration("ttl", cfg.TTL))
	return store, func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close session store", zap.Error(err))
		}
	}, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, log *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			log.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			log.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, source string, log *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err == migrate.ErrNoChange {
		log.Info("No new migrations to apply")
	} else {
		log.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob purges expired sessions and old submissions
func runCleanupJob(ctx context.Context, maintenance *service.MaintenanceService, log *zap.Logger) {
	// Run cleanup once at startup
	if err := maintenance.Cleanup(); err != nil {
		log.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			log.Debug("Running scheduled cleanup")
			if err := maintenance.Cleanup(); err != nil {
				log.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
