package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreBolt   = "bolt"
)

const defaultWelcomePhotoURL = "https://images.unsplash.com/photo-1560518883-ce09059eeffa?w=800"

var tokenPattern = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]{35,}$`)

// Config holds all application configuration
type Config struct {
	BotToken              string
	AdminID               int64
	SkipSubscriptionCheck bool
	ChannelUsername       string
	CatalogPath           string
	WelcomePhotoURL       string
	PollTimeout           time.Duration
	Session               SessionConfig
	Log                   LogConfig
	Database              DatabaseConfig

	// Warnings collects non-fatal problems found while loading
	Warnings []string
}

// SessionConfig holds conversation state storage settings
type SessionConfig struct {
	Store  string
	DBPath string
	TTL    time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level     string
	File      string
	MaxSizeMB int
}

// DatabaseConfig holds submission journal connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MigrationsPath string
	RetentionDays  int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:        getEnv("TELEGRAM_BOT_TOKEN", os.Getenv("BOT_TOKEN")),
		ChannelUsername: getEnv("CHANNEL_USERNAME", "@PolarProperty"),
		CatalogPath:     getEnv("CATALOG_PATH", "catalog.pdf"),
		WelcomePhotoURL: getEnv("WELCOME_PHOTO_URL", defaultWelcomePhotoURL),
		Session: SessionConfig{
			Store:  strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
			DBPath: getEnv("SESSION_DB_PATH", "sessions.db"),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
			File:  os.Getenv("LOG_FILE"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			Name:           getEnv("DB_NAME", "polarproperty"),
			User:           getEnv("DB_USER", "polarproperty"),
			Password:       os.Getenv("DB_PASSWORD"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if !tokenPattern.MatchString(cfg.BotToken) {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is malformed")
	}

	if raw := os.Getenv("ADMIN_ID"); raw != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			cfg.Warnings = append(cfg.Warnings, "ADMIN_ID must be numeric, admin notifications disabled")
		} else {
			cfg.AdminID = id
		}
	}

	var err error
	if cfg.SkipSubscriptionCheck, err = getBool("SKIP_SUBSCRIPTION_CHECK", false); err != nil {
		return nil, err
	}
	if cfg.PollTimeout, err = getDuration("POLL_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = getDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Log.MaxSizeMB, err = getInt("LOG_MAX_SIZE_MB", 50); err != nil {
		return nil, err
	}
	if cfg.Database.RetentionDays, err = getInt("SUBMISSION_RETENTION_DAYS", 180); err != nil {
		return nil, err
	}

	switch cfg.Session.Store {
	case SessionStoreMemory, SessionStoreBolt:
	default:
		return nil, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreBolt, cfg.Session.Store)
	}

	return cfg, nil
}

// JournalEnabled reports whether submissions are written to PostgreSQL
func (c *Config) JournalEnabled() bool {
	return c.Database.Password != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
