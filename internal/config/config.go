package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
	Email     EmailConfig
	OAuth     OAuthConfig
	Printer   PrinterConfig
	Admin     AdminConfig
	Business  BusinessConfig
}

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	Debug        bool
	DashboardURL string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	MaxIdleConns int
	MaxOpenConns int
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RateLimitConfig holds the global per-user budget and the per-IP budget
// applied to sensitive endpoints such as login and password recovery.
type RateLimitConfig struct {
	Requests          int
	Duration          int
	SensitiveRequests int
	SensitiveWindow   time.Duration
	SweepInterval     time.Duration
}

// RedisConfig is optional. An empty Addr keeps limiter and cache state in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type StorageConfig struct {
	Path string
}

type SchedulerConfig struct {
	Enabled             bool
	SnapshotInterval    time.Duration
	MaintenanceInterval time.Duration
	TaskTimeout         time.Duration
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	SuccessURL         string
	FailureURL         string
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

// AdminConfig seeds the first dashboard user when the users table is empty.
type AdminConfig struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type BusinessConfig struct {
	Name                  string
	InventoryLowThreshold int
	RecoveryTokenTTL      time.Duration
	IdempotencyKeyTTL     time.Duration
}

func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "sachet-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DASHBOARD_URL", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "sachet")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Africa/Lagos")
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)

	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 12)
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")

	v.SetDefault("RATE_LIMIT_REQUESTS", 300)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("RATE_LIMIT_SENSITIVE_REQUESTS", 5)
	v.SetDefault("RATE_LIMIT_SENSITIVE_WINDOW_MINUTES", 15)
	v.SetDefault("RATE_LIMIT_SWEEP_MINUTES", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("STORAGE_PATH", "./storage")

	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("SNAPSHOT_INTERVAL_HOURS", 24)
	v.SetDefault("MAINTENANCE_INTERVAL_MINUTES", 60)
	v.SetDefault("SCHEDULER_TASK_TIMEOUT_SECONDS", 60)

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Sachet Water Office")

	v.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback")

	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_WIDTH", 32)

	v.SetDefault("ADMIN_NAME", "Administrator")

	v.SetDefault("BUSINESS_NAME", "Sachet Water")
	v.SetDefault("INVENTORY_LOW_THRESHOLD", 4000)
	v.SetDefault("RECOVERY_TOKEN_TTL_MINUTES", 60)
	v.SetDefault("IDEMPOTENCY_KEY_TTL_HOURS", 24)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:         v.GetString("APP_NAME"),
			Env:          v.GetString("APP_ENV"),
			Port:         v.GetString("APP_PORT"),
			Debug:        v.GetBool("APP_DEBUG"),
			DashboardURL: v.GetString("DASHBOARD_URL"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			Name:         v.GetString("DB_NAME"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			Timezone:     v.GetString("DB_TIMEZONE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		JWT: JWTConfig{
			Secret:             v.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(v.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests:          v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration:          v.GetInt("RATE_LIMIT_DURATION"),
			SensitiveRequests: v.GetInt("RATE_LIMIT_SENSITIVE_REQUESTS"),
			SensitiveWindow:   time.Duration(v.GetInt("RATE_LIMIT_SENSITIVE_WINDOW_MINUTES")) * time.Minute,
			SweepInterval:     time.Duration(v.GetInt("RATE_LIMIT_SWEEP_MINUTES")) * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Storage: StorageConfig{
			Path: v.GetString("STORAGE_PATH"),
		},
		Scheduler: SchedulerConfig{
			Enabled:             v.GetBool("SCHEDULER_ENABLED"),
			SnapshotInterval:    time.Duration(v.GetInt("SNAPSHOT_INTERVAL_HOURS")) * time.Hour,
			MaintenanceInterval: time.Duration(v.GetInt("MAINTENANCE_INTERVAL_MINUTES")) * time.Minute,
			TaskTimeout:         time.Duration(v.GetInt("SCHEDULER_TASK_TIMEOUT_SECONDS")) * time.Second,
		},
		Email: EmailConfig{
			SMTPHost:     v.GetString("SMTP_HOST"),
			SMTPPort:     v.GetInt("SMTP_PORT"),
			SMTPUsername: v.GetString("SMTP_USERNAME"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			FromName:     v.GetString("SMTP_FROM_NAME"),
			FromEmail:    v.GetString("SMTP_FROM_EMAIL"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
			SuccessURL:         v.GetString("GOOGLE_SUCCESS_URL"),
			FailureURL:         v.GetString("GOOGLE_FAILURE_URL"),
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Phone:    v.GetString("ADMIN_PHONE"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Business: BusinessConfig{
			Name:                  v.GetString("BUSINESS_NAME"),
			InventoryLowThreshold: v.GetInt("INVENTORY_LOW_THRESHOLD"),
			RecoveryTokenTTL:      time.Duration(v.GetInt("RECOVERY_TOKEN_TTL_MINUTES")) * time.Minute,
			IdempotencyKeyTTL:     time.Duration(v.GetInt("IDEMPOTENCY_KEY_TTL_HOURS")) * time.Hour,
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.Timezone)
}
