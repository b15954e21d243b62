package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gst-billing/logger"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Database struct {
	Driver   string `validate:"oneof=postgres mysql sqlite"`
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	TimeZone string
}

type Config struct {
	Database Database

	// HTTP
	Port            string `validate:"required,numeric"`
	AllowedOrigins  string
	BodyLimitBytes  int `validate:"gt=0"`
	RateLimitMax    int `validate:"gt=0"`
	RateLimitWindow time.Duration

	// Auth
	JWTSecret            string
	OperatorPasswordHash string

	// Billing
	StockPolicy        string `validate:"oneof=allow-negative reject-insufficient"`
	InvoiceNumbering   string `validate:"oneof=count sequence"`
	LowStockThreshold  int    `validate:"gte=0"`
	ExpiryWindowMonths int    `validate:"gte=0"`

	// Documents
	ChromePath string
	PDFTimeout time.Duration

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads the environment, after merging an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	bodyLimit := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimit <= 0 {
		bodyLimit = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	jwtSecret := getEnv("JWT_SECRET_KEY", "")
	if strings.TrimSpace(jwtSecret) == "" {
		jwtSecret = getEnv("JWT_SECRET", "")
	}

	config := &Config{
		Database: Database{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			DSN:      getEnv("DATABASE_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", ""),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "billing"),
			TimeZone: getEnv("DB_TIMEZONE", "Asia/Kolkata"),
		},
		Port:                 getEnv("PORT", "8080"),
		AllowedOrigins:       getEnv("ALLOWED_ORIGINS", "*"),
		BodyLimitBytes:       bodyLimit,
		RateLimitMax:         envInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow:      time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		JWTSecret:            jwtSecret,
		OperatorPasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
		StockPolicy:          getEnv("STOCK_POLICY", "allow-negative"),
		InvoiceNumbering:     getEnv("INVOICE_NUMBERING", "count"),
		LowStockThreshold:    envInt("LOW_STOCK_THRESHOLD", 50),
		ExpiryWindowMonths:   envInt("EXPIRY_WINDOW_MONTHS", 3),
		ChromePath:           getEnv("CHROME_PATH", ""),
		PDFTimeout:           time.Duration(envInt("PDF_TIMEOUT_SECONDS", 30)) * time.Second,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:            getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Database.Driver == "sqlite" && c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for the sqlite driver")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// ConnString returns the DSN for the configured driver, building one from
// the discrete DB_* settings when DATABASE_DSN is unset.
func (d Database) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case "mysql":
		port := d.Port
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
			d.User, d.Password, d.Host, port, d.Name)
	default:
		port := d.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			d.Host, d.User, d.Password, d.Name, port, d.TimeZone)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
