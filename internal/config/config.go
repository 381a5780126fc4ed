package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env string

	// Database
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	// Session
	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	// Server
	Port        string
	AppURL      string
	CORSOrigins string

	// Rate limits (requests per minute per IP, 0 disables)
	RateLimitAPI      int
	RateLimitAuth     int
	RateLimitMessages int

	// Observability
	SentryDSN        string
	LogRetentionDays int
}

// Load reads configuration from the environment. A .env file in the
// working directory, when present, fills in variables not already set.
func Load() *Config {
	_ = godotenv.Load()

	appURL := strings.TrimRight(getEnv("APP_URL", getEnv("NEXT_PUBLIC_APP_URL", "http://localhost:3000")), "/")

	return &Config{
		Env: getEnv("APP_ENV", "dev"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "portfolio_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "portfolio.db"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTExpiry:  parseDuration(getEnv("JWT_EXPIRY", "168h"), 7*24*time.Hour),
		BcryptCost: clampCost(parseInt(getEnv("BCRYPT_COST", "12"), 12)),

		Port:        getEnv("PORT", "8080"),
		AppURL:      appURL,
		CORSOrigins: getEnv("CORS_ORIGINS", appURL),

		RateLimitAPI:      parseInt(getEnv("RATE_LIMIT_API", "60"), 60),
		RateLimitAuth:     parseInt(getEnv("RATE_LIMIT_AUTH", "10"), 10),
		RateLimitMessages: parseInt(getEnv("RATE_LIMIT_MESSAGES", "5"), 5),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// SecureCookies reports whether session cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.AppURL, "https://")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func clampCost(cost int) int {
	if cost < 10 {
		return 10
	}
	if cost > 12 {
		return 12
	}
	return cost
}
