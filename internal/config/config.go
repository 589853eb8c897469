package config

import (
	"fmt"
	"os"
	"strconv"
)

const defaultSessionSecret = "dev-secret-change-me-before-production!!"

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// StoreBackend is "postgres" (default) or "memory" for running without a database.
	StoreBackend string

	// SessionSecret signs session tokens. When Env is "prod" it must be set
	// and must not be the dev default.
	SessionSecret string

	// Env is "dev" (default) or "prod".
	Env string

	// LoginMaxAttempts is the failed-login burst tolerated per username (default 5).
	LoginMaxAttempts int
	// LoginAttemptWindowMinutes is the refill interval for one attempt (default 3).
	LoginAttemptWindowMinutes int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "quizdb"),
		DBUser: getEnv("DB_USER", "quizuser"),
		DBPass: getEnv("DB_PASS", "quizpass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		StoreBackend: getEnv("STORE_BACKEND", "postgres"),

		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		Env:           getEnv("ENV", "dev"),

		LoginMaxAttempts:          getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginAttemptWindowMinutes: getEnvInt("LOGIN_ATTEMPT_WINDOW_MINUTES", 3),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate rejects configurations that must not reach production.
func (c Config) Validate() error {
	if c.Env == "prod" && c.SessionSecret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set when ENV=prod")
	}
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}
	if c.StoreBackend != "postgres" && c.StoreBackend != "memory" {
		return fmt.Errorf("STORE_BACKEND must be postgres or memory, got %q", c.StoreBackend)
	}
	return nil
}

// DatabaseURL builds the postgres DSN used by the migration runner.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
