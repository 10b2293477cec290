package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DevJWTSecret is only acceptable outside production.
	DevJWTSecret = "fallback-secret-key-for-dev-only"

	// MinBcryptCost is the lowest work factor accepted for password hashes.
	MinBcryptCost = 10
)

// Config holds application configuration
type Config struct {
	Env string

	// Server
	Port              string
	CORSAllowedOrigin string
	ShutdownTimeout   time.Duration

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBPath         string
	MigrationsPath string

	// JWT
	JWTSecret        string
	JWTIssuer        string
	JWTExpirationDur time.Duration

	// Passwords
	BcryptCost int
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Port:              getEnv("PORT", "8080"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),

		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "budgetbuddy"),
		DBPassword:     getEnv("DB_PASSWORD", "budgetbuddy"),
		DBName:         getEnv("DB_NAME", "budgetbuddy"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBPath:         getEnv("DB_PATH", "budgetbuddy.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		JWTSecret: getEnv("JWT_SECRET", DevJWTSecret),
		JWTIssuer: getEnv("JWT_ISSUER", "budgetbuddy-api"),
	}

	var err error
	if cfg.JWTExpirationDur, err = cfg.duration("JWT_EXPIRES_IN", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = cfg.duration("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	costStr := getEnv("BCRYPT_COST", strconv.Itoa(MinBcryptCost))
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST %q: %w", costStr, err)
	}
	cfg.BcryptCost = cost

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that would weaken authentication.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWTSecret == DevJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.JWTExpirationDur <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}
	if c.BcryptCost < MinBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be at least %d, got %d", MinBcryptCost, c.BcryptCost)
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", c.DBDriver)
	}
	return nil
}

// IsProduction reports whether the app runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// duration reads a duration variable. An unparsable value is fatal in
// production and falls back to defaultValue elsewhere.
func (c *Config) duration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		if c.IsProduction() {
			return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
		}
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue, nil
	}
	return d, nil
}
