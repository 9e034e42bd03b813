package env

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds environment variables
type Config struct {
	// PostgreSQL
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string

	// SQL Server
	SQLServerUser     string
	SQLServerPassword string
	SQLServerHost     string
	SQLServerPort     string
	SQLServerDB       string

	// SQLite
	SQLitePath string

	// DSN overrides every per-driver setting when set.
	DSN string
}

// Load reads environment variables from the .env file in workDir, when one
// exists. Variables already set in the process environment take precedence.
func Load(workDir string) (*Config, error) {
	envFile := filepath.Join(workDir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error checking .env file: %v", err)
	}

	return FromEnvironment(), nil
}

// FromEnvironment builds a Config from the process environment alone.
func FromEnvironment() *Config {
	return &Config{
		// PostgreSQL
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "student"),
		PostgresPassword: getEnvOrDefault("POSTGRES_PASSWORD", "student"),
		PostgresDB:       getEnvOrDefault("POSTGRES_DB", "sparkifydb"),
		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "127.0.0.1"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),

		// SQL Server
		SQLServerUser:     getEnvOrDefault("SQLSERVER_USER", "sa"),
		SQLServerPassword: getEnvOrDefault("SQLSERVER_PASSWORD", ""),
		SQLServerHost:     getEnvOrDefault("SQLSERVER_HOST", "127.0.0.1"),
		SQLServerPort:     getEnvOrDefault("SQLSERVER_PORT", "1433"),
		SQLServerDB:       getEnvOrDefault("SQLSERVER_DB", "sparkifydb"),

		// SQLite
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "sparkify.db"),

		DSN: getEnvOrDefault("SPARKIFY_DSN", ""),
	}
}

// ConnString returns the connection string for the given sink type.
func (c *Config) ConnString(sinkType string) (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}

	switch sinkType {
	case "postgres", "pgx":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode), nil
	case "sqlserver":
		query := url.Values{}
		query.Add("database", c.SQLServerDB)
		query.Add("encrypt", "disable")
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.SQLServerUser, c.SQLServerPassword),
			Host:     fmt.Sprintf("%s:%s", c.SQLServerHost, c.SQLServerPort),
			RawQuery: query.Encode(),
		}
		return u.String(), nil
	case "sqlite":
		return c.SQLitePath, nil
	default:
		return "", fmt.Errorf("unsupported sink type %q", sinkType)
	}
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
