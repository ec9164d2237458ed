package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is read from an optional TOML file named by TASKBOARD_CONFIG, then
// overridden by the environment (including a .env file in the working directory).
type Config struct {
	DBDriver   string `toml:"db_driver"`
	DBHost     string `toml:"db_host"`
	DBPort     string `toml:"db_port"`
	DBUser     string `toml:"db_user"`
	DBPassword string `toml:"db_password"`
	DBName     string `toml:"db_name"`
	DBSSLMode  string `toml:"db_sslmode"`
	SQLitePath string `toml:"sqlite_path"`

	DBConnectRetries int           `toml:"db_connect_retries"`
	DBRetryDelay     time.Duration `toml:"db_retry_delay"`

	ServerPort  string   `toml:"server_port"`
	GinMode     string   `toml:"gin_mode"`
	CORSOrigins []string `toml:"cors_origins"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

func Default() *Config {
	return &Config{
		DBDriver:         DriverPostgres,
		DBHost:           "localhost",
		DBPort:           "5432",
		DBUser:           "taskboard",
		DBPassword:       "taskboard",
		DBName:           "taskboard",
		DBSSLMode:        "disable",
		SQLitePath:       "taskboard.db",
		DBConnectRetries: 5,
		DBRetryDelay:     5 * time.Second,
		ServerPort:       "4000",
		GinMode:          "release",
		CORSOrigins:      []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment variables")
	}

	cfg := Default()
	if path, ok := os.LookupEnv("TASKBOARD_CONFIG"); ok && path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBSSLMode = getEnv("DB_SSLMODE", c.DBSSLMode)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		c.CORSOrigins = splitList(v)
	}

	if v, ok := os.LookupEnv("DB_CONNECT_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_CONNECT_RETRIES: %w", err)
		}
		c.DBConnectRetries = n
	}

	if v, ok := os.LookupEnv("DB_RETRY_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DB_RETRY_DELAY: %w", err)
		}
		c.DBRetryDelay = d
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBConnectRetries < 1 {
		return fmt.Errorf("DB_CONNECT_RETRIES must be at least 1, got %d", c.DBConnectRetries)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// PostgresDSN is the connection string used by gorm.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// MigrationURL is the pgx5:// URL understood by golang-migrate.
func (c *Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
