package dbconfig

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/mcdev12/matchclock/go/internal/sqlutil"
)

// Config holds database connection settings. Postgres is the default; with
// DB_DRIVER=sqlite the custom-time table lives in an embedded file instead.
type Config struct {
	Driver     sqlutil.Dialect
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	SSLMode    string
	SQLitePath string
}

// NewConfigFromEnv reads DB_* environment variables (with defaults).
func NewConfigFromEnv() (Config, error) {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		port = 5432
	}

	cfg := Config{
		Driver:     sqlutil.Dialect(getEnv("DB_DRIVER", string(sqlutil.DialectPostgres))),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       port,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", "postgres"),
		Database:   getEnv("DB_NAME", "matchclock"),
		SSLMode:    getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "matchclock.db"),
	}
	switch cfg.Driver {
	case sqlutil.DialectPostgres, sqlutil.DialectSQLite:
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.Driver == sqlutil.DialectSQLite {
		return "file:" + c.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	return c.PostgresDSN()
}

// PostgresDSN returns the Postgres connection URL regardless of driver. The
// player directory always lives in Postgres.
func (c Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
