package config

import (
	"errors" // Validation errors
	"fmt"    // Error formatting
	"time"   // Durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/viper"   // Environment lookup with defaults
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	DBDriver        string        // Database driver: mysql or sqlite
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	SQLitePath      string        // SQLite file path (sqlite driver only)
	JWTSecret       string        // JWT secret key
	TokenTTL        time.Duration // Lifetime of issued tokens
	RedisAddr       string        // Redis server address, empty disables caching
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	CacheTTL        time.Duration // TTL of cached ledger reads
	FrontendOrigin  string        // Only origin allowed by CORS
	RequireAuth     bool          // Protect /api routes with a bearer token
	ReconcileTries  int           // Max compare-and-swap attempts per capital update
	ShutdownTimeout time.Duration // Grace period for in-flight requests
	LogLevel        string        // logrus level name
	IsProd          bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return FromViper(newViper())
}

// newViper returns a viper instance bound to the process environment with defaults
func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("SQLITE_PATH", "data/control_gastos.db")
	v.SetDefault("TOKEN_TTL", time.Hour)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 60*time.Second)
	v.SetDefault("FRONTEND_ORIGIN", "http://localhost:3000")
	v.SetDefault("REQUIRE_AUTH", false)
	v.SetDefault("RECONCILE_MAX_ATTEMPTS", 64)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("IS_PROD", false)
	return v
}

// FromViper builds a Config from an already populated viper instance
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppPort:         v.GetString("APP_PORT"),
		DBDriver:        v.GetString("DB_DRIVER"),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBName:          v.GetString("DB_NAME"),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		TokenTTL:        v.GetDuration("TOKEN_TTL"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPass:       v.GetString("REDIS_PASS"),
		RedisDB:         v.GetInt("REDIS_DB"),
		CacheTTL:        v.GetDuration("CACHE_TTL"),
		FrontendOrigin:  v.GetString("FRONTEND_ORIGIN"),
		RequireAuth:     v.GetBool("REQUIRE_AUTH"),
		ReconcileTries:  v.GetInt("RECONCILE_MAX_ATTEMPTS"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		IsProd:          v.GetBool("IS_PROD"),
	}
}

// MySQLDSN returns the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// Validate reports settings the server cannot run with
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.DBName == "" {
			return errors.New("DB_NAME is required for the mysql driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.FrontendOrigin == "" {
		return errors.New("FRONTEND_ORIGIN is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.ReconcileTries <= 0 {
		return fmt.Errorf("RECONCILE_MAX_ATTEMPTS must be positive, got %d", c.ReconcileTries)
	}
	return nil
}
