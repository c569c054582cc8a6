package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DriverPostgres DatabaseDriver = "postgres" // Server database addressed by host/port/name
)

type (
	Config struct {
		HTTP
		Database
		OpenLibrary
		Populate
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // sqlite only
		Host     string
		Port     int
		Name     string
		User     string
		Password string
		SSLMode  string
		LogLevel string // gorm logger level: silent, error, warn, info
	}
	OpenLibrary struct {
		BaseURL        string
		UserAgent      string
		RequestTimeout time.Duration
		RequestDelay   time.Duration // Pause after every successful request
	}
	Populate struct {
		TargetCount int
	}
	Log struct {
		Level string
	}
)

// DSN returns the postgres connection string for the configured server.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Describe returns a loggable description of the target database without credentials.
func (d Database) Describe() string {
	if d.Driver == DriverPostgres {
		return fmt.Sprintf("postgres://%s@%s:%d/%s", d.User, d.Host, d.Port, d.Name)
	}
	return fmt.Sprintf("sqlite://%s", d.Path)
}

// LoadEnvFiles reads .env and .env.local. Variables already present in the
// process environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")

	v.SetDefault("db_driver", string(DriverSQLite))
	v.SetDefault("db_path", DefaultDatabasePath)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_name", "litwise_books")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_log_level", "warn")

	v.SetDefault("openlibrary_base_url", DefaultOpenLibraryBaseURL)
	v.SetDefault("openlibrary_user_agent", DefaultUserAgent)
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("request_delay", "500ms")

	v.SetDefault("populate_target_count", DefaultTargetCount)
	v.SetDefault("log_level", "info")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Driver:   DatabaseDriver(v.GetString("DB_DRIVER")),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL:        v.GetString("OPENLIBRARY_BASE_URL"),
			UserAgent:      v.GetString("OPENLIBRARY_USER_AGENT"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
			RequestDelay:   v.GetDuration("REQUEST_DELAY"),
		},
		Populate: Populate{
			TargetCount: v.GetInt("POPULATE_TARGET_COUNT"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}
