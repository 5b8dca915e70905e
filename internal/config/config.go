package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	DB      DBConfig
	Daily   DailyConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	Host         string
	Env          string // "development" or "production"
	ClientOrigin string // CORS origin for the web client
}

// AuthConfig holds JWT and cookie configuration.
type AuthConfig struct {
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
}

// DBConfig holds database configuration.
type DBConfig struct {
	Path string // SQLite file path
}

// DailyConfig holds the word-of-the-day source configuration.
type DailyConfig struct {
	BaseURL string
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			Host:         getEnv("HOST", "0.0.0.0"),
			Env:          getEnv("ENV", "development"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
			JWTExpiresDays: getEnvInt("JWT_EXPIRES_DAYS", 14),
			CookieName:     getEnv("COOKIE_NAME", "wordlegolf_token"),
		},
		DB: DBConfig{
			Path: getEnv("DB_PATH", "./data/wordlegolf.db"),
		},
		Daily: DailyConfig{
			BaseURL: getEnv("DAILY_WORD_URL", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
