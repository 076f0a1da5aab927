package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the typed application configuration, usually bound into
// the container under the "config" alias.
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	Log  LogConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
}

type HTTPConfig struct {
	Host string
	Port string
}

type LogConfig struct {
	Level string // debug | info | warn | error
}

// Load reads .env (if present) and populates a Config from
// environment variables. Call once at bootstrap.
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist outside local dev
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoContainer"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
		},
		HTTP: HTTPConfig{
			Host: env("HTTP_HOST", ""),
			Port: env("HTTP_PORT", "8000"),
		},
		Log: LogConfig{
			Level: env("LOG_LEVEL", "info"),
		},
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
