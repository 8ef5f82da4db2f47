package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Host       string
	Port       int
	CacheDir   string // storage directory holding one <name>.txt file per note
	LogLevel   slog.Level
	LogFormat  string // "text" or "json"
	FormDir    string // directory with UploadForm.html; empty means the embedded form
	Watch      bool   // log changes made to the storage directory by other processes
	LockWrites bool   // serialize operations per note name
}

// Overrides carries values given on the command line. Non-empty fields take
// precedence over the environment.
type Overrides struct {
	Host     string
	Port     string
	CacheDir string
}

// Load reads configuration from environment variables, applies command-line
// overrides and validates the result.
// If a .env file exists in the current directory or a parent directory, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
// The storage directory is created, including missing parents.
func Load(overrides Overrides) (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		Host:      firstNonEmpty(overrides.Host, getEnv("NOTES_HOST", "")),
		CacheDir:  firstNonEmpty(overrides.CacheDir, getEnv("NOTES_CACHE_DIR", "")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		FormDir:   getEnv("NOTES_FORM_DIR", ""),
	}

	// Validate required fields
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required (--host or NOTES_HOST)")
	}

	portStr := firstNonEmpty(overrides.Port, getEnv("NOTES_PORT", ""))
	if portStr == "" {
		return nil, fmt.Errorf("port is required (--port or NOTES_PORT)")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("port must be a valid integer: %w", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	cfg.Port = port

	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("cache directory is required (--cache or NOTES_CACHE_DIR)")
	}
	cacheDir, err := filepath.Abs(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	cfg.CacheDir = cacheDir

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.Watch, err = getEnvBool("NOTES_WATCH", false); err != nil {
		return nil, err
	}
	if cfg.LockWrites, err = getEnvBool("NOTES_LOCK_WRITES", false); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// loadDotEnv loads .env from the current directory, then walks up a few levels
// looking for one. Errors are ignored: the file is optional.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
