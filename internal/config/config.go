// Package config loads server settings from the environment, an optional
// .env file and an optional YAML file, in that order of precedence:
//
//	defaults < .env < process environment < YAML file
//
// godotenv never overrides a variable that is already set, so the real
// environment wins over .env. The YAML file, when given, is decoded on top
// of the result and only replaces the keys it mentions.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            int           `yaml:"port"`
	DBPath          string        `yaml:"db_path"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	RateLimitMax    int           `yaml:"rate_limit_max"`
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	MaxPageSize     int           `yaml:"max_page_size"` // 0 = no cap
	PhoneRegions    []string      `yaml:"phone_regions"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"` // text or json
	Version         string        `yaml:"version"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Port:   3001,
		DBPath: "data/portfolio.db",
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
		},
		RateLimitMax:    100,
		RateLimitWindow: 15 * time.Minute,
		MaxBodyBytes:    10 << 20,
		MaxPageSize:     0,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
		Version:         "1.0.0",
	}
}

// Load builds the configuration. envFile is the dotenv file to read
// (missing is fine); path is an optional YAML file (missing is an error).
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening config file: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := Defaults()
	var errs []error

	cfg.Port = envInt("PORT", cfg.Port, &errs)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.AllowedOrigins = envList("FRONTEND_URL", cfg.AllowedOrigins)
	cfg.RateLimitMax = envInt("RATE_LIMIT_MAX", cfg.RateLimitMax, &errs)
	cfg.RateLimitWindow = envDuration("RATE_LIMIT_WINDOW", cfg.RateLimitWindow, &errs)
	cfg.MaxBodyBytes = int64(envInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes), &errs))
	cfg.MaxPageSize = envInt("MAX_PAGE_SIZE", cfg.MaxPageSize, &errs)
	cfg.PhoneRegions = envList("PHONE_REGIONS", cfg.PhoneRegions)
	cfg.ShutdownTimeout = envDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout, &errs)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Version = getEnv("API_VERSION", cfg.Version)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be in 1..65535, got %d", c.Port))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if c.RateLimitMax < 1 {
		errs = append(errs, fmt.Errorf("rate_limit_max must be positive, got %d", c.RateLimitMax))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit_window must be positive, got %s", c.RateLimitWindow))
	}
	if c.MaxBodyBytes < 1 {
		errs = append(errs, fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes))
	}
	if c.MaxPageSize < 0 {
		errs = append(errs, fmt.Errorf("max_page_size must not be negative, got %d", c.MaxPageSize))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout))
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Logger builds the application logger described by LogLevel and LogFormat.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// CORSOptions allows the configured frontends, with credentials.
func (c *Config) CORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
	}
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Gets the env by key or falls back to def.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return def
	}
	return n
}

func envDuration(key string, def time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

// envList splits a comma-separated variable, dropping blank entries.
func envList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
