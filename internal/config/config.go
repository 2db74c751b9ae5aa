package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	UpstreamURL      string
	UpstreamToken    string
	APIKey           string
	HTTPTimeout      time.Duration
	ShutdownTimeout  time.Duration
	DefaultRangeDays int
	AllowOrigin      string
	LogLevel         slog.Level
	LogFormat        string
}

// LoadDotEnv loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func FromEnv() Config {
	return Config{
		Port:             envOr("PORT", "8080"),
		UpstreamURL:      os.Getenv("UPSTREAM_BASE_URL"),
		UpstreamToken:    os.Getenv("UPSTREAM_API_TOKEN"),
		APIKey:           os.Getenv("PROXY_API_KEY"),
		HTTPTimeout:      envSeconds("HTTP_TIMEOUT_SECONDS", 15*time.Second),
		ShutdownTimeout:  envSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		DefaultRangeDays: envInt("DEFAULT_RANGE_DAYS", 7),
		AllowOrigin:      envOr("CORS_ALLOW_ORIGIN", "*"),
		LogLevel:         parseLevel(os.Getenv("LOG_LEVEL")),
		LogFormat:        envOr("LOG_FORMAT", "json"),
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got: %q", c.Port))
	}
	if c.UpstreamURL == "" {
		problems = append(problems, "UPSTREAM_BASE_URL is required")
	} else if u, err := url.Parse(c.UpstreamURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("UPSTREAM_BASE_URL must be an absolute http(s) URL, got: %q", c.UpstreamURL))
	}
	if c.HTTPTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("HTTP_TIMEOUT_SECONDS must be positive, got: %s", c.HTTPTimeout))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("SHUTDOWN_TIMEOUT_SECONDS must be positive, got: %s", c.ShutdownTimeout))
	}
	if c.DefaultRangeDays < 1 || c.DefaultRangeDays > 90 {
		problems = append(problems, fmt.Sprintf("DEFAULT_RANGE_DAYS must be between 1 and 90, got: %d", c.DefaultRangeDays))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or text, got: %q", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

// envSeconds reads a whole number of seconds. Unset or unparsable keeps def.
func envSeconds(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			return d
		}
	}
	return def
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
