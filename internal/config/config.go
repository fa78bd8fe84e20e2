package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAddr          = ":8080"
	DefaultTeamDetailURL = "/teams/%s"
	DefaultSessionTTL    = 30 * time.Minute
	DefaultDataCacheTTL  = 5 * time.Minute
)

type Config struct {
	App       string
	Addr      string
	LogLevel  logrus.Level
	LogFormat string
	Lambda    bool

	PostgresDSN           string
	PostgresMigrationsDir string
	DBPath                string
	DBMigrationsDir       string
	DataDir               string
	DataURL               string
	DataCacheTTL          time.Duration

	Divisions          []string
	IncludeTournaments bool
	TeamDetailURL      string
	SessionTTL         time.Duration
}

// LoadDotEnv reads .env and .env.local when not running in Lambda. Missing
// files are ignored; variables already set win.
func LoadDotEnv() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return
	}
	for _, name := range []string{".env", ".env.local"} {
		_ = godotenv.Load(name)
	}
}

func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom builds the configuration from getenv.
func LoadFrom(getenv func(string) string) (Config, error) {
	get := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	cfg := Config{
		App:                   strings.ToLower(get("APP")),
		Addr:                  get("ADDR"),
		LogFormat:             strings.ToLower(get("LOG_FORMAT")),
		Lambda:                get("AWS_LAMBDA_FUNCTION_NAME") != "",
		PostgresDSN:           get("POSTGRES_DSN"),
		PostgresMigrationsDir: get("POSTGRES_MIGRATIONS_DIR"),
		DBPath:                get("DB_PATH"),
		DBMigrationsDir:       get("DB_MIGRATIONS_DIR"),
		DataDir:               get("DATA_DIR"),
		DataURL:               get("DATA_URL"),
		Divisions:             splitList(get("DASHBOARD_DIVISIONS")),
		TeamDetailURL:         get("TEAM_DETAIL_URL"),
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.TeamDetailURL == "" {
		cfg.TeamDetailURL = DefaultTeamDetailURL
	}
	if !strings.Contains(cfg.TeamDetailURL, "%s") {
		return Config{}, fmt.Errorf("TEAM_DETAIL_URL %q must contain %%s", cfg.TeamDetailURL)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
		if cfg.Lambda {
			cfg.LogFormat = "json"
		}
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LOG_FORMAT %q must be text or json", cfg.LogFormat)
	}

	cfg.LogLevel = logrus.InfoLevel
	if raw := get("LOG_LEVEL"); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	var err error
	if cfg.IncludeTournaments, err = parseBool(get("INCLUDE_TOURNAMENTS"), true); err != nil {
		return Config{}, fmt.Errorf("INCLUDE_TOURNAMENTS: %w", err)
	}
	if cfg.DataCacheTTL, err = parseDuration(get("DATA_CACHE_TTL"), DefaultDataCacheTTL); err != nil {
		return Config{}, fmt.Errorf("DATA_CACHE_TTL: %w", err)
	}
	if cfg.SessionTTL, err = parseDuration(get("SESSION_TTL"), DefaultSessionTTL); err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}

// Production reports whether the process runs with real data only. The
// memory backend is left empty there instead of being seeded.
func (c Config) Production() bool {
	return c.App == "prod"
}

// NewLogger builds the process logger. Output goes to stderr so the MCP
// server can keep stdout for the protocol.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(raw string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseBool(raw)
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}
