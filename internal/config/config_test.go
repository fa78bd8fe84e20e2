package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envFrom(nil))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Expected addr %s, got %s", DefaultAddr, cfg.Addr)
	}
	if !cfg.IncludeTournaments {
		t.Error("Expected tournaments included by default")
	}
	if cfg.LogLevel != logrus.InfoLevel || cfg.LogFormat != "text" {
		t.Errorf("Unexpected logging config %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.SessionTTL != DefaultSessionTTL || cfg.DataCacheTTL != DefaultDataCacheTTL {
		t.Error("Expected default durations")
	}
	if cfg.Divisions != nil {
		t.Errorf("Expected no divisions, got %v", cfg.Divisions)
	}
	if cfg.Backend() != BackendMemory {
		t.Errorf("Expected memory backend, got %s", cfg.Backend())
	}
}

func TestLoadFrom_Values(t *testing.T) {
	cfg, err := LoadFrom(envFrom(map[string]string{
		"APP":                      "PROD",
		"ADDR":                     ":9000",
		"LOG_LEVEL":                "debug",
		"AWS_LAMBDA_FUNCTION_NAME": "stats",
		"DASHBOARD_DIVISIONS":      " Hockey Experts ; ;Sports Rousseau",
		"INCLUDE_TOURNAMENTS":      "false",
		"TEAM_DETAIL_URL":          "team-detail.html?id=%s",
		"SESSION_TTL":              "10m",
		"DATA_CACHE_TTL":           "0s",
	}))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !cfg.Production() || !cfg.Lambda {
		t.Error("Expected production lambda config")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected json logs in lambda, got %s", cfg.LogFormat)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", cfg.LogLevel)
	}
	if want := []string{"Hockey Experts", "Sports Rousseau"}; !reflect.DeepEqual(cfg.Divisions, want) {
		t.Errorf("Expected %v, got %v", want, cfg.Divisions)
	}
	if cfg.IncludeTournaments {
		t.Error("Expected tournaments excluded")
	}
	if cfg.SessionTTL != 10*time.Minute || cfg.DataCacheTTL != 0 {
		t.Error("Expected durations from env")
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"log level":      {"LOG_LEVEL": "loud"},
		"log format":     {"LOG_FORMAT": "xml"},
		"toggle":         {"INCLUDE_TOURNAMENTS": "maybe"},
		"session ttl":    {"SESSION_TTL": "soon"},
		"zero session":   {"SESSION_TTL": "0s"},
		"cache ttl":      {"DATA_CACHE_TTL": "-"},
		"detail pattern": {"TEAM_DETAIL_URL": "/teams"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(envFrom(env)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestBackendOrder(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Backend
	}{
		{name: "postgres wins", cfg: Config{PostgresDSN: "postgres://x", DBPath: "a.db", DataURL: "http://x", DataDir: "d"}, want: BackendPostgres},
		{name: "sqlite", cfg: Config{DBPath: "a.db", DataURL: "http://x", DataDir: "d"}, want: BackendSQLite},
		{name: "http", cfg: Config{DataURL: "http://x", DataDir: "d"}, want: BackendHTTP},
		{name: "file", cfg: Config{DataDir: "d"}, want: BackendFile},
		{name: "memory", cfg: Config{}, want: BackendMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Backend(); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestOpenStore_File(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "teams.json"), []byte(`[{"id": 1, "name": "Lynx"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	logger, hook := test.NewNullLogger()

	s, err := OpenStore(Config{DataDir: dir}, logger)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	teams, err := s.LoadTeams(context.Background(), true)
	if err != nil || len(teams) != 1 {
		t.Fatalf("Expected 1 team, got %d (%v)", len(teams), err)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Data["backend"] != BackendFile {
		t.Error("Expected backend to be logged")
	}
}

func TestOpenStore_SQLiteError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := OpenStore(Config{DBPath: filepath.Join(t.TempDir(), "stats.db"), DBMigrationsDir: filepath.Join(t.TempDir(), "missing")}, logger)
	if err == nil {
		t.Error("Expected error for missing migrations")
	}
}

func TestOpenStore_SQLiteEmbeddedMigrations(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s, err := OpenStore(Config{DBPath: filepath.Join(t.TempDir(), "stats.db")}, logger)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if closer, ok := s.(io.Closer); ok {
		t.Cleanup(func() { _ = closer.Close() })
	}
	teams, err := s.LoadTeams(context.Background(), false)
	if err != nil || len(teams) != 0 {
		t.Errorf("Expected an empty store, got %d teams (%v)", len(teams), err)
	}
}

func TestOpenStore_MemorySeededOutsideProduction(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tests := map[string]bool{
		"":     true,
		"dev":  true,
		"prod": false,
	}
	for app, seeded := range tests {
		t.Run("app="+app, func(t *testing.T) {
			s, err := OpenStore(Config{App: app}, logger)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			teams, err := s.LoadTeams(context.Background(), true)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got := len(teams) > 0; got != seeded {
				t.Errorf("Expected seeded=%v, got %d teams", seeded, len(teams))
			}
		})
	}
}
