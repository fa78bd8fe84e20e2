package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"lheq-stats/internal/store"
)

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendHTTP     Backend = "http"
	BackendFile     Backend = "file"
	BackendMemory   Backend = "memory"
)

// Backend picks the team store: Postgres, then SQLite, then the remote data
// URL, then the local data dir, then the seeded memory store.
func (c Config) Backend() Backend {
	switch {
	case c.PostgresDSN != "":
		return BackendPostgres
	case c.DBPath != "":
		return BackendSQLite
	case c.DataURL != "":
		return BackendHTTP
	case c.DataDir != "":
		return BackendFile
	}
	return BackendMemory
}

func OpenStore(c Config, logger *logrus.Logger) (store.Store, error) {
	backend := c.Backend()
	logger.WithField("backend", backend).Info("Opening team store")

	switch backend {
	case BackendPostgres:
		s, err := store.NewPostgresStore(c.PostgresDSN, store.SQLOptions{MigrationsDir: c.PostgresMigrationsDir})
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		return s, nil
	case BackendSQLite:
		s, err := store.NewSQLiteStore(c.DBPath, store.SQLOptions{MigrationsDir: c.DBMigrationsDir})
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return s, nil
	case BackendHTTP:
		s, err := store.NewHTTPStore(c.DataURL, store.HTTPOptions{CacheTTL: c.DataCacheTTL}, logger)
		if err != nil {
			return nil, fmt.Errorf("http store: %w", err)
		}
		return s, nil
	case BackendFile:
		s, err := store.NewFileStore(c.DataDir)
		if err != nil {
			return nil, fmt.Errorf("file store: %w", err)
		}
		return s, nil
	}
	return store.NewMemoryStore(!c.Production()), nil
}
