package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"lheq-stats/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLStore keeps both data sets in the teams table of a SQLite or
// PostgreSQL database.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

type SQLOptions struct {
	// MigrationsDir replaces the embedded migrations when set.
	MigrationsDir string
}

func NewSQLiteStore(path string, opts SQLOptions) (*SQLStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	return openSQLStore(sqliteDialect, path, opts)
}

func NewPostgresStore(dsn string, opts SQLOptions) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	return openSQLStore(postgresDialect, dsn, opts)
}

func openSQLStore(d dialect, dsn string, opts SQLOptions) (*SQLStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	if d.name == sqliteDialect.name {
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}
	migrations, err := migrationSource(d, opts.MigrationsDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applyMigrations(ctx, db, d, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLStore{db: db, dialect: d}, nil
}

func (s *SQLStore) Dialect() string {
	return s.dialect.name
}

func (s *SQLStore) LoadTeams(ctx context.Context, includeTournaments bool) ([]model.TeamRecord, error) {
	return loadSQLTeams(ctx, s.db, s.dialect, model.DatasetFor(includeTournaments))
}

func (s *SQLStore) ReplaceTeams(ctx context.Context, dataset model.Dataset, teams []model.TeamRecord) error {
	return replaceSQLTeams(ctx, s.db, s.dialect, dataset, teams)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
