package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embeddedMigrations embed.FS

// migrationSource returns the embedded migrations for d, or dir when set.
func migrationSource(d dialect, dir string) (fs.FS, error) {
	if dir = strings.TrimSpace(dir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("migrations dir %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("migrations dir %s: not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(embeddedMigrations, path.Join("migrations", d.name))
}

type migration struct {
	filename string
	content  string
	checksum string
}

// applyMigrations runs every *.sql file of fsys not yet recorded in
// schema_migrations, in file name order. A recorded file whose content has
// changed since is an error.
func applyMigrations(ctx context.Context, db *sql.DB, d dialect, fsys fs.FS) error {
	if err := ensureMigrationsTable(ctx, db, d); err != nil {
		return err
	}
	applied, err := loadAppliedMigrations(ctx, db)
	if err != nil {
		return err
	}
	pending, err := readMigrations(fsys)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if sum, ok := applied[m.filename]; ok {
			if sum != "" && sum != m.checksum {
				return fmt.Errorf("migration %s changed after it was applied", m.filename)
			}
			continue
		}
		if err := applyMigration(ctx, db, d, m); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.filename, err)
		}
	}
	return nil
}

func readMigrations(fsys fs.FS) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	sort.Strings(names)
	out := make([]migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		sum := sha256.Sum256(content)
		out = append(out, migration{filename: name, content: string(content), checksum: hex.EncodeToString(sum[:])})
	}
	return out, nil
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB, d dialect) error {
	now := d.now
	if d.name == sqliteDialect.name {
		now = "(" + now + ")"
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  filename TEXT PRIMARY KEY,
  checksum TEXT NOT NULL DEFAULT '',
  installed_at %s NOT NULL DEFAULT %s
);`, d.timestampType, now))
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func loadAppliedMigrations(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT filename, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]string{}
	for rows.Next() {
		var name, sum string
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[name] = sum
	}
	return applied, rows.Err()
}

func applyMigration(ctx context.Context, db *sql.DB, d dialect, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.content); err != nil {
		return err
	}
	record := fmt.Sprintf(`INSERT INTO schema_migrations (filename, checksum) VALUES (%s, %s)`, d.placeholder(1), d.placeholder(2))
	if _, err := tx.ExecContext(ctx, record, m.filename, m.checksum); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration tx: %w", err)
	}
	return nil
}
