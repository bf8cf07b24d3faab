// Package migrations embeds the goose schema migrations for each SQL backend
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Directories inside the embedded filesystem
const (
	DirPostgres = "postgres"
	DirSQLite   = "sqlite"
)

// UpPostgres applies every pending Postgres migration
func UpPostgres(ctx context.Context, db *sql.DB) (int, error) {
	return up(ctx, db, goose.DialectPostgres, DirPostgres)
}

// UpSQLite applies every pending SQLite migration
func UpSQLite(ctx context.Context, db *sql.DB) (int, error) {
	return up(ctx, db, goose.DialectSQLite3, DirSQLite)
}

func up(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) (int, error) {
	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s migrations: %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return len(results), nil
}
