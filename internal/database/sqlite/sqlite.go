// Package sqlite implements the account and jackpot repositories on an embedded
// SQLite file. It is meant for a single process such as the racks CLI: row locks
// are taken in-process and each commit is one short write transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	_ "modernc.org/sqlite"

	"github.com/wrecklessracks/racks/internal/database"
	"github.com/wrecklessracks/racks/migrations"
)

const driverName = "sqlite"

// Open opens (creating if needed) the database file and applies migrations
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToOpenSQLite, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToPingDatabase, err)
	}

	applied, err := migrations.UpSQLite(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToRunMigrations, err)
	}
	slog.Default().Debug(database.LogMsgMigrationsApplied, "backend", "sqlite", "applied", applied)
	return db, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}
