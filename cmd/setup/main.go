// Command setup creates the racks Postgres database if it does not exist and applies
// the embedded migrations. With -reset it drops the database first.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/wrecklessracks/racks/internal/database"
)

const setupTimeout = 2 * time.Minute

type target struct {
	host, port, user, password, name string
}

func targetFromEnv() target {
	return target{
		host:     envOr("DB_HOST", "localhost"),
		port:     envOr("DB_PORT", "5432"),
		user:     envOr("DB_USER", "postgres"),
		password: os.Getenv("DB_PASSWORD"),
		name:     envOr("DB_NAME", "racks"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// connString points at db on the target server; the maintenance database is "postgres"
func (t target) connString(db string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", t.user, t.password, t.host, t.port, db)
}

func main() {
	reset := flag.Bool("reset", false, "drop the database before creating it (destroys all accounts)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := run(ctx, targetFromEnv(), *reset); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, t target, reset bool) error {
	if reset {
		if err := dropDatabase(ctx, t); err != nil {
			return err
		}
		fmt.Printf("Dropped database %s\n", t.name)
	}

	created, err := ensureDatabase(ctx, t)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Created database %s\n", t.name)
	} else {
		fmt.Printf("Database %s already exists\n", t.name)
	}

	pool, err := database.NewPool(t.connString(t.name), 2, time.Minute, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", t.name, err)
	}
	defer pool.Close()

	if err := database.MigratePostgres(ctx, pool); err != nil {
		return err
	}
	fmt.Println("Migrations applied")
	return nil
}

// ensureDatabase creates the target database through the maintenance database and reports
// whether it had to
func ensureDatabase(ctx context.Context, t target) (bool, error) {
	conn, err := pgx.Connect(ctx, t.connString("postgres"))
	if err != nil {
		return false, fmt.Errorf("failed to connect to postgres server: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", t.name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for database %s: %w", t.name, err)
	}
	if exists {
		return false, nil
	}

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{t.name}.Sanitize()); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", t.name, err)
	}
	return true, nil
}

// dropDatabase disconnects every other session on the target database and drops it
func dropDatabase(ctx context.Context, t target) error {
	conn, err := pgx.Connect(ctx, t.connString("postgres"))
	if err != nil {
		return fmt.Errorf("failed to connect to postgres server: %w", err)
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, t.name)
	if err != nil {
		log.Printf("Warning: failed to terminate connections to %s: %v", t.name, err)
	}

	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{t.name}.Sanitize()); err != nil {
		return fmt.Errorf("failed to drop database %s: %w", t.name, err)
	}
	return nil
}
