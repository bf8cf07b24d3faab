package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wrecklessracks/racks/internal/config"
	"github.com/wrecklessracks/racks/internal/database"
	"github.com/wrecklessracks/racks/internal/database/memory"
	"github.com/wrecklessracks/racks/internal/database/postgres"
	redisstore "github.com/wrecklessracks/racks/internal/database/redis"
	"github.com/wrecklessracks/racks/internal/database/sqlite"
	"github.com/wrecklessracks/racks/internal/handler"
	"github.com/wrecklessracks/racks/internal/repository"
)

// Repositories holds the stores the services run on, plus the readiness checks
// for whatever they connect to
type Repositories struct {
	Account repository.Account
	Jackpot repository.Jackpot
	Health  map[string]handler.HealthChecker

	closers []func() error
}

// InitializeRepositories opens the configured storage and jackpot backends.
// SQL backends are migrated before use.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	repos := &Repositories{Health: make(map[string]handler.HealthChecker)}

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, func() error { pool.Close(); return nil })
		if err := database.MigratePostgres(ctx, pool); err != nil {
			repos.Close()
			return nil, err
		}
		accounts := postgres.NewAccountStore(pool)
		repos.Account = accounts
		repos.Jackpot = postgres.NewJackpotStore(pool)
		repos.Health[HealthCheckDatabase] = accounts

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, db.Close)
		accounts := sqlite.NewAccountStore(db)
		repos.Account = accounts
		repos.Jackpot = sqlite.NewJackpotStore(db)
		repos.Health[HealthCheckDatabase] = accounts

	case config.StorageMemory:
		repos.Account = memory.NewAccountStore()
		repos.Jackpot = memory.NewJackpotStore()

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	if cfg.JackpotBackend == config.JackpotBackendRedis {
		store, err := redisstore.NewJackpotStore(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			repos.Close()
			return nil, err
		}
		repos.closers = append(repos.closers, store.Close)
		repos.Jackpot = store
		repos.Health[HealthCheckJackpot] = store
	}

	slog.Info(LogMsgStorageReady, "storage", cfg.StorageBackend, "jackpot_backend", cfg.JackpotBackend)
	return repos, nil
}

// Close releases every backend connection, most recently opened first
func (r *Repositories) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}
	r.closers = nil
}
