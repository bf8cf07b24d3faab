package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wrecklessracks/racks/internal/bootstrap"
	"github.com/wrecklessracks/racks/internal/config"
	"github.com/wrecklessracks/racks/internal/scheduler"
	"github.com/wrecklessracks/racks/internal/server"
	"github.com/wrecklessracks/racks/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCloser, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		slog.Warn("Configuration warning", "detail", warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		repos.Close()
		return err
	}

	svc, err := bootstrap.InitializeServices(ctx, cfg, repos, events.Publisher)
	if err != nil {
		repos.Close()
		return err
	}

	pool := worker.NewPool(bootstrap.SchedulerWorkers, bootstrap.SchedulerQueueSize)
	pool.Start()
	sched := scheduler.New(pool, cfg.Location())
	if err := sched.Schedule(cfg.CronJackpotRefresh, scheduler.NewJackpotRefreshJob(svc.Jackpot, events.Publisher)); err != nil {
		return err
	}
	if err := sched.Schedule(cfg.CronDailyRollover, scheduler.NewDailyRolloverJob(cfg.Location())); err != nil {
		return err
	}
	sched.Start()
	// Seed the jackpot gauge without waiting for the first tick
	pool.Enqueue(scheduler.NewJackpotRefreshJob(svc.Jackpot, events.Publisher))

	srv := server.NewServer(server.Options{
		Port:            cfg.Port,
		APIKey:          cfg.APIKey,
		TrustedProxies:  cfg.TrustedProxies,
		StartingBalance: cfg.StartingBalance,
	}, server.Services{
		Accounts:    svc.Account,
		Casino:      svc.Casino,
		Progression: svc.Progression,
		Billing:     svc.Billing,
		Tournaments: svc.Tournament,
		Events:      events.Hub,
		Health:      repos.Health,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:       srv,
		Scheduler:    sched,
		WorkerPool:   pool,
		Services:     svc.ShutdownOrder(),
		Events:       events,
		Repositories: repos,
	})
	return err
}
