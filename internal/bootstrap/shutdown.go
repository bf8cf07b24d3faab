package bootstrap

import (
	"context"
	"log/slog"

	"github.com/wrecklessracks/racks/internal/scheduler"
	"github.com/wrecklessracks/racks/internal/server"
	"github.com/wrecklessracks/racks/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	// Services in shutdown order, keyed by name for logging
	Services     []NamedService
	Events       *EventSystem
	Repositories *Repositories
}

// NamedService pairs a service with the name used in shutdown logs
type NamedService struct {
	Name    string
	Service shutdownableService
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

// GracefulShutdown stops the application in dependency order:
// 0. Live event feed (open streams would otherwise hold the server open)
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and its worker pool
// 3. Services (the casino settles open hands here)
// 4. Event publisher and Kafka sink (flush pending events)
// 5. Storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Events != nil && c.Events.Hub != nil {
		c.Events.Hub.Stop()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		if err := c.Scheduler.Stop(ctx); err != nil {
			slog.Error(LogMsgSchedulerShutdownFailed, "error", err)
		}
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	for _, svc := range c.Services {
		shutdownService(ctx, svc.Name, svc.Service)
	}

	if c.Events != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.Events.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
		if c.Events.Kafka != nil {
			if err := c.Events.Kafka.Close(); err != nil {
				slog.Error(LogMsgKafkaSinkCloseFailed, "error", err)
			}
		}
	}

	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if service == nil {
		return
	}
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
