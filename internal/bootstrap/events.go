package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wrecklessracks/racks/internal/config"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/metrics"
	"github.com/wrecklessracks/racks/internal/sse"
)

// EventSystem is the in-process bus, the retrying publisher in front of it and the
// consumers behind it: the live feed hub and the optional Kafka sink
type EventSystem struct {
	Bus       event.Bus
	Publisher *event.ResilientPublisher
	Hub       *sse.Hub
	Kafka     *event.KafkaSink
}

// InitializeEventSystem creates the event bus and resilient publisher, registers the
// metrics collector and, when brokers are configured, forwards every event to Kafka
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = config.DefaultEventMaxRetries
	}
	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = config.DefaultEventRetryDelay
	}
	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub).Register(bus)

	sys := &EventSystem{Bus: bus, Publisher: publisher, Hub: hub}
	if len(cfg.KafkaBrokers) > 0 {
		sys.Kafka = event.NewKafkaSink(event.NewKafkaWriter(cfg.KafkaBrokers), cfg.KafkaTopic, KafkaSinkWorkers)
		sys.Kafka.Register(bus)
		slog.Info(LogMsgKafkaSinkEnabled, "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return sys, nil
}
