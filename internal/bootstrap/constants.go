package bootstrap

import "time"

// File System Permissions
const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// Log file rotation
const (
	LogFileName       = "racks.log"
	LogFileMaxSizeMB  = 50
	LogFileMaxBackups = 9
	LogFileMaxAgeDays = 14
)

// Background work
const (
	SchedulerWorkers   = 2
	SchedulerQueueSize = 16
	KafkaSinkWorkers   = 2
	ReadyCheckTimeout  = 2 * time.Second
)

// Health check names
const (
	HealthCheckDatabase = "database"
	HealthCheckJackpot  = "jackpot"
)

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingRacks       = "Starting racks"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgStorageReady        = "Storage ready"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgKafkaSinkEnabled               = "Kafka sink enabled"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
)

// Shutdown Messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgSchedulerShutdownFailed    = "Scheduler shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgKafkaSinkCloseFailed       = "Kafka sink close failed"
	LogMsgStorageCloseFailed         = "Storage close failed"

	// Service names for shutdown logging
	ServiceNameCasino      = "casino"
	ServiceNameAccount     = "account"
	ServiceNameProgression = "progression"
	ServiceNameBilling     = "billing"
	ServiceNameTournament  = "tournament"
)

// Shutdown log message format (service name will be prepended)
const (
	LogMsgServiceShutdownFailed = " service shutdown failed"
)
