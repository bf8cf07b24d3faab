package config

import "time"

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Jackpot backends
const (
	JackpotBackendStore = "store"
	JackpotBackendRedis = "redis"
)

// Defaults
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultEnvironment     = "dev"
	DefaultServiceName     = "racks"
	DefaultVersion         = "dev"
	DefaultDBName          = "racks"
	DefaultDBMaxConns      = 20
	DefaultDBMaxIdleTime   = 5 * time.Minute
	DefaultDBMaxLifetime   = 30 * time.Minute
	DefaultSQLitePath      = "racks.db"
	DefaultRedisAddr       = "localhost:6379"
	DefaultKafkaTopic      = "racks.events"
	DefaultDeadLetterPath  = "logs/event_deadletter.jsonl"
	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second
	DefaultStartingBalance = 10_000
	DefaultTimezone        = "UTC"
	DefaultSessionTTL      = 10 * time.Minute
	DefaultSessionCapacity = 10_000
	DefaultJackpotSeed     = 50_000
	DefaultJackpotInitial  = 50_000
	DefaultJackpotIncrease = 25

	// Every five minutes; midnight in the configured timezone
	DefaultCronJackpotRefresh = "*/5 * * * *"
	DefaultCronDailyRollover  = "0 0 * * *"
)
