package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string
	APIKey      string // API key for authentication

	// Proxies whose X-Forwarded-For header is trusted for client IPs
	TrustedProxies []string

	StorageBackend    string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	SQLitePath        string

	JackpotBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Empty disables the Kafka sink
	KafkaBrokers        []string
	KafkaTopic          string
	EventDeadLetterPath string
	EventMaxRetries     int
	EventRetryDelay     time.Duration

	StartingBalance int64
	Timezone        string
	SessionTTL      time.Duration
	SessionCapacity int

	JackpotSeed      int64
	JackpotInitial   int64
	JackpotIncrement int64

	CronJackpotRefresh string
	CronDailyRollover  string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:         getEnv("LOG_DIR", "logs"),
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName:    getEnv("SERVICE_NAME", DefaultServiceName),
		Version:        getEnv("VERSION", DefaultVersion),
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		StorageBackend:    strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxLifetime),
		SQLitePath:        getEnv("SQLITE_PATH", DefaultSQLitePath),

		JackpotBackend: strings.ToLower(getEnv("JACKPOT_BACKEND", JackpotBackendStore)),
		RedisAddr:      getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),

		KafkaBrokers:        getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:          getEnv("KAFKA_TOPIC", DefaultKafkaTopic),
		EventDeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", DefaultDeadLetterPath),
		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),

		StartingBalance: getEnvAsInt64("STARTING_BALANCE", DefaultStartingBalance),
		Timezone:        getEnv("TIMEZONE", DefaultTimezone),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", DefaultSessionTTL),
		SessionCapacity: getEnvAsInt("SESSION_CAPACITY", DefaultSessionCapacity),

		JackpotSeed:      getEnvAsInt64("JACKPOT_SEED", DefaultJackpotSeed),
		JackpotInitial:   getEnvAsInt64("JACKPOT_INITIAL", DefaultJackpotInitial),
		JackpotIncrement: getEnvAsInt64("JACKPOT_INCREMENT", DefaultJackpotIncrease),

		CronJackpotRefresh: getEnv("CRON_JACKPOT_REFRESH", DefaultCronJackpotRefresh),
		CronDailyRollover:  getEnv("CRON_DAILY_ROLLOVER", DefaultCronDailyRollover),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	switch cfg.StorageBackend {
	case StorageMemory, StoragePostgres, StorageSQLite:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: want %s, %s or %s", cfg.StorageBackend, StorageMemory, StoragePostgres, StorageSQLite)
	}
	switch cfg.JackpotBackend {
	case JackpotBackendStore, JackpotBackendRedis:
	default:
		return nil, fmt.Errorf("invalid JACKPOT_BACKEND %q: want %s or %s", cfg.JackpotBackend, JackpotBackendStore, JackpotBackendRedis)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE value: %w", err)
	}

	return cfg, nil
}

// Location returns the calendar-day timezone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a Go duration string such as "10m" or "1h30m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
