package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, StorageMemory, cfg.StorageBackend)
		assert.Equal(t, JackpotBackendStore, cfg.JackpotBackend)
		assert.Empty(t, cfg.KafkaBrokers)
		assert.Equal(t, int64(10_000), cfg.StartingBalance)
		assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
		assert.Equal(t, int64(50_000), cfg.JackpotSeed)
		assert.Equal(t, int64(25), cfg.JackpotIncrement)
		assert.Equal(t, time.UTC, cfg.Location())
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})

	t.Run("from environment", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("STORAGE_BACKEND", "Postgres")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("JACKPOT_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")
		t.Setenv("STARTING_BALANCE", "2500")
		t.Setenv("TIMEZONE", "America/New_York")
		t.Setenv("SESSION_TTL", "90s")
		t.Setenv("JACKPOT_SEED", "1000")
		t.Setenv("CRON_DAILY_ROLLOVER", "5 0 * * *")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, StoragePostgres, cfg.StorageBackend)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, JackpotBackendRedis, cfg.JackpotBackend)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
		assert.Equal(t, int64(2500), cfg.StartingBalance)
		assert.Equal(t, "America/New_York", cfg.Location().String())
		assert.Equal(t, 90*time.Second, cfg.SessionTTL)
		assert.Equal(t, int64(1000), cfg.JackpotSeed)
		assert.Equal(t, "5 0 * * *", cfg.CronDailyRollover)
	})

	t.Run("invalid pool values fall back to defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "not-a-number")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "invalid")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
	})

	errorCases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing api key", map[string]string{}, "API_KEY"},
		{"invalid port", map[string]string{"API_KEY": "k", "PORT": "not-a-number"}, "invalid PORT"},
		{"float port", map[string]string{"API_KEY": "k", "PORT": "8080.5"}, "invalid PORT"},
		{"empty port", map[string]string{"API_KEY": "k", "PORT": ""}, "invalid PORT"},
		{"unknown storage", map[string]string{"API_KEY": "k", "STORAGE_BACKEND": "mongo"}, "STORAGE_BACKEND"},
		{"unknown jackpot backend", map[string]string{"API_KEY": "k", "JACKPOT_BACKEND": "etcd"}, "JACKPOT_BACKEND"},
		{"unknown timezone", map[string]string{"API_KEY": "k", "TIMEZONE": "Mars/Olympus"}, "TIMEZONE"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "user",
		DBPassword: "p@ss:word",
		DBHost:     "db.example.com",
		DBPort:     "5433",
		DBName:     "racks",
	}

	assert.Equal(t, "postgres://user:p@ss:word@db.example.com:5433/racks?sslmode=disable", cfg.GetDBConnString())
}

func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "TRUSTED_PROXIES", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR",
		"SERVICE_NAME", "VERSION", "ENVIRONMENT",
		"STORAGE_BACKEND", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME", "SQLITE_PATH",
		"JACKPOT_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "EVENT_DEAD_LETTER_PATH", "EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY",
		"STARTING_BALANCE", "TIMEZONE", "SESSION_TTL", "SESSION_CAPACITY",
		"JACKPOT_SEED", "JACKPOT_INITIAL", "JACKPOT_INCREMENT",
		"CRON_JACKPOT_REFRESH", "CRON_DAILY_ROLLOVER",
	}

	for _, key := range envVars {
		// Restored after the test
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
