package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists the variables every deployment must set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// BackendEnvVars lists the extra variables each storage or jackpot backend needs
var BackendEnvVars = map[string][]string{
	StoragePostgres:     {"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"},
	StorageSQLite:       {"SQLITE_PATH"},
	JackpotBackendRedis: {"REDIS_ADDR"},
}

// RequiredFor returns the variables required by the configured backends
func RequiredFor(storageBackend, jackpotBackend string) []string {
	required := append([]string{}, RequiredEnvVars...)
	required = append(required, BackendEnvVars[strings.ToLower(storageBackend)]...)
	if strings.ToLower(jackpotBackend) == JackpotBackendRedis {
		required = append(required, BackendEnvVars[JackpotBackendRedis]...)
	}
	return required
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	// Check schema version first
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	storage := envOrDefault("STORAGE_BACKEND", StorageMemory)
	jackpot := envOrDefault("JACKPOT_BACKEND", JackpotBackendStore)

	var missing []string
	for _, envVar := range RequiredFor(storage, jackpot) {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if envOrDefault("STORAGE_BACKEND", StorageMemory) == StorageMemory && envOrDefault("ENVIRONMENT", DefaultEnvironment) == "prod" {
		warnings = append(warnings, "STORAGE_BACKEND is memory in prod - balances are lost on restart")
	}

	return warnings, nil
}

// envOrDefault treats an empty variable as unset
func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value)
	}
	return defaultValue
}
