package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearValidatorEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV_SCHEMA_VERSION", "API_KEY", "STORAGE_BACKEND", "JACKPOT_BACKEND", "ENVIRONMENT",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "SQLITE_PATH", "REDIS_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	clearValidatorEnv(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_BackendRequirements(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantMissing []string
		wantOK      bool
	}{
		{
			name:   "memory needs only the base keys",
			env:    map[string]string{"API_KEY": "k"},
			wantOK: true,
		},
		{
			name:        "missing api key",
			env:         map[string]string{},
			wantMissing: []string{"API_KEY"},
		},
		{
			name:        "postgres reports every missing db key",
			env:         map[string]string{"API_KEY": "k", "STORAGE_BACKEND": "postgres", "DB_HOST": "db"},
			wantMissing: []string{"DB_USER", "DB_PASSWORD", "DB_PORT", "DB_NAME"},
		},
		{
			name:        "sqlite needs a path",
			env:         map[string]string{"API_KEY": "k", "STORAGE_BACKEND": "sqlite"},
			wantMissing: []string{"SQLITE_PATH"},
		},
		{
			name:        "redis jackpot needs an address",
			env:         map[string]string{"API_KEY": "k", "JACKPOT_BACKEND": "redis"},
			wantMissing: []string{"REDIS_ADDR"},
		},
		{
			name:        "missing keys from both backends in one error",
			env:         map[string]string{"STORAGE_BACKEND": "sqlite", "JACKPOT_BACKEND": "redis"},
			wantMissing: []string{"API_KEY", "SQLITE_PATH", "REDIS_ADDR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearValidatorEnv(t)
			t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := ValidateEnv()
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "missing required environment variables")
			for _, key := range tt.wantMissing {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}

func TestRequiredFor(t *testing.T) {
	assert.Equal(t, []string{"ENV_SCHEMA_VERSION", "API_KEY"}, RequiredFor("memory", "store"))
	assert.Equal(t,
		[]string{"ENV_SCHEMA_VERSION", "API_KEY", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "REDIS_ADDR"},
		RequiredFor("POSTGRES", "redis"))
	// Base list is not mutated
	assert.Len(t, RequiredEnvVars, 2)
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "db")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
}

func TestValidateEnvWithWarnings_MemoryInProd(t *testing.T) {
	clearValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "real-key")
	t.Setenv("ENVIRONMENT", "prod")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "STORAGE_BACKEND")
}
