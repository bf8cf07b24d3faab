package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset uses default", "", 42},
		{"valid integer", "100", 100},
		{"invalid integer", "not-a-number", 42},
		{"negative", "-10", -10},
		{"zero", "0", 0},
		{"float", "42.5", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsInt64(t *testing.T) {
	t.Setenv("TEST_INT64_VAR", "9000000000")
	assert.Equal(t, int64(9_000_000_000), getEnvAsInt64("TEST_INT64_VAR", 1))

	t.Setenv("TEST_INT64_VAR", "lots")
	assert.Equal(t, int64(1), getEnvAsInt64("TEST_INT64_VAR", 1))
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"empty uses default", "", 5 * time.Minute},
		{"minutes", "10m", 10 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"compound", "1h30m45s", time.Hour + 30*time.Minute + 45*time.Second},
		{"milliseconds", "500ms", 500 * time.Millisecond},
		{"invalid", "not-a-duration", 5 * time.Minute},
		{"number without unit", "100", 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		})
	}
}

func TestGetEnvAsList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty disables", "", nil},
		{"single", "kafka:9092", []string{"kafka:9092"}},
		{"trims and drops blanks", " a:9092, ,b:9092 ,", []string{"a:9092", "b:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_LIST_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsList("TEST_LIST_VAR"))
		})
	}
}
