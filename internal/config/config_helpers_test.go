package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestGetEnvAsInt tests the getEnvAsInt helper function
func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{"unset returns default", "", false, 42},
		{"valid integer", "100", true, 100},
		{"invalid integer falls back", "not-a-number", true, 42},
		{"negative", "-10", true, -10},
		{"zero", "0", true, 0},
		{"float falls back", "42.5", true, 42},
		{"empty falls back", "", true, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_VAR", tt.value)
			if !tt.set {
				os.Unsetenv("TEST_INT_VAR")
			}
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

// TestGetEnvAsDuration tests the getEnvAsDuration helper function
func TestGetEnvAsDuration(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "")
		os.Unsetenv("TEST_DURATION_VAR")
		assert.Equal(t, 4*time.Second, getEnvAsDuration("TEST_DURATION_VAR", 4*time.Second))
	})

	t.Run("parses go duration syntax", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "1m30s")
		assert.Equal(t, 90*time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Second))
	})

	t.Run("bare numbers are not durations", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "30")
		assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Second))
	})
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL_VAR", "false")
	assert.False(t, getEnvAsBool("TEST_BOOL_VAR", true))

	t.Setenv("TEST_BOOL_VAR", "1")
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", false))

	t.Setenv("TEST_BOOL_VAR", "maybe")
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STR_VAR", "")
	assert.Equal(t, "", getEnv("TEST_STR_VAR", "fallback"), "set but empty is respected")

	os.Unsetenv("TEST_STR_VAR")
	assert.Equal(t, "fallback", getEnv("TEST_STR_VAR", "fallback"))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , ,"))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, splitList("10.0.0.1, 10.0.0.2,"))
}
