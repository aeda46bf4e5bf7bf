package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	setRequired(t)
	t.Setenv("STORE_DRIVER", StoreDriverMemory)
	t.Setenv("CLOCK_SOURCE", ClockSourceChain)
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	setValidEnv(t)
	os.Unsetenv("ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	setValidEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	setValidEnv(t)
	os.Unsetenv("RPC_URL")
	os.Unsetenv("ITEMS1155_ADDRESS")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RPC_URL, ITEMS1155_ADDRESS")
}

func TestValidateEnv_PostgresNeedsDatabaseVars(t *testing.T) {
	setValidEnv(t)
	t.Setenv("STORE_DRIVER", StoreDriverPostgres)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")

	for _, key := range RequiredPostgresEnvVars {
		t.Setenv(key, "x")
	}
	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	setValidEnv(t)
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("CLOCK_SOURCE", ClockSourceWall)

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "API_KEY")
	assert.Contains(t, warnings[1], "CLOCK_SOURCE")
}

func TestValidateEnvWithWarnings_Clean(t *testing.T) {
	setValidEnv(t)

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	assert.Empty(t, warnings)
}
