package common

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenvOrDefault(t *testing.T) {
	const key = "MDISPATCH_TEST_GETENV_OR_DEFAULT"

	os.Unsetenv(key)
	assert.Equal(t, "fallback", GetenvOrDefault(key, "fallback"))

	os.Setenv(key, "set")
	t.Cleanup(func() { os.Unsetenv(key) })
	assert.Equal(t, "set", GetenvOrDefault(key, "fallback"))

	os.Setenv(key, "   ")
	assert.Equal(t, "fallback", GetenvOrDefault(key, "fallback"), "whitespace-only should be treated as unset")
}

func TestGetenvBoolOrDefault(t *testing.T) {
	const key = "MDISPATCH_TEST_GETENV_BOOL"

	os.Unsetenv(key)
	assert.Equal(t, true, GetenvBoolOrDefault(key, true))

	os.Setenv(key, "false")
	t.Cleanup(func() { os.Unsetenv(key) })
	assert.Equal(t, false, GetenvBoolOrDefault(key, true))

	os.Setenv(key, "not-a-bool")
	assert.Equal(t, true, GetenvBoolOrDefault(key, true), "unparseable value falls back to default")
}

func TestGetenvIntOrDefault(t *testing.T) {
	const key = "MDISPATCH_TEST_GETENV_INT"

	os.Unsetenv(key)
	assert.Equal(t, int64(42), GetenvIntOrDefault(key, 42))

	os.Setenv(key, "7")
	t.Cleanup(func() { os.Unsetenv(key) })
	assert.Equal(t, int64(7), GetenvIntOrDefault(key, 42))

	os.Setenv(key, "not-an-int")
	assert.Equal(t, int64(42), GetenvIntOrDefault(key, 42))
}

func TestSetConfigFromEnvVars(t *testing.T) {
	type cfg struct {
		Name     string `env:"MDISPATCH_TEST_CFG_NAME"`
		Capacity int    `env:"MDISPATCH_TEST_CFG_CAPACITY"`
		Enabled  bool   `env:"MDISPATCH_TEST_CFG_ENABLED"`
	}

	os.Setenv("MDISPATCH_TEST_CFG_NAME", "gateway")
	os.Setenv("MDISPATCH_TEST_CFG_CAPACITY", "10")
	os.Setenv("MDISPATCH_TEST_CFG_ENABLED", "true")

	t.Cleanup(func() {
		os.Unsetenv("MDISPATCH_TEST_CFG_NAME")
		os.Unsetenv("MDISPATCH_TEST_CFG_CAPACITY")
		os.Unsetenv("MDISPATCH_TEST_CFG_ENABLED")
	})

	out := &cfg{}
	assert.NoError(t, SetConfigFromEnvVars(out))

	assert.Equal(t, "gateway", out.Name)
	assert.Equal(t, 10, out.Capacity)
	assert.True(t, out.Enabled)
}

func TestSetConfigFromEnvVars_RejectsNonPointer(t *testing.T) {
	type cfg struct{}

	err := SetConfigFromEnvVars(cfg{})
	assert.Error(t, err)
}
