package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedEnabledFlag(t *testing.T) {
	t.Run("defaults to enabled", func(t *testing.T) {
		assert.True(t, getEnvAsBool("SEED_ENABLED", true))
	})

	t.Run("disabled via env", func(t *testing.T) {
		t.Setenv("SEED_ENABLED", "false")
		assert.False(t, getEnvAsBool("SEED_ENABLED", true))
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Setenv("SEED_ENABLED", "FALSE")
		assert.False(t, getEnvAsBool("SEED_ENABLED", true))
	})

	t.Run("garbage falls back to default", func(t *testing.T) {
		t.Setenv("SEED_ENABLED", "not-a-bool")
		assert.True(t, getEnvAsBool("SEED_ENABLED", true))
	})
}
