package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8084", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 0, cfg.MaxPageLimit)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SEED_FILE", "/data/seed.json")
	t.Setenv("MAX_PAGE_LIMIT", "100")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "/data/seed.json", cfg.SeedFile)
	assert.Equal(t, 100, cfg.MaxPageLimit)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown driver", key: "STORE_DRIVER", value: "mongo"},
		{name: "negative page limit", key: "MAX_PAGE_LIMIT", value: "-1"},
		{name: "zero cache ttl", key: "CACHE_TTL", value: "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
