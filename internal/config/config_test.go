package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	require.True(t, cfg.Enabled)
	require.True(t, cfg.Methods["GET"])
	require.False(t, cfg.Methods["POST"])
	require.Equal(t, 30*time.Second, cfg.TTL)
	require.Equal(t, "route_query", cfg.KeyStrategy)
	require.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestParseMethods(t *testing.T) {
	m := parseMethods(" get , head ,")
	require.True(t, m["GET"])
	require.True(t, m["HEAD"])
	require.Len(t, m, 2)
}

func TestLoadRateLimitConfigClampsInvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "-5")
	t.Setenv("RATE_LIMIT_WINDOW", "0s")

	cfg := LoadRateLimitConfig()
	require.Equal(t, 120, cfg.Limit)
	require.Equal(t, time.Minute, cfg.Window)
}
