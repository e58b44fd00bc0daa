package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "product-events", cfg.EventTopic)
	assert.Equal(t, "search-sync", cfg.SyncTopic)
	assert.Equal(t, 2*time.Second, cfg.Bridge.PollInterval)
	assert.Equal(t, 30, cfg.Bridge.MaxPollAttempts)
}

func TestLoad_BridgeOverrides(t *testing.T) {
	t.Setenv("BRIDGE_ENDPOINT", "https://bridge.internal")
	t.Setenv("BRIDGE_POLL_INTERVAL_MS", "500")
	t.Setenv("BRIDGE_MAX_POLL_ATTEMPTS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://bridge.internal", cfg.Bridge.Endpoint)
	assert.Equal(t, 500*time.Millisecond, cfg.Bridge.PollInterval)
	assert.Equal(t, 10, cfg.Bridge.MaxPollAttempts)
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("BRIDGE_MAX_POLL_ATTEMPTS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Bridge.MaxPollAttempts)
}
