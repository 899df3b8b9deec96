package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AIRPORTS", "ksfo, koak,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"KSFO", "KOAK"}, cfg.Airports)
	assert.Equal(t, 15*time.Minute, cfg.FetchInterval)
	assert.Equal(t, "fourtier", cfg.Scheme.Name())
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Hour, cfg.HistoryStep)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AIRPORTS", "EDDF")
	t.Setenv("FETCH_INTERVAL", "30m")
	t.Setenv("CLASSIFY_SCHEME", "twotier")
	t.Setenv("HISTORY_STEP", "30m")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.FetchInterval)
	assert.Equal(t, "twotier", cfg.Scheme.Name())
	assert.Equal(t, 30*time.Minute, cfg.HistoryStep)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadRequiresAirports(t *testing.T) {
	t.Setenv("AIRPORTS", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownScheme(t *testing.T) {
	t.Setenv("AIRPORTS", "KSFO")
	t.Setenv("CLASSIFY_SCHEME", "pentatier")
	_, err := Load()
	assert.Error(t, err)
}
