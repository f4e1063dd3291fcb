package main

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationSetting(t *testing.T) {
	var testCases = []struct {
		description string
		value       string
		expect      time.Duration
		expectErr   bool
	}{
		{description: "bare number is seconds", value: "36000", expect: 36000 * time.Second},
		{description: "fractional seconds", value: "1.5", expect: 1500 * time.Millisecond},
		{description: "go duration", value: "10m", expect: 10 * time.Minute},
		{description: "flag rendering", value: "1h0m0s", expect: time.Hour},
		{description: "invalid", value: "forever", expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			viper.Set("test-duration", testCase.value)
			actual, err := durationSetting("test-duration")
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestLoadConfig_TimeoutFromEnv(t *testing.T) {
	t.Setenv("SWEEPER_TIMEOUT", "36000")
	t.Setenv("SWEEPER_KILL_GRACE", "2s")
	initConfig()

	config, err := loadConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 36000*time.Second, config.Supervisor.Timeout)
	assert.Equal(t, 2*time.Second, config.Supervisor.KillGrace)
}
