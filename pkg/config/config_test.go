package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultsAreValid(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTAddress())
	assert.Equal(t, "localhost:6379", cfg.RedisAddress())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JEEVES_MQTT_BROKER", "mosquitto")
	t.Setenv("JEEVES_REDIS_PORT", "6380")
	t.Setenv("JEEVES_LATITUDE", "51.5")
	t.Setenv("JEEVES_MIN_PUBLISH_INTERVAL_MS", "500")
	t.Setenv("JEEVES_SCHEDULE_FILE", "/etc/jeeves/schedule.yaml")
	t.Setenv("JEEVES_COLOR_STATE_TTL_MINUTES", "not-a-number")

	cfg := NewConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, "mosquitto", cfg.MQTTBroker)
	assert.Equal(t, 6380, cfg.RedisPort)
	assert.Equal(t, 51.5, cfg.Latitude)
	assert.Equal(t, 500, cfg.MinPublishIntervalMs)
	assert.Equal(t, "/etc/jeeves/schedule.yaml", cfg.ScheduleFile)
	// Unparseable values keep the default
	assert.Equal(t, 60, cfg.ColorStateTTLMinutes)
}

func TestRegisterFlags_OverridesDefaults(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)

	err := fs.Parse([]string{"--mqtt-port=8883", "--log-level=debug", "--schedule-file=s.yaml"})
	require.NoError(t, err)

	assert.Equal(t, 8883, cfg.MQTTPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "s.yaml", cfg.ScheduleFile)
}

func TestValidate_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty broker", func(c *Config) { c.MQTTBroker = "" }},
		{"bad mqtt port", func(c *Config) { c.MQTTPort = 70000 }},
		{"bad redis port", func(c *Config) { c.RedisPort = 0 }},
		{"bad latitude", func(c *Config) { c.Latitude = 91 }},
		{"negative interval", func(c *Config) { c.MinPublishIntervalMs = -1 }},
		{"zero ttl", func(c *Config) { c.ColorStateTTLMinutes = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
