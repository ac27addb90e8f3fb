package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// Config holds the configuration for a J.E.E.V.E.S. RGB light agent
type Config struct {
	// MQTT configuration
	MQTTBroker   string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTClientID string

	// Redis configuration
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	// Service configuration
	ServiceName string
	HealthPort  int
	LogLevel    string

	// Location used for sun position
	Latitude  float64
	Longitude float64

	// RGB light agent configuration
	MinPublishIntervalMs int
	RefreshIntervalSec   int
	ColorStateTTLMinutes int
	ScheduleFile         string
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		MQTTBroker:    "localhost",
		MQTTPort:      1883,
		MQTTUser:      "",
		MQTTPassword:  "",
		MQTTClientID:  "",
		RedisHost:     "localhost",
		RedisPort:     6379,
		RedisPassword: "",
		RedisDB:       0,
		ServiceName:   "jeeves-agent",
		HealthPort:    8080,
		LogLevel:      "info",
		// Helsinki coordinates
		Latitude:  60.1695,
		Longitude: 24.9354,
		// RGB light agent defaults
		MinPublishIntervalMs: 2000,
		RefreshIntervalSec:   300,
		ColorStateTTLMinutes: 60,
		ScheduleFile:         "",
	}
}

// LoadFromEnv loads configuration from environment variables with JEEVES_ prefix
func (c *Config) LoadFromEnv() {
	// MQTT configuration
	if v := os.Getenv("JEEVES_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("JEEVES_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MQTTPort = port
		}
	}
	if v := os.Getenv("JEEVES_MQTT_USER"); v != "" {
		c.MQTTUser = v
	}
	if v := os.Getenv("JEEVES_MQTT_PASSWORD"); v != "" {
		c.MQTTPassword = v
	}
	if v := os.Getenv("JEEVES_MQTT_CLIENT_ID"); v != "" {
		c.MQTTClientID = v
	}

	// Redis configuration
	if v := os.Getenv("JEEVES_REDIS_HOST"); v != "" {
		c.RedisHost = v
	}
	if v := os.Getenv("JEEVES_REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.RedisPort = port
		}
	}
	if v := os.Getenv("JEEVES_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("JEEVES_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.RedisDB = db
		}
	}

	// Service configuration
	if v := os.Getenv("JEEVES_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("JEEVES_HEALTH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HealthPort = port
		}
	}
	if v := os.Getenv("JEEVES_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	// Location
	if v := os.Getenv("JEEVES_LATITUDE"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			c.Latitude = lat
		}
	}
	if v := os.Getenv("JEEVES_LONGITUDE"); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			c.Longitude = lon
		}
	}

	// RGB light agent configuration
	if v := os.Getenv("JEEVES_MIN_PUBLISH_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.MinPublishIntervalMs = ms
		}
	}
	if v := os.Getenv("JEEVES_REFRESH_INTERVAL_SEC"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil {
			c.RefreshIntervalSec = interval
		}
	}
	if v := os.Getenv("JEEVES_COLOR_STATE_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			c.ColorStateTTLMinutes = minutes
		}
	}
	if v := os.Getenv("JEEVES_SCHEDULE_FILE"); v != "" {
		c.ScheduleFile = v
	}
}

// LoadFromFlags parses command-line flags and overrides config values
func (c *Config) LoadFromFlags() {
	c.RegisterFlags(pflag.CommandLine)
	pflag.Parse()
}

// RegisterFlags binds all config fields to the given flag set
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	// MQTT flags
	fs.StringVar(&c.MQTTBroker, "mqtt-broker", c.MQTTBroker, "MQTT broker hostname")
	fs.IntVar(&c.MQTTPort, "mqtt-port", c.MQTTPort, "MQTT broker port")
	fs.StringVar(&c.MQTTUser, "mqtt-user", c.MQTTUser, "MQTT username")
	fs.StringVar(&c.MQTTPassword, "mqtt-password", c.MQTTPassword, "MQTT password")
	fs.StringVar(&c.MQTTClientID, "mqtt-client-id", c.MQTTClientID, "MQTT client ID")

	// Redis flags
	fs.StringVar(&c.RedisHost, "redis-host", c.RedisHost, "Redis hostname")
	fs.IntVar(&c.RedisPort, "redis-port", c.RedisPort, "Redis port")
	fs.StringVar(&c.RedisPassword, "redis-password", c.RedisPassword, "Redis password")
	fs.IntVar(&c.RedisDB, "redis-db", c.RedisDB, "Redis database number")

	// Service flags
	fs.StringVar(&c.ServiceName, "service-name", c.ServiceName, "Service name")
	fs.IntVar(&c.HealthPort, "health-port", c.HealthPort, "Health check HTTP port")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")

	// Location flags
	fs.Float64Var(&c.Latitude, "latitude", c.Latitude, "Geographic latitude for sun position")
	fs.Float64Var(&c.Longitude, "longitude", c.Longitude, "Geographic longitude for sun position")

	// RGB light agent flags
	fs.IntVar(&c.MinPublishIntervalMs, "min-publish-interval-ms", c.MinPublishIntervalMs, "Minimum time between RGB commands per location (ms)")
	fs.IntVar(&c.RefreshIntervalSec, "refresh-interval", c.RefreshIntervalSec, "Color refresh interval in seconds (0 disables)")
	fs.IntVar(&c.ColorStateTTLMinutes, "color-state-ttl-minutes", c.ColorStateTTLMinutes, "TTL of cached color state in Redis (minutes)")
	fs.StringVar(&c.ScheduleFile, "schedule-file", c.ScheduleFile, "YAML file with per-location color temperature schedule")
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT broker is required")
	}
	if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
		return fmt.Errorf("MQTT port must be between 1 and 65535")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("Redis host is required")
	}
	if c.RedisPort <= 0 || c.RedisPort > 65535 {
		return fmt.Errorf("Redis port must be between 1 and 65535")
	}
	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("Health port must be between 1 and 65535")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("Service name is required")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if c.MinPublishIntervalMs < 0 {
		return fmt.Errorf("min publish interval must not be negative")
	}
	if c.RefreshIntervalSec < 0 {
		return fmt.Errorf("refresh interval must not be negative")
	}
	if c.ColorStateTTLMinutes <= 0 {
		return fmt.Errorf("color state TTL must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// MQTTAddress returns the full MQTT broker address
func (c *Config) MQTTAddress() string {
	return fmt.Sprintf("tcp://%s:%d", c.MQTTBroker, c.MQTTPort)
}

// RedisAddress returns the full Redis address
func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
