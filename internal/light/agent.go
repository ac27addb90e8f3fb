package light

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saaga0h/jeeves-rgb/pkg/config"
	"github.com/saaga0h/jeeves-rgb/pkg/mqtt"
	"github.com/saaga0h/jeeves-rgb/pkg/redis"
)

// LocationContext tracks the latest lighting decision for a location
type LocationContext struct {
	Command       LightCommand
	LastPublished *RGBCommand
	LastUpdate    time.Time
}

// Agent translates Kelvin based lighting commands into RGB commands
type Agent struct {
	mqtt     mqtt.Client
	redis    redis.Client
	cfg      *config.Config
	logger   *slog.Logger
	resolver *KelvinResolver
	state    *StateStore

	contextMux       sync.RWMutex
	locationContexts map[string]*LocationContext

	// Serializes command processing per location
	locationLocks map[string]*sync.Mutex

	rateLimiter *RateLimiter
	now         func() time.Time

	// Periodic refresh loop
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewAgent creates a new RGB light agent. schedule may be nil.
func NewAgent(mqttClient mqtt.Client, redisClient redis.Client, cfg *config.Config, schedule *Schedule, logger *slog.Logger) *Agent {
	return &Agent{
		mqtt:             mqttClient,
		redis:            redisClient,
		cfg:              cfg,
		logger:           logger,
		resolver:         NewKelvinResolver(schedule, cfg.Latitude, cfg.Longitude),
		state:            NewStateStore(redisClient, time.Duration(cfg.ColorStateTTLMinutes)*time.Minute),
		locationContexts: make(map[string]*LocationContext),
		locationLocks:    make(map[string]*sync.Mutex),
		rateLimiter:      NewRateLimiter(cfg.MinPublishIntervalMs),
		now:              time.Now,
		stopChan:         make(chan struct{}),
	}
}

// Start connects, subscribes and blocks until ctx is cancelled
func (a *Agent) Start(ctx context.Context) error {
	a.logger.Info("Starting RGB light agent",
		"service_name", a.cfg.ServiceName,
		"min_publish_interval_ms", a.cfg.MinPublishIntervalMs,
		"refresh_interval_sec", a.cfg.RefreshIntervalSec,
		"color_state_ttl_minutes", a.cfg.ColorStateTTLMinutes)

	if err := a.mqtt.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MQTT: %w", err)
	}

	if err := a.redis.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}

	if err := a.mqtt.Subscribe(mqtt.TopicLightCommands, 0, a.handleLightCommand); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", mqtt.TopicLightCommands, err)
	}
	a.logger.Info("Subscribed to light commands", "topic", mqtt.TopicLightCommands)

	a.startRefreshLoop(ctx)

	a.logger.Info("RGB light agent started and ready")

	<-ctx.Done()
	a.logger.Info("RGB light agent stopping")

	return nil
}

// Stop gracefully stops the agent
func (a *Agent) Stop() error {
	a.logger.Info("Stopping RGB light agent")

	a.stopOnce.Do(func() { close(a.stopChan) })

	a.mqtt.Disconnect()

	if err := a.redis.Close(); err != nil {
		a.logger.Error("Error closing Redis connection", "error", err)
		return err
	}

	a.logger.Info("RGB light agent stopped")
	return nil
}

// startRefreshLoop periodically re-resolves color temperatures that were
// not fixed by the incoming command, so lights follow the sun and schedule
func (a *Agent) startRefreshLoop(ctx context.Context) {
	if a.cfg.RefreshIntervalSec <= 0 {
		a.logger.Info("Refresh loop disabled")
		return
	}

	interval := time.Duration(a.cfg.RefreshIntervalSec) * time.Second

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		a.logger.Info("Starting refresh loop", "interval_sec", a.cfg.RefreshIntervalSec)
		for {
			select {
			case <-ticker.C:
				a.refreshLocations(ctx)
			case <-ctx.Done():
				return
			case <-a.stopChan:
				return
			}
		}
	}()
}

// refreshLocations re-evaluates every "on" location without a commanded color temperature
func (a *Agent) refreshLocations(ctx context.Context) {
	a.contextMux.RLock()
	locations := make([]string, 0, len(a.locationContexts))
	for location := range a.locationContexts {
		locations = append(locations, location)
	}
	a.contextMux.RUnlock()

	a.logger.Debug("Refreshing locations", "location_count", len(locations))

	for _, location := range locations {
		if ctx.Err() != nil {
			return
		}
		a.refreshLocation(ctx, location)
	}
}

// refreshLocation re-resolves one location under its lock, using the command
// current at that moment. A command received since the loop started wins.
func (a *Agent) refreshLocation(ctx context.Context, location string) *RGBCommand {
	lock := a.locationLock(location)
	lock.Lock()
	defer lock.Unlock()

	a.contextMux.RLock()
	lc, exists := a.locationContexts[location]
	var cmd LightCommand
	if exists {
		cmd = lc.Command
	}
	a.contextMux.RUnlock()

	if !exists || cmd.Action != "on" || commandedColorTemp(cmd) != 0 {
		return nil
	}

	return a.processCommand(ctx, location, cmd)
}

// locationLock returns the mutex serializing work for a location
func (a *Agent) locationLock(location string) *sync.Mutex {
	a.contextMux.Lock()
	defer a.contextMux.Unlock()

	lock, exists := a.locationLocks[location]
	if !exists {
		lock = &sync.Mutex{}
		a.locationLocks[location] = lock
	}
	return lock
}

// handleLightCommand handles automation/command/light/{location} messages
func (a *Agent) handleLightCommand(msg mqtt.Message) {
	topic := msg.Topic()

	location, ok := mqtt.LocationFromTopic(topic)
	if !ok {
		a.logger.Warn("Invalid light command topic format", "topic", topic)
		return
	}

	var cmd LightCommand
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		a.logger.Error("Failed to parse light command",
			"location", location,
			"error", err)
		return
	}

	a.logger.Debug("Received light command",
		"location", location,
		"action", cmd.Action,
		"brightness", cmd.Brightness,
		"color_temp", commandedColorTemp(cmd))

	if cmd.Action != "on" && cmd.Action != "off" {
		a.logger.Debug("Ignoring light command",
			"location", location,
			"action", cmd.Action)
		return
	}

	lock := a.locationLock(location)
	lock.Lock()
	defer lock.Unlock()

	a.contextMux.Lock()
	lc, exists := a.locationContexts[location]
	if !exists {
		lc = &LocationContext{}
		a.locationContexts[location] = lc
	}
	lc.Command = cmd
	lc.LastUpdate = a.now()
	a.contextMux.Unlock()

	a.processCommand(context.Background(), location, cmd)
}

// processCommand resolves the color, applies dedupe and rate limiting and
// publishes. Callers hold the location lock.
func (a *Agent) processCommand(ctx context.Context, location string, cmd LightCommand) *RGBCommand {
	now := a.now()

	colorTemp, source := 0, ""
	if cmd.Action == "on" {
		colorTemp, source = a.resolver.Resolve(location, commandedColorTemp(cmd), now)
	}
	rgb := BuildRGBCommand(cmd, colorTemp, source, now)

	prev, err := a.state.Load(ctx, location)
	if err != nil {
		a.logger.Warn("Failed to load color state, publishing anyway",
			"location", location,
			"error", err)
	}

	switch shouldPublish(prev, rgb) {
	case publishSkip:
		a.logger.Debug("Color unchanged, skipping publish",
			"location", location,
			"hex", rgb.Hex)
		return nil
	case publishLimited:
		if !a.rateLimiter.Allow(location) {
			a.logger.Debug("Rate limited, skipping publish",
				"location", location,
				"min_interval_ms", a.cfg.MinPublishIntervalMs)
			return nil
		}
	case publishForce:
		a.rateLimiter.Record(location)
	}

	if err := a.publishRGBCommand(location, rgb); err != nil {
		a.logger.Error("Failed to publish RGB command",
			"location", location,
			"error", err)
		return nil
	}

	if err := a.state.Save(ctx, location, rgb); err != nil {
		a.logger.Error("Failed to store color state",
			"location", location,
			"error", err)
	}

	a.contextMux.Lock()
	if lc, ok := a.locationContexts[location]; ok {
		lc.LastPublished = rgb
	}
	a.contextMux.Unlock()

	a.logger.Info("RGB command published",
		"location", location,
		"action", rgb.Action,
		"hex", rgb.Hex,
		"kelvin", rgb.Kelvin,
		"kelvin_source", rgb.KelvinSource,
		"brightness", rgb.Brightness)

	return rgb
}

type publishDecision int

const (
	publishForce publishDecision = iota
	publishLimited
	publishSkip
)

// shouldPublish compares the new command with the stored state. Action and
// color temperature changes are published immediately, identical colors are
// dropped and brightness-only changes go through the rate limiter.
func shouldPublish(prev *ColorState, next *RGBCommand) publishDecision {
	if prev == nil {
		return publishForce
	}
	if prev.Action != next.Action || prev.Kelvin != next.Kelvin {
		return publishForce
	}
	if prev.Hex == next.Hex {
		return publishSkip
	}
	return publishLimited
}

// publishRGBCommand publishes both command and context messages
func (a *Agent) publishRGBCommand(location string, rgb *RGBCommand) error {
	commandTopic := mqtt.RGBCommandTopic(location)
	commandPayload, err := json.Marshal(rgb)
	if err != nil {
		return fmt.Errorf("failed to marshal command message: %w", err)
	}

	if err := a.mqtt.Publish(commandTopic, 0, false, commandPayload); err != nil {
		return fmt.Errorf("failed to publish command to %s: %w", commandTopic, err)
	}

	a.logger.Debug("Published RGB command", "topic", commandTopic)

	contextMsg := map[string]interface{}{
		"source":     "rgb-light-agent",
		"type":       "rgb_lighting",
		"location":   location,
		"state":      rgb.Action,
		"command_id": rgb.CommandID,
		"rgb":        []uint8{rgb.R, rgb.G, rgb.B},
		"hex":        rgb.Hex,
		"brightness": rgb.Brightness,
		"timestamp":  rgb.Timestamp,
	}

	if rgb.Kelvin > 0 {
		contextMsg["kelvin"] = rgb.Kelvin
		contextMsg["kelvin_source"] = rgb.KelvinSource
	} else {
		contextMsg["kelvin"] = nil
	}

	contextTopic := mqtt.RGBContextTopic(location)
	contextPayload, err := json.Marshal(contextMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal context message: %w", err)
	}

	// Retained so late subscribers see the current color
	if err := a.mqtt.Publish(contextTopic, 0, true, contextPayload); err != nil {
		return fmt.Errorf("failed to publish context to %s: %w", contextTopic, err)
	}

	a.logger.Debug("Published RGB context", "topic", contextTopic)

	return nil
}

// GetLocationCount returns the number of tracked locations (for health check)
func (a *Agent) GetLocationCount() int {
	a.contextMux.RLock()
	defer a.contextMux.RUnlock()
	return len(a.locationContexts)
}

// GetLocationContext returns a copy of the context for a specific location
func (a *Agent) GetLocationContext(location string) (LocationContext, bool) {
	a.contextMux.RLock()
	defer a.contextMux.RUnlock()
	lc, exists := a.locationContexts[location]
	if !exists {
		return LocationContext{}, false
	}
	return *lc, true
}

func commandedColorTemp(cmd LightCommand) int {
	if cmd.ColorTemp == nil {
		return 0
	}
	return *cmd.ColorTemp
}
