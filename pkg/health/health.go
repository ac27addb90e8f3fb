package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/saaga0h/jeeves-rgb/pkg/mqtt"
	"github.com/saaga0h/jeeves-rgb/pkg/redis"
)

// StatsProvider exposes agent counters for the detailed health endpoint
type StatsProvider interface {
	GetLocationCount() int
}

// Checker provides health check functionality for agents
type Checker struct {
	mqtt   mqtt.Client
	redis  redis.Client
	stats  StatsProvider
	logger *slog.Logger
}

// NewChecker creates a new health checker with the given dependencies.
// stats may be nil.
func NewChecker(mqttClient mqtt.Client, redisClient redis.Client, stats StatsProvider, logger *slog.Logger) *Checker {
	return &Checker{
		mqtt:   mqttClient,
		redis:  redisClient,
		stats:  stats,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
	Services  *Services `json:"services,omitempty"`
	Locations *int      `json:"locations,omitempty"`
}

// Services represents the status of external dependencies
type Services struct {
	Redis string `json:"redis"`
	MQTT  string `json:"mqtt"`
}

// HandlerFunc returns a liveness handler that does not touch dependencies
func (h *Checker) HandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.write(w, http.StatusOK, HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

// DetailedHandlerFunc returns a handler that checks MQTT and pings Redis
func (h *Checker) DetailedHandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := &Services{
			Redis: "disconnected",
			MQTT:  "disconnected",
		}

		if h.mqtt != nil && h.mqtt.IsConnected() {
			services.MQTT = "connected"
		}

		if h.redis != nil {
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			if err := h.redis.Ping(ctx); err == nil {
				services.Redis = "connected"
			} else {
				h.logger.Warn("Redis health ping failed", "error", err)
			}
			cancel()
		}

		status := "healthy"
		statusCode := http.StatusOK
		if services.Redis == "disconnected" || services.MQTT == "disconnected" {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Services:  services,
		}
		if h.stats != nil {
			count := h.stats.GetLocationCount()
			response.Locations = &count
		}

		h.write(w, statusCode, response)
	}
}

func (h *Checker) write(w http.ResponseWriter, statusCode int, response HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode health response", "error", err)
	}
}
