package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saaga0h/jeeves-rgb/internal/light"
	"github.com/saaga0h/jeeves-rgb/pkg/config"
	"github.com/saaga0h/jeeves-rgb/pkg/health"
	"github.com/saaga0h/jeeves-rgb/pkg/mqtt"
	"github.com/saaga0h/jeeves-rgb/pkg/redis"
)

func main() {
	// Load configuration with hierarchy: defaults → env → flags
	cfg := config.NewConfig()
	cfg.ServiceName = "rgb-light-agent"
	cfg.LoadFromEnv()
	cfg.LoadFromFlags()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("Starting J.E.E.V.E.S. RGB Light Agent",
		"version", "1.0",
		"service_name", cfg.ServiceName,
		"mqtt_broker", cfg.MQTTAddress(),
		"redis_host", cfg.RedisAddress(),
		"latitude", cfg.Latitude,
		"longitude", cfg.Longitude,
		"log_level", cfg.LogLevel)

	var schedule *light.Schedule
	if cfg.ScheduleFile != "" {
		var err error
		schedule, err = light.LoadSchedule(cfg.ScheduleFile)
		if err != nil {
			logger.Error("Failed to load schedule", "file", cfg.ScheduleFile, "error", err)
			os.Exit(1)
		}
		logger.Info("Loaded color temperature schedule",
			"file", cfg.ScheduleFile,
			"locations", len(schedule.Locations))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	mqttClient := mqtt.NewClient(cfg, logger)
	redisClient := redis.NewClient(cfg, logger)

	agent := light.NewAgent(mqttClient, redisClient, cfg, schedule, logger)

	healthChecker := health.NewChecker(mqttClient, redisClient, agent, logger)
	httpServer := startHealthServer(cfg.HealthPort, healthChecker, logger)

	agentErr := make(chan error, 1)
	go func() {
		if err := agent.Start(ctx); err != nil {
			logger.Error("Agent error", "error", err)
			agentErr <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received (SIGTERM/SIGINT)")
	case err := <-agentErr:
		logger.Error("Agent failed", "error", err)
	}

	logger.Info("Initiating graceful shutdown")
	cancel()

	if err := agent.Stop(); err != nil {
		logger.Error("Error stopping agent", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down health server", "error", err)
	}

	logger.Info("RGB light agent shutdown complete")
}

func startHealthServer(port int, checker *health.Checker, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.HandlerFunc())
	mux.HandleFunc("/health/detailed", checker.DetailedHandlerFunc())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		logger.Info("Starting health check server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Health server error", "error", err)
		}
	}()

	return server
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
