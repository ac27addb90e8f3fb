package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaga0h/jeeves-rgb/pkg/mqtt"
)

type stubMQTT struct{ connected bool }

func (s *stubMQTT) Connect(ctx context.Context) error                          { return nil }
func (s *stubMQTT) Disconnect()                                                {}
func (s *stubMQTT) Subscribe(topic string, qos byte, h mqtt.MessageHandler) error { return nil }
func (s *stubMQTT) Publish(topic string, qos byte, retained bool, payload []byte) error {
	return nil
}
func (s *stubMQTT) IsConnected() bool { return s.connected }

type stubRedis struct{ pingErr error }

func (s *stubRedis) HSet(ctx context.Context, key string, values map[string]interface{}) error {
	return nil
}
func (s *stubRedis) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return map[string]string{}, nil
}
func (s *stubRedis) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }
func (s *stubRedis) Ping(ctx context.Context) error                                 { return s.pingErr }
func (s *stubRedis) Close() error                                                   { return nil }

type stubStats struct{ count int }

func (s stubStats) GetLocationCount() int { return s.count }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandlerFunc_AlwaysOK(t *testing.T) {
	checker := NewChecker(&stubMQTT{}, &stubRedis{pingErr: errors.New("down")}, nil, testLogger())

	rec := httptest.NewRecorder()
	checker.HandlerFunc()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Services)
}

func TestDetailedHandlerFunc_Healthy(t *testing.T) {
	checker := NewChecker(&stubMQTT{connected: true}, &stubRedis{}, stubStats{count: 3}, testLogger())

	rec := httptest.NewRecorder()
	checker.DetailedHandlerFunc()(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "connected", resp.Services.MQTT)
	assert.Equal(t, "connected", resp.Services.Redis)
	require.NotNil(t, resp.Locations)
	assert.Equal(t, 3, *resp.Locations)
}

func TestDetailedHandlerFunc_RedisDown(t *testing.T) {
	checker := NewChecker(&stubMQTT{connected: true}, &stubRedis{pingErr: errors.New("down")}, nil, testLogger())

	rec := httptest.NewRecorder()
	checker.DetailedHandlerFunc()(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "disconnected", resp.Services.Redis)
	assert.Nil(t, resp.Locations)
}
