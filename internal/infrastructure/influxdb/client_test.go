package influxdb

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/humidcore/internal/infrastructure/config"
)

func TestConnectDisabled(t *testing.T) {
	cfg := config.InfluxDBConfig{Enabled: false}

	_, err := Connect(cfg)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}

	if err := client.Close(); err != nil {
		t.Errorf("Close() on uninitialised client error = %v, want nil", err)
	}
}

func TestIsConnectedInitialState(t *testing.T) {
	client := &Client{}

	if client.IsConnected() {
		t.Error("IsConnected() should be false for uninitialised client")
	}
}

func TestFlushDisconnected(t *testing.T) {
	client := &Client{}

	// Must not panic with no write API configured.
	client.Flush()
}

func TestWriteDisconnected(t *testing.T) {
	client := &Client{}

	// Writes on a disconnected client are silently dropped.
	client.WriteHumidityMetric("bedroom", "current_humidity", 42.5)
	client.WriteRunState("bedroom", "AUTO", "HUMIDIFYING")
	client.WritePoint("custom", nil, map[string]interface{}{"v": 1})
}

func TestHealthCheckDisconnected(t *testing.T) {
	client := &Client{}

	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}
