package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/humidcore/internal/bridges/mqttbridge"
	"github.com/nerrad567/humidcore/internal/humidifier"
	"github.com/nerrad567/humidcore/internal/infrastructure/config"
	"github.com/nerrad567/humidcore/internal/infrastructure/logging"
	"github.com/nerrad567/humidcore/internal/infrastructure/mqtt"
	"github.com/nerrad567/humidcore/internal/infrastructure/prefs"
)

// writeTestConfig writes a config file for startup tests and points
// HUMIDCORE_CONFIG at it.
func writeTestConfig(t *testing.T, content string) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("HUMIDCORE_CONFIG", configPath)
}

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("HUMIDCORE_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDatabasePath verifies run fails when database path is empty.
func TestRun_MissingDatabasePath(t *testing.T) {
	writeTestConfig(t, `
site:
  id: test-site

database:
  path: ""
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: info
  format: text
  output: stdout
`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with empty database path")
	}
}

// TestRun_StartupAndShutdown tests full startup with MQTT and InfluxDB
// disabled, which needs no external services: entities are built from
// config, state is persisted, and the run ends cleanly on context
// timeout.
func TestRun_StartupAndShutdown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	writeTestConfig(t, `
site:
  id: test-site

database:
  path: "`+dbPath+`"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: info
  format: text
  output: stdout

humidifiers:
  - name: test-humidifier
    modes: [OFF, ON, AUTO]
    min_humidity: 30
    max_humidity: 70
    step: 5
`)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	// The initial publish must have persisted a restore record.
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

// TestRun_InvalidHumidifierMode verifies startup fails for an
// unrecognised mode name in config.
func TestRun_InvalidHumidifierMode(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	writeTestConfig(t, `
site:
  id: test-site

database:
  path: "`+dbPath+`"

mqtt:
  enabled: false

influxdb:
  enabled: false

humidifiers:
  - name: broken
    modes: [OFF, TURBO]
    min_humidity: 30
    max_humidity: 70
    step: 5
`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail for unrecognised mode name")
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("HUMIDCORE_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	expected := "/custom/path/config.yaml"
	t.Setenv("HUMIDCORE_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// captureBroker satisfies mqttbridge.Broker and snapshots the entity's
// state at the moment each subscription goes live.
type captureBroker struct {
	entity      *humidifier.Humidifier
	modeAtSub   map[string]humidifier.Mode
	targetAtSub map[string]float32
	handlers    map[string]mqtt.MessageHandler
	published   map[string][][]byte
}

func newCaptureBroker(entity *humidifier.Humidifier) *captureBroker {
	return &captureBroker{
		entity:      entity,
		modeAtSub:   make(map[string]humidifier.Mode),
		targetAtSub: make(map[string]float32),
		handlers:    make(map[string]mqtt.MessageHandler),
		published:   make(map[string][][]byte),
	}
}

func (b *captureBroker) PublishRetained(topic string, payload []byte) error {
	b.published[topic] = append(b.published[topic], payload)
	return nil
}

func (b *captureBroker) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	b.modeAtSub[topic] = b.entity.Mode
	b.targetAtSub[topic] = b.entity.TargetHumidity
	b.handlers[topic] = handler
	return nil
}

// TestWireHumidifier_RestoresBeforeSubscribing pins the startup order:
// the entity is lock-free, so its persisted state must be fully applied
// before the command subscription can deliver calls on another
// goroutine. The broker snapshot taken inside Subscribe must therefore
// already carry the restored values, and the publish after wiring must
// hand them to the bridge.
func TestWireHumidifier_RestoresBeforeSubscribing(t *testing.T) {
	store := prefs.NewMemoryStore()
	log := logging.Default()
	hcfg := config.HumidifierConfig{
		Name:        "bedroom",
		Modes:       []string{"OFF", "ON", "AUTO"},
		MinHumidity: 30,
		MaxHumidity: 70,
		Step:        5,
	}

	// Seed the store through a first entity, as a previous process run
	// would have.
	seed, _, err := buildHumidifier(hcfg, store, log)
	if err != nil {
		t.Fatalf("buildHumidifier() error = %v", err)
	}
	if err := seed.MakeCall().SetMode(humidifier.ModeAuto).SetTargetHumidity(55).Perform(); err != nil {
		t.Fatalf("Perform() error = %v", err)
	}

	// Fresh entity over the same store, wired as run() does.
	entity, driver, err := buildHumidifier(hcfg, store, log)
	if err != nil {
		t.Fatalf("buildHumidifier() error = %v", err)
	}
	broker := newCaptureBroker(entity)
	bridge, err := mqttbridge.NewBridge(mqttbridge.Options{Broker: broker, QoS: 1})
	if err != nil {
		t.Fatalf("NewBridge() error = %v", err)
	}

	if err := wireHumidifier(entity, driver, bridge, nil, log); err != nil {
		t.Fatalf("wireHumidifier() error = %v", err)
	}

	setTopic := "humidcore/humidifier/bedroom/set"
	if got := broker.modeAtSub[setTopic]; got != humidifier.ModeAuto {
		t.Errorf("mode when command topic went live = %v, want restored ModeAuto", got)
	}
	if got := broker.targetAtSub[setTopic]; got != 55 {
		t.Errorf("target when command topic went live = %v, want restored 55", got)
	}

	states := broker.published["humidcore/humidifier/bedroom/state"]
	if len(states) == 0 {
		t.Fatal("no state published after wiring")
	}
	if last := string(states[len(states)-1]); !strings.Contains(last, `"AUTO"`) {
		t.Errorf("published state %s does not carry the restored mode", last)
	}
}

// TestWireHumidifier_SensorFeedReachesDriver verifies a reading on the
// current-humidity topic lands in the entity and re-derives the action.
func TestWireHumidifier_SensorFeedReachesDriver(t *testing.T) {
	store := prefs.NewMemoryStore()
	log := logging.Default()
	entity, driver, err := buildHumidifier(config.HumidifierConfig{
		Name:        "bedroom",
		Modes:       []string{"OFF", "ON", "AUTO"},
		MinHumidity: 30,
		MaxHumidity: 70,
		Step:        5,
	}, store, log)
	if err != nil {
		t.Fatalf("buildHumidifier() error = %v", err)
	}

	broker := newCaptureBroker(entity)
	bridge, err := mqttbridge.NewBridge(mqttbridge.Options{Broker: broker, QoS: 1})
	if err != nil {
		t.Fatalf("NewBridge() error = %v", err)
	}
	if err := wireHumidifier(entity, driver, bridge, nil, log); err != nil {
		t.Fatalf("wireHumidifier() error = %v", err)
	}

	if err := entity.MakeCall().SetMode(humidifier.ModeAuto).SetTargetHumidity(55).Perform(); err != nil {
		t.Fatalf("Perform() error = %v", err)
	}

	currentTopic := "humidcore/humidifier/bedroom/current"
	handler, ok := broker.handlers[currentTopic]
	if !ok {
		t.Fatalf("no subscription for %q", currentTopic)
	}
	if err := handler(currentTopic, []byte("40")); err != nil {
		t.Fatalf("sensor handler error = %v", err)
	}

	if entity.CurrentHumidity != 40 {
		t.Errorf("CurrentHumidity = %v, want 40", entity.CurrentHumidity)
	}
	if entity.Action != humidifier.ActionHumidifying {
		t.Errorf("Action = %v, want ActionHumidifying below target", entity.Action)
	}
}
