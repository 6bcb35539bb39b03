package mqttbridge

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/nerrad567/humidcore/internal/humidifier"
	"github.com/nerrad567/humidcore/internal/infrastructure/mqtt"
)

// Broker is the MQTT surface the bridge needs.
// Satisfied by *mqtt.Client; narrowed for mocking in tests.
type Broker interface {
	// PublishRetained publishes a retained message with the client's
	// default QoS.
	PublishRetained(topic string, payload []byte) error

	// Subscribe registers a handler for a topic pattern.
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Logger is the minimal logging surface for the bridge.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Bridge exposes humidifier entities over MQTT.
//
// For each attached entity it:
//   - publishes retained state JSON to humidcore/humidifier/{slug}/state
//     on every state change
//   - subscribes to humidcore/humidifier/{slug}/set and turns command
//     payloads into control calls
//   - optionally subscribes to humidcore/humidifier/{slug}/current and
//     feeds sensor readings to the driver (AttachSensor)
//
// The bridge consumes only the entity's public contract (calls and
// callbacks); it never reaches into driver or persistence internals.
type Bridge struct {
	broker Broker
	qos    byte
	logger Logger

	// entities maps topic slug to entity for command routing.
	entities map[string]*humidifier.Humidifier
	mu       sync.RWMutex
}

// Options holds configuration for creating a bridge.
type Options struct {
	// Broker is the MQTT client implementation.
	Broker Broker

	// QoS is the QoS level for command subscriptions.
	QoS byte

	// Logger is optional structured logger.
	Logger Logger
}

// NewBridge creates a new bridge instance.
// Attach entities with Attach; there is no separate start step.
func NewBridge(opts Options) (*Bridge, error) {
	if opts.Broker == nil {
		return nil, fmt.Errorf("broker is required")
	}

	return &Bridge{
		broker:   opts.Broker,
		qos:      opts.QoS,
		logger:   opts.Logger,
		entities: make(map[string]*humidifier.Humidifier),
	}, nil
}

// Attach wires an entity into the bridge.
//
// It registers a state callback publishing to the entity's state topic
// and subscribes to its command topic. The topic slug is derived from
// the entity name; two entities whose names collapse to the same slug
// cannot share a bridge.
//
// Attach the entity before any other goroutine can touch it: once the
// command subscription is live, calls arrive on the MQTT router
// goroutine and the entity itself is lock-free.
func (b *Bridge) Attach(h *humidifier.Humidifier) error {
	slug := Slugify(h.Name())
	if slug == "" {
		return fmt.Errorf("entity name %q produces an empty topic slug", h.Name())
	}

	b.mu.Lock()
	if _, exists := b.entities[slug]; exists {
		b.mu.Unlock()
		return fmt.Errorf("topic slug %q already attached", slug)
	}
	b.entities[slug] = h
	b.mu.Unlock()

	// The callback is guarded by the routing table rather than
	// registered after Subscribe: the entity has no callback
	// de-registration, so a rolled-back Attach makes it inert instead
	// of leaving a publisher for an unattached entity.
	stateTopic := mqtt.Topics{}.HumidifierState(slug)
	h.AddOnStateCallback(func(h *humidifier.Humidifier) {
		if !b.attached(slug, h) {
			return
		}
		b.publishState(stateTopic, h)
	})

	setTopic := mqtt.Topics{}.HumidifierSet(slug)
	if err := b.broker.Subscribe(setTopic, b.qos, b.handleCommand); err != nil {
		b.mu.Lock()
		delete(b.entities, slug)
		b.mu.Unlock()
		return fmt.Errorf("subscribe to %s: %w", setTopic, err)
	}

	b.logInfo("humidifier attached",
		"humidifier", h.Name(),
		"state_topic", stateTopic,
		"set_topic", setTopic,
	)
	return nil
}

// attached reports whether the slug still routes to this entity.
func (b *Bridge) attached(slug string, h *humidifier.Humidifier) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.entities[slug] == h
}

// HumiditySensor accepts measured-humidity readings for a device.
// Satisfied by drivers whose sensor reports over MQTT rather than
// local hardware (drivers/generic).
type HumiditySensor interface {
	SetCurrentHumidity(value float32)
}

// AttachSensor subscribes the named entity's current-humidity topic and
// feeds each reading to the sensor. Payloads are bare numbers ("47.5");
// an unparseable payload is reported back to the MQTT client, which
// logs and drops it.
func (b *Bridge) AttachSensor(name string, sensor HumiditySensor) error {
	slug := Slugify(name)
	if slug == "" {
		return fmt.Errorf("entity name %q produces an empty topic slug", name)
	}

	topic := mqtt.Topics{}.HumidifierCurrent(slug)
	handler := func(topic string, payload []byte) error {
		value, err := strconv.ParseFloat(strings.TrimSpace(string(payload)), 32)
		if err != nil {
			return fmt.Errorf("parsing humidity reading for %q: %w", slug, err)
		}
		sensor.SetCurrentHumidity(float32(value))
		return nil
	}
	if err := b.broker.Subscribe(topic, b.qos, handler); err != nil {
		return fmt.Errorf("subscribe to %s: %w", topic, err)
	}

	b.logInfo("humidity sensor attached", "humidifier", name, "current_topic", topic)
	return nil
}

// publishState publishes the entity's state as retained JSON.
func (b *Bridge) publishState(topic string, h *humidifier.Humidifier) {
	payload, err := encodeState(h)
	if err != nil {
		b.logError("encoding humidifier state failed", err, "humidifier", h.Name())
		return
	}
	if err := b.broker.PublishRetained(topic, payload); err != nil {
		b.logError("publishing humidifier state failed", err, "topic", topic)
	}
}

// handleCommand parses a command payload and performs the resulting call.
func (b *Bridge) handleCommand(topic string, payload []byte) error {
	slug, ok := mqtt.Topics{}.HumidifierSlug(topic)
	if !ok {
		return fmt.Errorf("unrecognised command topic %q", topic)
	}

	b.mu.RLock()
	h, exists := b.entities[slug]
	b.mu.RUnlock()
	if !exists {
		return fmt.Errorf("no humidifier attached for slug %q", slug)
	}

	cmd, err := decodeCommand(payload)
	if err != nil {
		return fmt.Errorf("parsing command for %q: %w", slug, err)
	}

	call := h.MakeCall()
	if cmd.Mode != nil {
		call.SetModeName(*cmd.Mode)
	}
	if cmd.TargetHumidity != nil {
		call.SetTargetHumidity(float32(*cmd.TargetHumidity))
	}
	return call.Perform()
}

func (b *Bridge) logInfo(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

func (b *Bridge) logError(msg string, err error, args ...any) {
	if b.logger != nil {
		b.logger.Error(msg, append([]any{"error", err}, args...)...)
	}
}
