package mqtt

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// Topics Tests
// =============================================================================

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() string
		expected string
	}{
		{
			name: "HumidifierState",
			builder: func() string {
				return Topics{}.HumidifierState("bedroom")
			},
			expected: "humidcore/humidifier/bedroom/state",
		},
		{
			name: "HumidifierSet",
			builder: func() string {
				return Topics{}.HumidifierSet("bedroom")
			},
			expected: "humidcore/humidifier/bedroom/set",
		},
		{
			name: "HumidifierCurrent",
			builder: func() string {
				return Topics{}.HumidifierCurrent("bedroom")
			},
			expected: "humidcore/humidifier/bedroom/current",
		},
		{
			name: "SystemStatus",
			builder: func() string {
				return Topics{}.SystemStatus()
			},
			expected: "humidcore/system/status",
		},
		{
			name: "AllHumidifierSets",
			builder: func() string {
				return Topics{}.AllHumidifierSets()
			},
			expected: "humidcore/humidifier/+/set",
		},
		{
			name: "AllHumidifierStates",
			builder: func() string {
				return Topics{}.AllHumidifierStates()
			},
			expected: "humidcore/humidifier/+/state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder()
			if result != tt.expected {
				t.Errorf("%s() = %q, want %q", tt.name, result, tt.expected)
			}
		})
	}
}

func TestHumidifierSlug(t *testing.T) {
	tests := []struct {
		topic  string
		slug   string
		wantOK bool
	}{
		{"humidcore/humidifier/bedroom/set", "bedroom", true},
		{"humidcore/humidifier/bedroom/state", "bedroom", true},
		{"humidcore/humidifier/bedroom/current", "bedroom", true},
		{"humidcore/humidifier/green-house/set", "green-house", true},
		{"humidcore/humidifier/bedroom", "", false},
		{"humidcore/system/status", "", false},
		{"other/humidifier/bedroom/set", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		slug, ok := Topics{}.HumidifierSlug(tt.topic)
		if ok != tt.wantOK || slug != tt.slug {
			t.Errorf("HumidifierSlug(%q) = (%q, %v), want (%q, %v)",
				tt.topic, slug, ok, tt.slug, tt.wantOK)
		}
	}
}

// =============================================================================
// Status Payload Tests
// =============================================================================

func TestBuildOnlinePayload(t *testing.T) {
	payload := buildOnlinePayload("humidcore-01")

	if !strings.Contains(payload, `"status":"online"`) {
		t.Errorf("buildOnlinePayload() = %q, missing online status", payload)
	}
	if !strings.Contains(payload, `"client_id":"humidcore-01"`) {
		t.Errorf("buildOnlinePayload() = %q, missing client_id", payload)
	}
}

func TestBuildOfflinePayload(t *testing.T) {
	payload := buildOfflinePayload("humidcore-01")

	if !strings.Contains(payload, `"status":"offline"`) {
		t.Errorf("buildOfflinePayload() = %q, missing offline status", payload)
	}
	if !strings.Contains(payload, `"reason":"graceful_shutdown"`) {
		t.Errorf("buildOfflinePayload() = %q, missing shutdown reason", payload)
	}
}

// =============================================================================
// Validation Tests (no broker required)
// =============================================================================

func TestPublishEmptyTopic(t *testing.T) {
	client := &Client{}

	err := client.Publish("", []byte("test"), 1, false)
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Publish() error = %v, want ErrInvalidTopic", err)
	}
}

func TestPublishInvalidQoS(t *testing.T) {
	client := &Client{}

	err := client.Publish("test/topic", []byte("test"), 3, false)
	if !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Publish() error = %v, want ErrInvalidQoS", err)
	}
}

func TestPublishOversizedPayload(t *testing.T) {
	client := &Client{}
	payload := make([]byte, maxPayloadSize+1)

	err := client.Publish("test/topic", payload, 1, false)
	if !errors.Is(err, ErrPublishFailed) {
		t.Errorf("Publish() error = %v, want ErrPublishFailed", err)
	}
}

func TestPublishDisconnected(t *testing.T) {
	client := &Client{}

	err := client.Publish("test/topic", []byte("test"), 1, false)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Publish() error = %v, want ErrNotConnected", err)
	}
}

func TestSubscribeEmptyTopic(t *testing.T) {
	client := &Client{}

	err := client.Subscribe("", 1, func(string, []byte) error { return nil })
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Subscribe() error = %v, want ErrInvalidTopic", err)
	}
}

func TestSubscribeInvalidQoS(t *testing.T) {
	client := &Client{}

	err := client.Subscribe("test/topic", 3, func(string, []byte) error { return nil })
	if !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Subscribe() error = %v, want ErrInvalidQoS", err)
	}
}

func TestSubscribeNilHandler(t *testing.T) {
	client := &Client{}

	err := client.Subscribe("test/topic", 1, nil)
	if !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("Subscribe() error = %v, want ErrSubscribeFailed", err)
	}
}

func TestUnsubscribeEmptyTopic(t *testing.T) {
	client := &Client{}

	err := client.Unsubscribe("")
	if !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Unsubscribe() error = %v, want ErrInvalidTopic", err)
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}
	err := client.Close()
	if err != nil {
		t.Errorf("Close() on uninitialised client error = %v, want nil", err)
	}
}

func TestIsConnectedInitialState(t *testing.T) {
	client := &Client{}

	if client.IsConnected() {
		t.Error("IsConnected() should be false for uninitialised client")
	}
}

func TestHealthCheckDisconnected(t *testing.T) {
	client := &Client{}

	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}
