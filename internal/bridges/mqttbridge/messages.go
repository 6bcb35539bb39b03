package mqttbridge

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/nerrad567/humidcore/internal/humidifier"
)

// statePayload is the JSON shape published on state topics.
//
// current_humidity is omitted until the first sensor reading arrives
// (JSON has no NaN).
type statePayload struct {
	Mode            string   `json:"mode"`
	Action          string   `json:"action"`
	CurrentHumidity *float64 `json:"current_humidity,omitempty"`
	TargetHumidity  float64  `json:"target_humidity"`
}

// commandPayload is the JSON shape accepted on set topics.
// Both fields are optional; absent fields leave the entity unchanged.
type commandPayload struct {
	Mode           *string  `json:"mode"`
	TargetHumidity *float64 `json:"target_humidity"`
}

// encodeState renders the entity's public state as JSON.
func encodeState(h *humidifier.Humidifier) ([]byte, error) {
	p := statePayload{
		Mode:           h.Mode.String(),
		Action:         h.Action.String(),
		TargetHumidity: float64(h.TargetHumidity),
	}
	if !math.IsNaN(float64(h.CurrentHumidity)) {
		current := float64(h.CurrentHumidity)
		p.CurrentHumidity = &current
	}
	return json.Marshal(p)
}

// decodeCommand parses a command payload.
//
// A payload that parses but carries neither field is rejected; it is
// almost certainly a malformed command rather than an intentional no-op.
func decodeCommand(payload []byte) (commandPayload, error) {
	var cmd commandPayload
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return commandPayload{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if cmd.Mode == nil && cmd.TargetHumidity == nil {
		return commandPayload{}, fmt.Errorf("command carries no fields")
	}
	return cmd, nil
}
