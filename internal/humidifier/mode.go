package humidifier

import "strings"

// Mode is a discrete operating setting for a humidifier device.
//
// The numeric values are part of the persisted record layout (see
// RestoreState) and must not be reordered. New modes may only be
// appended.
type Mode uint8

// Supported humidifier modes.
const (
	// ModeOff disables humidification entirely.
	ModeOff Mode = 0

	// ModeOn humidifies continuously regardless of the current reading.
	ModeOn Mode = 1

	// ModeAuto humidifies only while the current humidity is below the
	// target, then idles.
	ModeAuto Mode = 2
)

// String returns the canonical name of the mode (OFF, ON, AUTO).
// Unknown values return "UNKNOWN".
func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "OFF"
	case ModeOn:
		return "ON"
	case ModeAuto:
		return "AUTO"
	default:
		return "UNKNOWN"
	}
}

// ParseMode resolves a mode name to its Mode value.
//
// Matching is case-insensitive against the canonical names returned by
// Mode.String(). The boolean result reports whether the name resolved.
func ParseMode(name string) (Mode, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "OFF":
		return ModeOff, true
	case "ON":
		return ModeOn, true
	case "AUTO":
		return ModeAuto, true
	default:
		return ModeOff, false
	}
}

// Action is the derived operational state of a humidifier device.
//
// Mode is what the device was asked to do; Action is what it is doing
// right now. Only the device driver writes the action.
type Action uint8

// Humidifier actions.
const (
	// ActionOff means the device is switched off.
	ActionOff Action = 0

	// ActionIdle means the device is on but not currently humidifying.
	ActionIdle Action = 1

	// ActionHumidifying means the device is actively adding moisture.
	ActionHumidifying Action = 2
)

// String returns the canonical name of the action.
func (a Action) String() string {
	switch a {
	case ActionOff:
		return "OFF"
	case ActionIdle:
		return "IDLE"
	case ActionHumidifying:
		return "HUMIDIFYING"
	default:
		return "UNKNOWN"
	}
}
