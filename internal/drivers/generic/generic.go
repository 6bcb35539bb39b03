package generic

import (
	"fmt"
	"math"

	"github.com/nerrad567/humidcore/internal/humidifier"
	"github.com/nerrad567/humidcore/internal/infrastructure/config"
)

// Humidifier is a config-declared device driver.
//
// It has no hardware behind it: the "device" is the entity's own state,
// updated by control calls and by humidity readings fed in through
// SetCurrentHumidity. This is the driver used for declared units whose
// real actuation happens elsewhere (relay boards, external automations
// reacting to the published action).
type Humidifier struct {
	traits humidifier.Traits
	entity *humidifier.Humidifier
}

// New builds a driver from a humidifier's configuration.
//
// Mode names must resolve against the canonical set (OFF, ON, AUTO);
// an unrecognised name is a configuration error.
func New(cfg config.HumidifierConfig) (*Humidifier, error) {
	modes := make([]humidifier.Mode, 0, len(cfg.Modes))
	for _, name := range cfg.Modes {
		mode, ok := humidifier.ParseMode(name)
		if !ok {
			return nil, fmt.Errorf("humidifier %q: unrecognised mode %q", cfg.Name, name)
		}
		modes = append(modes, mode)
	}

	return &Humidifier{
		traits: humidifier.NewTraits(
			modes,
			float32(cfg.MinHumidity),
			float32(cfg.MaxHumidity),
			float32(cfg.Step),
		),
	}, nil
}

// Bind attaches the driver to its entity. Must be called once, right
// after the entity is constructed, before any call is performed.
func (d *Humidifier) Bind(entity *humidifier.Humidifier) {
	d.entity = entity
}

// Traits returns the device capabilities declared in config.
func (d *Humidifier) Traits() humidifier.Traits {
	return d.traits
}

// Control applies a validated call: accepted fields land in the
// entity's state, the action is re-derived, and the new state is
// published.
func (d *Humidifier) Control(call *humidifier.Call) {
	if mode, ok := call.Mode(); ok {
		d.entity.Mode = mode
	}
	if target, ok := call.TargetHumidity(); ok {
		d.entity.TargetHumidity = target
	}
	d.entity.Action = d.deriveAction()
	d.entity.PublishState()
}

// SetCurrentHumidity feeds a sensor reading into the entity.
//
// The action is re-derived (an auto unit may start or stop humidifying
// on a new reading) and the state published.
func (d *Humidifier) SetCurrentHumidity(value float32) {
	d.entity.CurrentHumidity = value
	d.entity.Action = d.deriveAction()
	d.entity.PublishState()
}

// deriveAction computes what the device is doing from mode, target and
// the current reading.
//
//   - OFF: off.
//   - ON: humidifying continuously.
//   - AUTO: humidifying while the reading is below target, idle
//     otherwise. With no reading yet the unit idles rather than run
//     blind.
func (d *Humidifier) deriveAction() humidifier.Action {
	switch d.entity.Mode {
	case humidifier.ModeOff:
		return humidifier.ActionOff
	case humidifier.ModeOn:
		return humidifier.ActionHumidifying
	case humidifier.ModeAuto:
		current := float64(d.entity.CurrentHumidity)
		if !math.IsNaN(current) && float32(current) < d.entity.TargetHumidity {
			return humidifier.ActionHumidifying
		}
		return humidifier.ActionIdle
	default:
		return humidifier.ActionOff
	}
}
