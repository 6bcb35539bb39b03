package humidifier

import "math"

// Call encodes a single control action on a humidifier device.
//
// It is used by everything that wishes to change a humidifier's state
// (MQTT bridge, automation, restore logic). Obtain one with
// Humidifier.MakeCall, set the desired fields with the Set* methods,
// then apply it with Perform.
//
// Each field is optional: a field that was never set means "no change
// requested" and the driver leaves the corresponding state alone. The
// driver reads the fields with the comma-ok getters.
//
// A Call is single-use. Perform validates the fields, runs the control
// callbacks, hands the call to the driver, and marks the call spent;
// a second Perform returns ErrCallPerformed without side effects.
//
// Calls are not safe for concurrent use; the whole control pipeline is
// synchronous by design.
type Call struct {
	parent *Humidifier

	mode           *Mode
	targetHumidity *float32

	performed bool
}

// SetMode sets the desired mode, replacing any previously set value on
// this call.
func (c *Call) SetMode(mode Mode) *Call {
	m := mode
	c.mode = &m
	return c
}

// SetModeName resolves name against the canonical mode names and sets
// the desired mode. An unresolvable name leaves the desired mode unset
// and logs a warning; it does not abort call construction.
func (c *Call) SetModeName(name string) *Call {
	mode, ok := ParseMode(name)
	if !ok {
		c.parent.warn("unrecognised mode name ignored",
			"humidifier", c.parent.name,
			"mode", name,
		)
		return c
	}
	return c.SetMode(mode)
}

// SetTargetHumidity sets the desired target humidity, replacing any
// previously set value on this call.
func (c *Call) SetTargetHumidity(target float32) *Call {
	t := target
	c.targetHumidity = &t
	return c
}

// ClearMode removes a previously set desired mode from this call.
func (c *Call) ClearMode() *Call {
	c.mode = nil
	return c
}

// ClearTargetHumidity removes a previously set target humidity from
// this call.
func (c *Call) ClearTargetHumidity() *Call {
	c.targetHumidity = nil
	return c
}

// Mode returns the desired mode and whether one was set.
func (c *Call) Mode() (Mode, bool) {
	if c.mode == nil {
		return ModeOff, false
	}
	return *c.mode, true
}

// TargetHumidity returns the desired target humidity and whether one
// was set.
func (c *Call) TargetHumidity() (float32, bool) {
	if c.targetHumidity == nil {
		return 0, false
	}
	return *c.targetHumidity, true
}

// Perform validates and applies this call, in order:
//
//  1. Validation: an unsupported mode is cleared with a warning; a set
//     target humidity is rounded to the nearest step multiple and
//     clamped into the effective range. Nothing is rejected outright.
//  2. The entity's control callbacks run in registration order.
//  3. The entity's driver receives the call; it applies whichever
//     fields remain set and calls PublishState before returning.
//
// After Perform returns the call is spent. A second Perform returns
// ErrCallPerformed and does nothing else.
func (c *Call) Perform() error {
	if c.performed {
		return ErrCallPerformed
	}
	c.performed = true

	c.validate()

	// Snapshot, so callbacks registering further callbacks do not
	// affect this iteration.
	callbacks := c.parent.controlCallbacks
	for _, cb := range callbacks {
		cb(c)
	}

	c.parent.driver.Control(c)
	return nil
}

// validate reconciles the requested fields against the effective
// traits. Recoverable problems degrade the request rather than fail it.
func (c *Call) validate() {
	traits := c.parent.Traits()

	if c.mode != nil && !traits.SupportsMode(*c.mode) {
		c.parent.warn("requested mode not supported by device",
			"humidifier", c.parent.name,
			"mode", c.mode.String(),
		)
		c.mode = nil
	}

	if c.targetHumidity != nil {
		*c.targetHumidity = quantise(*c.targetHumidity, traits.TargetHumidityStep())
		*c.targetHumidity = clamp(*c.targetHumidity, traits.MinHumidity(), traits.MaxHumidity())
	}
}

// quantise rounds value to the nearest multiple of step.
// A non-positive step leaves the value untouched.
func quantise(value, step float32) float32 {
	if step <= 0 {
		return value
	}
	return float32(math.Round(float64(value)/float64(step))) * step
}

// clamp limits value to the inclusive range [lo, hi].
func clamp(value, lo, hi float32) float32 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
