package humidifier

// Traits describes the capabilities of a humidifier device: which modes
// it supports and the valid range and granularity of the target
// humidity.
//
// A driver builds its Traits once and returns the same value from every
// Traits() call; the entity caches the result at construction and
// layers the per-instance visual overrides on top (see
// Humidifier.Traits).
type Traits struct {
	modes       []Mode
	minHumidity float32
	maxHumidity float32
	targetStep  float32
	currentStep float32
}

// NewTraits returns Traits with the given supported modes, humidity
// range and step. The same step is used for target and current
// humidity; use SetHumiditySteps to split them.
func NewTraits(modes []Mode, minHumidity, maxHumidity, step float32) Traits {
	t := Traits{
		minHumidity: minHumidity,
		maxHumidity: maxHumidity,
		targetStep:  step,
		currentStep: step,
	}
	t.SetSupportedModes(modes)
	return t
}

// SetSupportedModes replaces the supported-mode set. Duplicates are
// dropped; order of first appearance is preserved.
func (t *Traits) SetSupportedModes(modes []Mode) {
	t.modes = t.modes[:0]
	for _, m := range modes {
		if !t.SupportsMode(m) {
			t.modes = append(t.modes, m)
		}
	}
}

// SupportsMode reports whether the device supports the given mode.
func (t Traits) SupportsMode(m Mode) bool {
	for _, have := range t.modes {
		if have == m {
			return true
		}
	}
	return false
}

// SupportedModes returns a copy of the supported-mode set.
func (t Traits) SupportedModes() []Mode {
	modes := make([]Mode, len(t.modes))
	copy(modes, t.modes)
	return modes
}

// SetHumidityRange sets the minimum and maximum target humidity.
func (t *Traits) SetHumidityRange(minHumidity, maxHumidity float32) {
	t.minHumidity = minHumidity
	t.maxHumidity = maxHumidity
}

// SetHumiditySteps sets the display/validation granularity for the
// target and current humidity values.
func (t *Traits) SetHumiditySteps(target, current float32) {
	t.targetStep = target
	t.currentStep = current
}

// MinHumidity returns the lowest accepted target humidity.
func (t Traits) MinHumidity() float32 { return t.minHumidity }

// MaxHumidity returns the highest accepted target humidity.
func (t Traits) MaxHumidity() float32 { return t.maxHumidity }

// TargetHumidityStep returns the granularity of the target humidity.
func (t Traits) TargetHumidityStep() float32 { return t.targetStep }

// CurrentHumidityStep returns the granularity of the current humidity.
func (t Traits) CurrentHumidityStep() float32 { return t.currentStep }

// clone returns an independent copy of the traits. The entity uses it
// so callers mutating the returned value cannot reach into the cached
// base traits.
func (t Traits) clone() Traits {
	cpy := t
	cpy.modes = make([]Mode, len(t.modes))
	copy(cpy.modes, t.modes)
	return cpy
}
