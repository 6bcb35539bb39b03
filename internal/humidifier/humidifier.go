package humidifier

import "math"

// Driver is the device-specific half of a humidifier entity. Each
// hardware (or simulated) integration implements it once per device
// family.
//
// Traits must be pure: the entity calls it once at construction and
// caches the result, so the returned value must be constant for the
// lifetime of the process.
//
// Control receives a validated Call. The driver applies whichever
// fields are set (checked with the comma-ok getters), updates the
// entity's public state fields, and calls PublishState before
// returning.
type Driver interface {
	Traits() Traits
	Control(call *Call)
}

// Store is the persistence slot for a humidifier's restore record.
//
// Implementations live in internal/infrastructure/prefs. Load returns
// (nil, nil) when no value exists for the key; that is "no prior
// state", not an error.
type Store interface {
	Load(key uint32) ([]byte, error)
	Save(key uint32, value []byte) error
}

// Logger is the minimal logging surface the entity needs.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Humidifier is a long-lived controllable humidifier entity.
//
// The public state fields follow the convention of the rest of the
// entity model: they are read-only for callers and read-write for the
// device driver. External code never mutates them directly; it makes a
// Call instead, and the driver applies the accepted fields and calls
// PublishState.
//
// # Reentrancy
//
// Callback lists are append-only and iterated over a slice snapshot
// taken when dispatch starts. A callback that registers further
// callbacks, or makes and performs a nested Call on the same entity,
// is safe: the additions take effect from the next dispatch.
//
// The entity is deliberately lock-free: the whole control pipeline
// (call construction, validation, callbacks, driver, persistence) runs
// synchronously in a single logical thread.
type Humidifier struct {
	// Mode is the active mode of the device.
	Mode Mode

	// Action is the derived operational state of the device.
	Action Action

	// CurrentHumidity is the sensed humidity as reported by the
	// driver. NaN until the first reading arrives.
	CurrentHumidity float32

	// TargetHumidity is the humidity the device is trying to reach.
	TargetHumidity float32

	name   string
	driver Driver
	store  Store
	log    Logger

	baseTraits Traits

	minHumidityOverride *float32
	maxHumidityOverride *float32
	targetStepOverride  *float32
	currentStepOverride *float32

	stateCallbacks   []func(*Humidifier)
	controlCallbacks []func(*Call)
}

// New constructs a humidifier entity bound to the given driver and
// persistence slot.
//
// The driver is mandatory: an entity without one is a wiring error, so
// construction fails rather than deferring the problem to runtime. The
// driver's traits are read and cached here. A nil store disables
// persistence (restore reports no prior state, publishes skip the
// write); a nil logger silences diagnostics.
func New(name string, driver Driver, store Store) (*Humidifier, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if driver == nil {
		return nil, ErrNilDriver
	}

	h := &Humidifier{
		Mode:            ModeOff,
		Action:          ActionOff,
		CurrentHumidity: float32(math.NaN()),
		name:            name,
		driver:          driver,
		store:           store,
	}
	h.baseTraits = driver.Traits().clone()
	return h, nil
}

// Name returns the configured entity name. The name keys the persisted
// record and must be stable across restarts.
func (h *Humidifier) Name() string { return h.name }

// SetLogger sets a logger for warnings and diagnostics.
// If not set, the entity stays silent.
func (h *Humidifier) SetLogger(log Logger) { h.log = log }

// MakeCall returns a new control call bound to this entity. It has no
// side effects; nothing happens until Perform.
func (h *Humidifier) MakeCall() *Call {
	return &Call{parent: h}
}

// Traits returns the device traits with this instance's visual
// overrides applied. An override, when set, replaces the corresponding
// base value; everything else passes through from the driver's cached
// traits.
func (h *Humidifier) Traits() Traits {
	t := h.baseTraits.clone()
	if h.minHumidityOverride != nil {
		t.SetHumidityRange(*h.minHumidityOverride, t.MaxHumidity())
	}
	if h.maxHumidityOverride != nil {
		t.SetHumidityRange(t.MinHumidity(), *h.maxHumidityOverride)
	}
	if h.targetStepOverride != nil {
		t.SetHumiditySteps(*h.targetStepOverride, t.CurrentHumidityStep())
	}
	if h.currentStepOverride != nil {
		t.SetHumiditySteps(t.TargetHumidityStep(), *h.currentStepOverride)
	}
	return t
}

// SetVisualMinHumidityOverride narrows (or widens) the lower bound of
// the displayed/validated humidity range for this instance.
//
// Overrides are configuration: call them before the entity is first
// used. An override that would invert the range is a configuration
// error and is rejected here, at setup time, rather than surfacing
// during request validation.
func (h *Humidifier) SetVisualMinHumidityOverride(value float32) error {
	maxHumidity := h.baseTraits.MaxHumidity()
	if h.maxHumidityOverride != nil {
		maxHumidity = *h.maxHumidityOverride
	}
	if value > maxHumidity {
		return ErrInvalidOverride
	}
	h.minHumidityOverride = &value
	return nil
}

// SetVisualMaxHumidityOverride raises (or lowers) the upper bound of
// the displayed/validated humidity range for this instance.
func (h *Humidifier) SetVisualMaxHumidityOverride(value float32) error {
	minHumidity := h.baseTraits.MinHumidity()
	if h.minHumidityOverride != nil {
		minHumidity = *h.minHumidityOverride
	}
	if value < minHumidity {
		return ErrInvalidOverride
	}
	h.maxHumidityOverride = &value
	return nil
}

// SetVisualHumidityStepOverride replaces the target and current
// humidity steps for this instance. Both must be positive.
func (h *Humidifier) SetVisualHumidityStepOverride(target, current float32) error {
	if target <= 0 || current <= 0 {
		return ErrInvalidOverride
	}
	h.targetStepOverride = &target
	h.currentStepOverride = &current
	return nil
}

// AddOnStateCallback registers a callback invoked on every
// PublishState, after the driver has applied a change. Callbacks run
// synchronously in registration order. There is no de-registration.
func (h *Humidifier) AddOnStateCallback(callback func(*Humidifier)) {
	h.stateCallbacks = append(h.stateCallbacks, callback)
}

// AddOnControlCallback registers a callback invoked for every
// performed Call, after validation and before the driver sees it.
// Callbacks run synchronously in registration order.
func (h *Humidifier) AddOnControlCallback(callback func(*Call)) {
	h.controlCallbacks = append(h.controlCallbacks, callback)
}

// PublishState publishes the entity's state, to be called by the
// driver after it has applied accepted fields.
//
// In order: every state callback runs (registration order, snapshot
// iteration), then the restore record {mode, target humidity} is
// written to the persistence slot. A failed write is logged and
// dropped; in-memory state stands and the next publish tries again.
func (h *Humidifier) PublishState() {
	callbacks := h.stateCallbacks
	for _, cb := range callbacks {
		cb(h)
	}
	h.saveState()
}

// saveState writes the restore record for this entity.
func (h *Humidifier) saveState() {
	if h.store == nil {
		return
	}
	rs := RestoreState{
		Mode:           h.Mode,
		TargetHumidity: h.TargetHumidity,
	}
	if err := h.store.Save(restoreKey(h.name), rs.encode()); err != nil {
		h.warn("saving humidifier state failed",
			"humidifier", h.name,
			"error", err,
		)
	}
}

// RestoreState reads the persisted record for this entity.
//
// It returns ok=false when no record exists, the slot is unreadable,
// or the record fails the size check; callers then fall back to their
// compile-time defaults. On success the record can be replayed through
// validation with ToCall, or trusted and applied directly with Apply.
func (h *Humidifier) RestoreState() (RestoreState, bool) {
	if h.store == nil {
		return RestoreState{}, false
	}

	data, err := h.store.Load(restoreKey(h.name))
	if err != nil {
		h.warn("loading humidifier state failed",
			"humidifier", h.name,
			"error", err,
		)
		return RestoreState{}, false
	}
	if data == nil {
		return RestoreState{}, false
	}

	rs, err := decodeRestoreState(data)
	if err != nil {
		h.warn("discarding unreadable humidifier state",
			"humidifier", h.name,
			"error", err,
		)
		return RestoreState{}, false
	}
	return rs, true
}

// DumpTraits logs the effective traits of this entity at info level.
// Called once at startup so the configured capabilities end up in the
// log alongside the rest of the boot report.
func (h *Humidifier) DumpTraits() {
	if h.log == nil {
		return
	}
	t := h.Traits()
	modes := t.SupportedModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	h.log.Info("humidifier configured",
		"humidifier", h.name,
		"modes", names,
		"min_humidity", t.MinHumidity(),
		"max_humidity", t.MaxHumidity(),
		"target_step", t.TargetHumidityStep(),
		"current_step", t.CurrentHumidityStep(),
	)
}

// warn logs at warn level when a logger is attached.
func (h *Humidifier) warn(msg string, args ...any) {
	if h.log != nil {
		h.log.Warn(msg, args...)
	}
}
