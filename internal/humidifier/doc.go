// Package humidifier models a controllable humidifier entity with
// validated control calls and power-cycle-durable state.
//
// # Architecture
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                       Humidifier entity                        │
//	│                                                                │
//	│  ┌──────────────┐   ┌──────────────┐   ┌──────────────────┐   │
//	│  │     Call     │   │    Traits    │   │   RestoreState   │   │
//	│  │  (call.go)   │──▶│ (traits.go)  │   │  (restore.go)    │   │
//	│  │              │   │              │   │                  │   │
//	│  │ • Set fields │   │ • Mode set   │   │ • 5-byte record  │   │
//	│  │ • Validate   │   │ • Range/step │   │ • Name-hash key  │   │
//	│  │ • Perform    │   │ • Overrides  │   │ • ToCall/Apply   │   │
//	│  └──────┬───────┘   └──────────────┘   └────────┬─────────┘   │
//	│         │                                       │             │
//	│         ▼                                       ▼             │
//	│  ┌──────────────┐                      ┌──────────────────┐   │
//	│  │    Driver    │── PublishState() ───▶│  Store (prefs)   │   │
//	│  └──────────────┘                      └──────────────────┘   │
//	└───────────────────────────────────────────────────────────────┘
//
// # Control flow
//
// A caller obtains a Call with MakeCall, sets the desired mode and/or
// target humidity, and invokes Perform. Perform validates the fields
// against the effective Traits (unsupported mode cleared with a
// warning, target rounded to the step and clamped into range), runs
// the control callbacks, and hands the call to the device Driver. The
// driver applies the accepted fields and calls PublishState, which
// runs the state callbacks in registration order and then writes the
// RestoreState record to the injected Store.
//
// # Ordering guarantees
//
// Control callbacks fire strictly before the driver runs. State
// callbacks fire strictly after the driver calls PublishState and
// strictly before the persistence write of that publish.
//
// # Usage
//
//	h, err := humidifier.New("greenhouse", driver, store)
//	if err != nil {
//	    return err
//	}
//	h.SetLogger(log)
//
//	if rs, ok := h.RestoreState(); ok {
//	    rs.Apply(h)
//	}
//
//	h.AddOnStateCallback(func(h *humidifier.Humidifier) {
//	    log.Info("state", "mode", h.Mode, "target", h.TargetHumidity)
//	})
//
//	err = h.MakeCall().SetModeName("AUTO").SetTargetHumidity(42).Perform()
//
// # Concurrency
//
// None. Every operation runs to completion synchronously in the
// caller's goroutine; the package contains no locks and expects a
// single logical thread of control.
package humidifier
