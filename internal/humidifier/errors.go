package humidifier

import "errors"

// Domain errors for the humidifier package.
//
// These errors can be checked using errors.Is() in calling code:
//
//	if errors.Is(err, humidifier.ErrCallPerformed) {
//	    // the call was already dispatched
//	}
var (
	// ErrNilDriver is returned when constructing an entity without a
	// device driver. A humidifier cannot exist without one.
	ErrNilDriver = errors.New("humidifier: driver is required")

	// ErrInvalidName is returned when constructing an entity with an
	// empty name. The name keys the persisted record.
	ErrInvalidName = errors.New("humidifier: name is required")

	// ErrCallPerformed is returned when Perform is invoked a second
	// time on the same call. Calls are single-use.
	ErrCallPerformed = errors.New("humidifier: call already performed")

	// ErrInvalidOverride is returned when a visual override would
	// produce an inverted range or a non-positive step.
	ErrInvalidOverride = errors.New("humidifier: invalid visual override")

	// ErrCorruptRecord is returned when a persisted record fails the
	// size check during decoding.
	ErrCorruptRecord = errors.New("humidifier: corrupt restore record")
)
