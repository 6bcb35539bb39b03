package humidifier

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// restoreStateVersion tags the persisted record layout. It is folded
// into the slot key, so bumping it orphans records written with the
// old layout and they read back as "no prior state".
//
// Bump this whenever the record layout changes.
const restoreStateVersion uint32 = 0xA1C59E04

// restoreRecordSize is the exact encoded size of a RestoreState.
const restoreRecordSize = 5

// RestoreState is the fixed-layout snapshot of the recoverable fields
// of a humidifier, written on every PublishState and read once at
// startup.
//
// Layout (5 bytes, no padding):
//
//	byte 0     mode code
//	bytes 1-4  target humidity, IEEE-754 32-bit float, little-endian
//
// The encoding is hand-specified; it never depends on the in-memory
// layout of the struct.
type RestoreState struct {
	Mode           Mode
	TargetHumidity float32
}

// encode serialises the record into its fixed 5-byte form.
func (rs RestoreState) encode() []byte {
	buf := make([]byte, restoreRecordSize)
	buf[0] = byte(rs.Mode)
	binary.LittleEndian.PutUint32(buf[1:], math.Float32bits(rs.TargetHumidity))
	return buf
}

// decodeRestoreState parses a fixed 5-byte record. Any other size
// fails the integrity check and the record is treated as absent by the
// caller.
func decodeRestoreState(data []byte) (RestoreState, error) {
	if len(data) != restoreRecordSize {
		return RestoreState{}, fmt.Errorf("%w: %d bytes, want %d", ErrCorruptRecord, len(data), restoreRecordSize)
	}
	return RestoreState{
		Mode:           Mode(data[0]),
		TargetHumidity: math.Float32frombits(binary.LittleEndian.Uint32(data[1:])),
	}, nil
}

// ToCall converts the record into a call bound to h. Performing it
// replays the saved settings through normal validation, which is the
// safe path when the record may predate a traits change.
func (rs RestoreState) ToCall(h *Humidifier) *Call {
	return h.MakeCall().
		SetMode(rs.Mode).
		SetTargetHumidity(rs.TargetHumidity)
}

// Apply writes the saved settings straight onto the entity and
// publishes. It bypasses validation; use it only when the record is
// trusted to have been validated when written.
func (rs RestoreState) Apply(h *Humidifier) {
	h.Mode = rs.Mode
	h.TargetHumidity = rs.TargetHumidity
	h.PublishState()
}

// restoreKey derives the stable persistence-slot key for an entity
// name: FNV-1a over the name, folded with the record layout version.
func restoreKey(name string) uint32 {
	hash := fnv.New32a()
	hash.Write([]byte(name)) //nolint:errcheck // fnv writes never fail
	return hash.Sum32() ^ restoreStateVersion
}
