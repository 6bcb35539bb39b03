package telemetry

import (
	"math"

	"github.com/nerrad567/humidcore/internal/humidifier"
)

// MetricWriter is the narrow write surface the recorder needs.
// Satisfied by influxdb.Client; writes must be non-blocking.
type MetricWriter interface {
	WriteHumidityMetric(humidifierID string, measurement string, value float64)
	WriteRunState(humidifierID string, mode string, action string)
}

// Recorder forwards humidifier state changes to a time-series store.
//
// It observes entities through their state callbacks: every published
// state becomes a pair of humidity measurements plus a run-state point.
// The recorder holds no state of its own and never blocks the control
// pipeline (the writer batches asynchronously).
type Recorder struct {
	writer MetricWriter
}

// NewRecorder creates a recorder writing through the given writer.
func NewRecorder(writer MetricWriter) *Recorder {
	return &Recorder{writer: writer}
}

// Observe registers the recorder on the entity's state callbacks.
// Call once per entity during wiring.
func (r *Recorder) Observe(h *humidifier.Humidifier) {
	h.AddOnStateCallback(r.record)
}

// record writes one snapshot of the entity's state.
func (r *Recorder) record(h *humidifier.Humidifier) {
	// No reading yet; skip rather than record NaN.
	if !math.IsNaN(float64(h.CurrentHumidity)) {
		r.writer.WriteHumidityMetric(h.Name(), "current_humidity", float64(h.CurrentHumidity))
	}
	r.writer.WriteHumidityMetric(h.Name(), "target_humidity", float64(h.TargetHumidity))
	r.writer.WriteRunState(h.Name(), h.Mode.String(), h.Action.String())
}
