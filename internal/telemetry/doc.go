// Package telemetry records humidifier state changes as time-series
// metrics.
//
// The recorder is a passive observer: it attaches to an entity's state
// callbacks and forwards each published state to a MetricWriter
// (normally the InfluxDB client). It writes current humidity (skipped
// until the first sensor reading arrives), target humidity, and the
// mode/action run state used for duty-cycle dashboards.
package telemetry
