package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteHumidityMetric writes a humidity measurement for a humidifier.
//
// This is the primary method for recording humidifier telemetry data.
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - humidifierID: Unique identifier for the humidifier (e.g., "bedroom")
//   - measurement: The metric name (e.g., "current_humidity", "target_humidity")
//   - value: The humidity value in percent
//
// Example:
//
//	client.WriteHumidityMetric("bedroom", "current_humidity", 42.5)
//	client.WriteHumidityMetric("bedroom", "target_humidity", 45.0)
func (c *Client) WriteHumidityMetric(humidifierID string, measurement string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"humidity",
		map[string]string{
			"humidifier_id": humidifierID,
			"measurement":   measurement,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteRunState writes the operating mode and action of a humidifier.
//
// Mode and action are recorded as string fields so dashboards can track
// duty cycles and how long a unit spends actively humidifying.
//
// Parameters:
//   - humidifierID: Humidifier identifier
//   - mode: Current operating mode (e.g., "AUTO")
//   - action: Current hardware action (e.g., "HUMIDIFYING")
func (c *Client) WriteRunState(humidifierID string, mode string, action string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"run_state",
		map[string]string{
			"humidifier_id": humidifierID,
		},
		map[string]interface{}{
			"mode":   mode,
			"action": action,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "humidcore-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
