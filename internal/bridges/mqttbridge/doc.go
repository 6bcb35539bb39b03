// Package mqttbridge exposes humidifier entities over MQTT.
//
// The bridge is the outward-facing integration layer: the entity model
// itself has no wire protocol, and this package supplies one without
// the core knowing about it.
//
// # Topics
//
// Each attached entity gets topics derived from its name:
//
//	humidcore/humidifier/{slug}/state    retained state JSON, published
//	                                     on every state change
//	humidcore/humidifier/{slug}/set      command JSON, turned into
//	                                     control calls
//	humidcore/humidifier/{slug}/current  measured humidity as a bare
//	                                     number, fed to the driver
//	                                     (AttachSensor)
//
// # Message formats
//
// State (published):
//
//	{"mode":"AUTO","action":"IDLE","current_humidity":42.5,"target_humidity":45}
//
// current_humidity is omitted until the first sensor reading arrives.
//
// Command (received, both fields optional):
//
//	{"mode":"AUTO","target_humidity":45}
//
// Command fields go through the entity's normal validation: an
// unsupported mode is dropped with a warning and an out-of-range target
// is quantised and clamped, exactly as for any other caller.
//
// # Wiring
//
//	bridge, err := mqttbridge.NewBridge(mqttbridge.Options{
//	    Broker: mqttClient,
//	    QoS:    1,
//	    Logger: log,
//	})
//	...
//	err = bridge.Attach(entity)
//	err = bridge.AttachSensor(entity.Name(), driver)
package mqttbridge
