// Package generic provides a config-declared humidifier device driver.
//
// The driver implements humidifier.Driver for units declared entirely
// in config.yaml: traits come from the declaration, control calls write
// straight into the entity's state, and the operating action is derived
// from mode, target and the latest sensor reading. Real actuation is
// left to whatever consumes the published state (typically the MQTT
// bridge's retained state topics).
//
// Construction is two-step because the entity and its driver reference
// each other:
//
//	driver, err := generic.New(cfg)
//	...
//	entity, err := humidifier.New(cfg.Name, driver, store)
//	...
//	driver.Bind(entity)
package generic
