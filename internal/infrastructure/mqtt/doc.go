// Package mqtt provides MQTT client connectivity for humidcore.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// humidcore uses MQTT as its external surface: humidifier state is
// published on retained topics, and command messages arrive on set topics.
// The broker decouples the humidifier entities from dashboards and
// automation frontends.
//
//	humidcore ↔ MQTT Broker ↔ Dashboards / Automations
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to all humidifier command topics
//	err = client.Subscribe(mqtt.Topics{}.AllHumidifierSets(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish retained state
//	topic := mqtt.Topics{}.HumidifierState("bedroom")
//	client.PublishRetained(topic, []byte(`{"mode":"AUTO","target_humidity":45}`))
package mqtt
