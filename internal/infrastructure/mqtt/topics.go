package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes for the humidcore MQTT surface.
//
// All humidifier topics use the scheme: humidcore/humidifier/{slug}/{suffix}
// where {slug} is the slugified entity name.
const (
	// TopicPrefix is the base for all humidcore topics.
	TopicPrefix = "humidcore"

	// TopicPrefixHumidifier is the base for per-entity topics.
	TopicPrefixHumidifier = "humidcore/humidifier"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "humidcore/system"
)

// Topics provides builders for humidcore MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.HumidifierState("greenhouse")
//	// Returns: "humidcore/humidifier/greenhouse/state"
type Topics struct{}

// HumidifierState returns the retained state topic for an entity.
//
// Example: humidcore/humidifier/greenhouse/state
func (Topics) HumidifierState(slug string) string {
	return fmt.Sprintf("%s/%s/state", TopicPrefixHumidifier, slug)
}

// HumidifierSet returns the command topic for an entity.
//
// Example: humidcore/humidifier/greenhouse/set
func (Topics) HumidifierSet(slug string) string {
	return fmt.Sprintf("%s/%s/set", TopicPrefixHumidifier, slug)
}

// HumidifierCurrent returns the sensor reading topic for an entity.
// External sensors publish the measured humidity here as a bare number.
//
// Example: humidcore/humidifier/greenhouse/current
func (Topics) HumidifierCurrent(slug string) string {
	return fmt.Sprintf("%s/%s/current", TopicPrefixHumidifier, slug)
}

// SystemStatus returns the service status topic (online/offline, LWT).
//
// Example: humidcore/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllHumidifierSets returns a pattern matching every command topic.
//
// Pattern: humidcore/humidifier/+/set
func (Topics) AllHumidifierSets() string {
	return fmt.Sprintf("%s/+/set", TopicPrefixHumidifier)
}

// AllHumidifierStates returns a pattern matching every state topic.
//
// Pattern: humidcore/humidifier/+/state
func (Topics) AllHumidifierStates() string {
	return fmt.Sprintf("%s/+/state", TopicPrefixHumidifier)
}

// HumidifierSlug extracts the entity slug from a per-entity topic.
//
// It accepts any humidcore/humidifier/{slug}/{suffix} topic and reports
// ok=false for topics outside that scheme.
func (Topics) HumidifierSlug(topic string) (string, bool) {
	rest, found := strings.CutPrefix(topic, TopicPrefixHumidifier+"/")
	if !found {
		return "", false
	}
	slug, _, found := strings.Cut(rest, "/")
	if !found || slug == "" {
		return "", false
	}
	return slug, true
}
