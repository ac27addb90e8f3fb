package mqtt

import (
	"fmt"
	"strings"
)

// Lighting topics
const (
	// Kelvin based lighting decisions (input)
	TopicLightCommands = "automation/command/light/+"

	// RGB fixture commands and context (output)
	TopicRGBCommandBase = "automation/command/rgb"
	TopicRGBContextBase = "automation/context/rgb"
)

// RGBCommandTopic constructs the RGB command topic for a location
// Pattern: automation/command/rgb/{location}
func RGBCommandTopic(location string) string {
	return fmt.Sprintf("%s/%s", TopicRGBCommandBase, location)
}

// RGBContextTopic constructs the RGB context topic for a location
// Pattern: automation/context/rgb/{location}
func RGBContextTopic(location string) string {
	return fmt.Sprintf("%s/%s", TopicRGBContextBase, location)
}

// LocationFromTopic extracts the trailing location segment from a
// four-segment topic such as automation/command/light/{location}
func LocationFromTopic(topic string) (string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[3] == "" {
		return "", false
	}
	return parts[3], true
}
