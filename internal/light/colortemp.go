package light

import "time"

// colorTempMap follows circadian rhythm principles - warmer light at night, cooler during day
var colorTempMap = map[string]int{
	"early_morning": 3000, // Warm start
	"morning":       4500, // Neutral
	"midday":        5500, // Cool/daylight
	"afternoon":     4500, // Neutral
	"evening":       2700, // Warm
	"late_evening":  2500, // Very warm
	"night":         2400, // Ultra warm for sleep
}

const defaultColorTemp = 4000

// calculateColorTemperature returns the color temperature for a time of day
func calculateColorTemperature(timeOfDay string) int {
	if temp, exists := colorTempMap[timeOfDay]; exists {
		return temp
	}

	// Default to neutral if unknown time of day
	return defaultColorTemp
}

// isKnownTimeOfDay reports whether s is one of the semantic time periods
func isKnownTimeOfDay(s string) bool {
	_, ok := colorTempMap[s]
	return ok
}

// getTimeOfDay returns the semantic time period for the local hour of t
func getTimeOfDay(t time.Time) string {
	hour := t.Hour()

	switch {
	case hour >= 5 && hour < 7:
		return "early_morning"
	case hour >= 7 && hour < 10:
		return "morning"
	case hour >= 10 && hour < 14:
		return "midday"
	case hour >= 14 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 20:
		return "evening"
	case hour >= 20 && hour < 22:
		return "late_evening"
	default:
		return "night"
	}
}
