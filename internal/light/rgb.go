package light

import (
	"time"

	"github.com/google/uuid"

	"github.com/saaga0h/jeeves-rgb/pkg/kelvin"
)

// Kelvin sources, in order of precedence
const (
	SourceCommand     = "command"
	SourceSchedule    = "schedule"
	SourceSunPosition = "sun_position"
	SourceTimeOfDay   = "time_of_day"
)

// LightCommand is a Kelvin based lighting decision from the light agent
type LightCommand struct {
	Action     string  `json:"action"`     // "on", "off", "maintain"
	Brightness int     `json:"brightness"` // 0-100
	ColorTemp  *int    `json:"color_temp"` // Kelvin, null if not applicable
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// RGBCommand is the command published to RGB-only fixtures
type RGBCommand struct {
	CommandID    string  `json:"command_id"`
	Action       string  `json:"action"`
	R            uint8   `json:"r"`
	G            uint8   `json:"g"`
	B            uint8   `json:"b"`
	Hex          string  `json:"hex"`
	BaseHex      string  `json:"base_hex,omitempty"` // Color before brightness scaling
	Kelvin       int     `json:"kelvin,omitempty"`
	KelvinSource string  `json:"kelvin_source,omitempty"`
	Brightness   int     `json:"brightness"`
	Reason       string  `json:"reason,omitempty"`
	Confidence   float64 `json:"confidence"`
	Timestamp    string  `json:"timestamp"`
}

// KelvinResolver picks the color temperature for an "on" command
type KelvinResolver struct {
	schedule  *Schedule
	latitude  float64
	longitude float64
}

// NewKelvinResolver creates a resolver. schedule may be nil.
func NewKelvinResolver(schedule *Schedule, latitude, longitude float64) *KelvinResolver {
	return &KelvinResolver{
		schedule:  schedule,
		latitude:  latitude,
		longitude: longitude,
	}
}

// Resolve returns the color temperature and where it came from: the command
// itself, the schedule, the sun position, then the time-of-day table
func (r *KelvinResolver) Resolve(location string, requested int, now time.Time) (int, string) {
	if requested > 0 {
		return requested, SourceCommand
	}

	timeOfDay := getTimeOfDay(now)
	if k, ok := r.schedule.Lookup(location, timeOfDay); ok {
		return k, SourceSchedule
	}

	if k, ok := circadianColorTemperature(now, r.latitude, r.longitude); ok {
		return k, SourceSunPosition
	}

	return calculateColorTemperature(timeOfDay), SourceTimeOfDay
}

// BuildRGBCommand converts a lighting decision into an RGB command.
// Off commands carry black and no color temperature.
func BuildRGBCommand(cmd LightCommand, colorTemp int, source string, now time.Time) *RGBCommand {
	rgb := &RGBCommand{
		CommandID:  uuid.NewString(),
		Action:     cmd.Action,
		Brightness: clampBrightness(cmd.Brightness),
		Reason:     cmd.Reason,
		Confidence: cmd.Confidence,
		Timestamp:  now.Format(time.RFC3339),
	}

	if cmd.Action == "off" {
		rgb.Brightness = 0
		rgb.Hex = kelvin.NewColor(0, 0, 0).Hex()
		return rgb
	}

	base := kelvin.ToRGB(colorTemp)
	scaled := scaleColor(base, rgb.Brightness)

	rgb.R, rgb.G, rgb.B = scaled.RGB()
	rgb.Hex = scaled.Hex()
	rgb.BaseHex = base.Hex()
	rgb.Kelvin = colorTemp
	rgb.KelvinSource = source

	return rgb
}

// scaleColor dims each channel by brightness percent, truncating
func scaleColor(c kelvin.Color, brightness int) kelvin.Color {
	brightness = clampBrightness(brightness)
	scale := func(v uint8) uint8 {
		return uint8(int(v) * brightness / 100)
	}
	return kelvin.NewColor(scale(c.R()), scale(c.G()), scale(c.B()))
}

func clampBrightness(b int) int {
	if b < 0 {
		return 0
	}
	if b > 100 {
		return 100
	}
	return b
}
