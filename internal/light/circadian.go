package light

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

const (
	// Sun altitude (degrees) at which the circadian curve reaches full daylight
	fullDaylightAltitude = 45.0

	horizonColorTemp  = 2700
	daylightColorTemp = 5500
)

// circadianColorTemperature derives a color temperature from the sun altitude
// at the given coordinates. It returns false while the sun is below the horizon.
func circadianColorTemperature(t time.Time, lat, lon float64) (int, bool) {
	position := suncalc.GetPosition(t, lat, lon)

	// Sun altitude is in radians
	altitudeDegrees := position.Altitude * (180.0 / math.Pi)
	if altitudeDegrees <= 0 {
		return 0, false
	}

	ratio := math.Min(altitudeDegrees/fullDaylightAltitude, 1.0)
	kelvin := horizonColorTemp + ratio*(daylightColorTemp-horizonColorTemp)

	// Round to 10 K so small sun movements do not churn commands
	return int(math.Round(kelvin/10) * 10), true
}
