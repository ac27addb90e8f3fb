// Package kelvin converts color temperatures to approximate sRGB colors
// using Tanner Helland's fit of the black-body curve.
package kelvin

import "math"

// Temperature bounds of the fit, in Kelvin
const (
	MinTemperature = 1000.0
	MaxTemperature = 40000.0
)

// Number is any integer or floating point type that widens to float64
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// ToRGB converts a temperature in Kelvin to a Color.
//
// The temperature is clamped to [MinTemperature, MaxTemperature], so the
// function never fails. +Inf behaves like MaxTemperature and -Inf like
// MinTemperature. NaN is not clamped; it flows through the curves and every
// computed channel saturates to 0, which yields black.
func ToRGB[T Number](temperature T) Color {
	t := float64(temperature)
	if t < MinTemperature {
		t = MinTemperature
	} else if t > MaxTemperature {
		t = MaxTemperature
	}
	t /= 100.0

	return Color{
		r: red(t),
		g: green(t),
		b: blue(t),
	}
}

// red, green and blue take the temperature in hundreds of Kelvin.
// The seams at 66 and 19 are part of the fit and are not smoothed.

func red(t float64) uint8 {
	if t <= 66.0 {
		return 255
	}
	return saturate(329.698727446 * math.Pow(t-60.0, -0.1332047592))
}

func green(t float64) uint8 {
	if t <= 66.0 {
		return saturate(99.4708025861*math.Log(t) - 161.1195681661)
	}
	return saturate(288.1221695283 * math.Pow(t-60.0, -0.0755148492))
}

func blue(t float64) uint8 {
	if t >= 66.0 {
		return 255
	}
	if t <= 19.0 {
		return 0
	}
	return saturate(138.5177312231*math.Log(t-10.0) - 305.0447927307)
}

// saturate clamps x to [0, 255] and truncates toward zero. NaN maps to 0.
func saturate(x float64) uint8 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= 255:
		return 255
	}
	return uint8(x)
}
